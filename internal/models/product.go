package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SpecMap holds the free-form specification document of a product
// (string keys, arbitrary JSON values) stored in a JSONB column.
type SpecMap map[string]interface{}

func (m *SpecMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot decode %T into SpecMap", src)
	}

	if len(data) == 0 || string(data) == "null" {
		*m = nil
		return nil
	}
	return json.Unmarshal(data, m)
}

func (m SpecMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(map[string]interface{}(m))
}

type Product struct {
	ID             int64           `json:"products_id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Description    string          `json:"description,omitempty"`
	StockQuantity  int             `json:"stock_quantity"`
	CategoryID     int64           `json:"category_id"`
	BrandID        int64           `json:"brand_id"`
	CategoryName   string          `json:"category_name,omitempty"`
	BrandName      string          `json:"brand_name,omitempty"`
	Specifications SpecMap         `json:"specifications,omitempty"`
	ImageURLs      StringList      `json:"image_urls"`
	IsFeatured     bool            `json:"is_featured"`
	CreatedAt      time.Time       `json:"created_at"`
}

type Category struct {
	ID   int64  `json:"categories_id"`
	Name string `json:"category_name"`
}

type Brand struct {
	ID   int64  `json:"brand_id"`
	Name string `json:"brand_name"`
}
