package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList stores a list of strings in a JSONB column. Legacy rows written
// as a bare string or null still decode without failing the entire query.
type StringList []string

func (s *StringList) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot decode %T into StringList", src)
	}

	if len(data) == 0 || string(data) == "null" {
		*s = nil
		return nil
	}

	if data[0] == '[' {
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
		*s = values
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		*s = StringList{}
		return nil
	}
	*s = StringList{trimmed}
	return nil
}

// Value always stores the list as a JSON array, keeping new writes consistent
// even when legacy rows used a single string value.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}
