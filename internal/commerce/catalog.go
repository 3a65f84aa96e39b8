package commerce

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"techub/internal/models"
)

// Catalog resolves products to their current price and stock and carries the
// admin-facing product CRUD. All reads are side-effect-free; stock mutation
// belongs to the stock ledger.
type Catalog struct {
	DB *pgxpool.Pool
}

// ProductFilter narrows ListProducts. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID int64
	BrandID    int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Search     string
	Spec       map[string]string
	Featured   *bool
	Limit      int
	Offset     int
}

const productColumns = `
	p.products_id, p.name, p.price, p.description, p.stock_quantity,
	p.category_id, p.brand_id, c.category_name, b.brand_name,
	p.specifications, p.image_urls, p.is_featured, p.created_at`

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.StockQuantity,
		&p.CategoryID, &p.BrandID, &p.CategoryName, &p.BrandName,
		&p.Specifications, &p.ImageURLs, &p.IsFeatured, &p.CreatedAt)
	return p, err
}

func (c *Catalog) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	row := c.DB.QueryRow(ctx, `
		SELECT`+productColumns+`
		FROM products p
		JOIN brands b ON p.brand_id = b.brand_id
		JOIN categories c ON p.category_id = c.categories_id
		WHERE p.products_id = $1`, id)

	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (c *Catalog) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT` + productColumns + `
		FROM products p
		JOIN brands b ON p.brand_id = b.brand_id
		JOIN categories c ON p.category_id = c.categories_id
		WHERE 1=1`)

	var params []any
	add := func(clause string, value any) {
		params = append(params, value)
		fmt.Fprintf(&sb, clause, len(params))
	}

	if filter.CategoryID != 0 {
		add(" AND p.category_id = $%d", filter.CategoryID)
	}
	if filter.BrandID != 0 {
		add(" AND p.brand_id = $%d", filter.BrandID)
	}
	if filter.MinPrice != nil {
		add(" AND p.price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add(" AND p.price <= $%d", *filter.MaxPrice)
	}
	if filter.Search != "" {
		params = append(params, "%"+filter.Search+"%")
		fmt.Fprintf(&sb, " AND (p.name ILIKE $%d OR p.description ILIKE $%d)", len(params), len(params))
	}
	for key, value := range filter.Spec {
		params = append(params, key, value)
		fmt.Fprintf(&sb, " AND p.specifications->>$%d = $%d", len(params)-1, len(params))
	}
	if filter.Featured != nil {
		add(" AND p.is_featured = $%d", *filter.Featured)
	}

	sb.WriteString(" ORDER BY p.products_id DESC")
	if filter.Limit > 0 {
		add(" LIMIT $%d", filter.Limit)
	}
	if filter.Offset > 0 {
		add(" OFFSET $%d", filter.Offset)
	}

	rows, err := c.DB.Query(ctx, sb.String(), params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ProductInput carries admin create/update fields. Price and stock come from
// the admin, never from the storefront client.
type ProductInput struct {
	Name           string
	Price          decimal.Decimal
	Description    string
	StockQuantity  int
	CategoryID     int64
	BrandID        int64
	Specifications models.SpecMap
	ImageURLs      models.StringList
	IsFeatured     bool
}

const (
	pgCodeUniqueViolation     = "23505"
	pgCodeForeignKeyViolation = "23503"
)

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// mapProductWriteError turns the foreign key violation on the category/brand
// references into a typed error the handler can report as bad input.
func mapProductWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgCodeForeignKeyViolation {
		switch {
		case strings.Contains(pgErr.ConstraintName, "category"):
			return ErrUnknownCategory
		case strings.Contains(pgErr.ConstraintName, "brand"):
			return ErrUnknownBrand
		}
	}
	return err
}

func (c *Catalog) CreateProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	var id int64
	err := c.DB.QueryRow(ctx, `
		INSERT INTO products (name, price, description, stock_quantity,
			category_id, brand_id, specifications, image_urls, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING products_id`,
		in.Name, in.Price, in.Description, in.StockQuantity,
		in.CategoryID, in.BrandID, in.Specifications, in.ImageURLs, in.IsFeatured,
	).Scan(&id)
	if err != nil {
		return models.Product{}, mapProductWriteError(err)
	}
	return c.GetProduct(ctx, id)
}

func (c *Catalog) UpdateProduct(ctx context.Context, id int64, in ProductInput) (models.Product, error) {
	tag, err := c.DB.Exec(ctx, `
		UPDATE products
		SET name = $1, price = $2, description = $3, stock_quantity = $4,
			category_id = $5, brand_id = $6, specifications = $7,
			image_urls = $8, is_featured = $9
		WHERE products_id = $10`,
		in.Name, in.Price, in.Description, in.StockQuantity,
		in.CategoryID, in.BrandID, in.Specifications, in.ImageURLs, in.IsFeatured, id)
	if err != nil {
		return models.Product{}, mapProductWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return c.GetProduct(ctx, id)
}

func (c *Catalog) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := c.DB.Exec(ctx, `DELETE FROM products WHERE products_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ListRelated returns up to limit products sharing the given product's
// category, excluding the product itself, in random order.
func (c *Catalog) ListRelated(ctx context.Context, productID int64, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 4
	}
	rows, err := c.DB.Query(ctx, `
		SELECT`+productColumns+`
		FROM products p
		JOIN brands b ON p.brand_id = b.brand_id
		JOIN categories c ON p.category_id = c.categories_id
		WHERE p.category_id = (
			SELECT category_id FROM products WHERE products_id = $1
		)
		AND p.products_id != $1
		ORDER BY RANDOM()
		LIMIT $2`, productID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (c *Catalog) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := c.DB.Query(ctx, `SELECT categories_id, category_name FROM categories ORDER BY category_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}

func (c *Catalog) ListBrands(ctx context.Context) ([]models.Brand, error) {
	rows, err := c.DB.Query(ctx, `SELECT brand_id, brand_name FROM brands ORDER BY brand_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Brand
	for rows.Next() {
		var brand models.Brand
		if err := rows.Scan(&brand.ID, &brand.Name); err != nil {
			return nil, err
		}
		out = append(out, brand)
	}
	return out, rows.Err()
}

func (c *Catalog) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	var cat models.Category
	err := c.DB.QueryRow(ctx, `
		INSERT INTO categories (category_name)
		VALUES ($1)
		RETURNING categories_id, category_name`, name).Scan(&cat.ID, &cat.Name)
	if isPgError(err, pgCodeUniqueViolation) {
		return models.Category{}, ErrCategoryExists
	}
	if err != nil {
		return models.Category{}, err
	}
	return cat, nil
}

func (c *Catalog) UpdateCategory(ctx context.Context, id int64, name string) (models.Category, error) {
	var cat models.Category
	err := c.DB.QueryRow(ctx, `
		UPDATE categories
		SET category_name = $2
		WHERE categories_id = $1
		RETURNING categories_id, category_name`, id, name).Scan(&cat.ID, &cat.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Category{}, ErrCategoryNotFound
	}
	if isPgError(err, pgCodeUniqueViolation) {
		return models.Category{}, ErrCategoryExists
	}
	if err != nil {
		return models.Category{}, err
	}
	return cat, nil
}

func (c *Catalog) DeleteCategory(ctx context.Context, id int64) error {
	tag, err := c.DB.Exec(ctx, `DELETE FROM categories WHERE categories_id = $1`, id)
	if isPgError(err, pgCodeForeignKeyViolation) {
		return ErrCategoryInUse
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (c *Catalog) CreateBrand(ctx context.Context, name string) (models.Brand, error) {
	var brand models.Brand
	err := c.DB.QueryRow(ctx, `
		INSERT INTO brands (brand_name)
		VALUES ($1)
		RETURNING brand_id, brand_name`, name).Scan(&brand.ID, &brand.Name)
	if isPgError(err, pgCodeUniqueViolation) {
		return models.Brand{}, ErrBrandExists
	}
	if err != nil {
		return models.Brand{}, err
	}
	return brand, nil
}

func (c *Catalog) UpdateBrand(ctx context.Context, id int64, name string) (models.Brand, error) {
	var brand models.Brand
	err := c.DB.QueryRow(ctx, `
		UPDATE brands
		SET brand_name = $2
		WHERE brand_id = $1
		RETURNING brand_id, brand_name`, id, name).Scan(&brand.ID, &brand.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Brand{}, ErrBrandNotFound
	}
	if isPgError(err, pgCodeUniqueViolation) {
		return models.Brand{}, ErrBrandExists
	}
	if err != nil {
		return models.Brand{}, err
	}
	return brand, nil
}

func (c *Catalog) DeleteBrand(ctx context.Context, id int64) error {
	tag, err := c.DB.Exec(ctx, `DELETE FROM brands WHERE brand_id = $1`, id)
	if isPgError(err, pgCodeForeignKeyViolation) {
		return ErrBrandInUse
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBrandNotFound
	}
	return nil
}
