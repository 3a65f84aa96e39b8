package commerce

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCategoryLifecycle(t *testing.T) {
	pool := testPool(t)
	catalog := &Catalog{DB: pool}
	ctx := context.Background()
	name := fmt.Sprintf("cat-%d", time.Now().UnixNano())

	created, err := catalog.CreateCategory(ctx, name)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if created.Name != name || created.ID == 0 {
		t.Fatalf("unexpected category %+v", created)
	}

	if _, err := catalog.CreateCategory(ctx, name); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists on duplicate, got %v", err)
	}

	renamed := name + "-renamed"
	updated, err := catalog.UpdateCategory(ctx, created.ID, renamed)
	if err != nil {
		t.Fatalf("update category: %v", err)
	}
	if updated.Name != renamed {
		t.Fatalf("expected name %q, got %q", renamed, updated.Name)
	}

	if _, err := catalog.UpdateCategory(ctx, 999999999, renamed); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	if err := catalog.DeleteCategory(ctx, created.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if err := catalog.DeleteCategory(ctx, created.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound on second delete, got %v", err)
	}
}

func TestBrandLifecycle(t *testing.T) {
	pool := testPool(t)
	catalog := &Catalog{DB: pool}
	ctx := context.Background()
	name := fmt.Sprintf("brand-%d", time.Now().UnixNano())

	created, err := catalog.CreateBrand(ctx, name)
	if err != nil {
		t.Fatalf("create brand: %v", err)
	}

	if _, err := catalog.CreateBrand(ctx, name); !errors.Is(err, ErrBrandExists) {
		t.Fatalf("expected ErrBrandExists on duplicate, got %v", err)
	}

	if _, err := catalog.UpdateBrand(ctx, 999999999, name+"-x"); !errors.Is(err, ErrBrandNotFound) {
		t.Fatalf("expected ErrBrandNotFound, got %v", err)
	}

	if err := catalog.DeleteBrand(ctx, created.ID); err != nil {
		t.Fatalf("delete brand: %v", err)
	}
	if err := catalog.DeleteBrand(ctx, created.ID); !errors.Is(err, ErrBrandNotFound) {
		t.Fatalf("expected ErrBrandNotFound on second delete, got %v", err)
	}
}

func TestDeleteCategoryWithProductsFails(t *testing.T) {
	pool := testPool(t)
	catalog := &Catalog{DB: pool}
	ctx := context.Background()

	productID := seedProduct(t, pool, "Mechanical Keyboard", "89.90", 3)

	var categoryID, brandID int64
	if err := pool.QueryRow(ctx,
		`SELECT category_id, brand_id FROM products WHERE products_id = $1`,
		productID).Scan(&categoryID, &brandID); err != nil {
		t.Fatalf("read product taxonomy: %v", err)
	}

	if err := catalog.DeleteCategory(ctx, categoryID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
	if err := catalog.DeleteBrand(ctx, brandID); !errors.Is(err, ErrBrandInUse) {
		t.Fatalf("expected ErrBrandInUse, got %v", err)
	}
}

func TestCreateProductUnknownTaxonomy(t *testing.T) {
	pool := testPool(t)
	catalog := &Catalog{DB: pool}
	ctx := context.Background()

	brand, err := catalog.CreateBrand(ctx, fmt.Sprintf("brand-%d", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("create brand: %v", err)
	}

	_, err = catalog.CreateProduct(ctx, ProductInput{
		Name:       "Ghost Monitor",
		Price:      decimal.RequireFromString("199.00"),
		CategoryID: 999999999,
		BrandID:    brand.ID,
	})
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}

	category, err := catalog.CreateCategory(ctx, fmt.Sprintf("cat-%d", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	_, err = catalog.CreateProduct(ctx, ProductInput{
		Name:       "Ghost Monitor",
		Price:      decimal.RequireFromString("199.00"),
		CategoryID: category.ID,
		BrandID:    999999999,
	})
	if !errors.Is(err, ErrUnknownBrand) {
		t.Fatalf("expected ErrUnknownBrand, got %v", err)
	}
}

func TestListRelatedSameCategory(t *testing.T) {
	pool := testPool(t)
	catalog := &Catalog{DB: pool}
	ctx := context.Background()
	suffix := time.Now().UnixNano()

	var categoryID, brandID int64
	if err := pool.QueryRow(ctx,
		`INSERT INTO categories (category_name) VALUES ($1) RETURNING categories_id`,
		fmt.Sprintf("cat-%d", suffix)).Scan(&categoryID); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	if err := pool.QueryRow(ctx,
		`INSERT INTO brands (brand_name) VALUES ($1) RETURNING brand_id`,
		fmt.Sprintf("brand-%d", suffix)).Scan(&brandID); err != nil {
		t.Fatalf("seed brand: %v", err)
	}

	ids := make([]int64, 0, 6)
	for i := 0; i < 6; i++ {
		p, err := catalog.CreateProduct(ctx, ProductInput{
			Name:       fmt.Sprintf("Webcam %d-%d", suffix, i),
			Price:      decimal.RequireFromString("59.00"),
			CategoryID: categoryID,
			BrandID:    brandID,
		})
		if err != nil {
			t.Fatalf("seed product %d: %v", i, err)
		}
		ids = append(ids, p.ID)
	}

	related, err := catalog.ListRelated(ctx, ids[0], 4)
	if err != nil {
		t.Fatalf("list related: %v", err)
	}
	if len(related) != 4 {
		t.Fatalf("expected 4 related products, got %d", len(related))
	}
	for _, p := range related {
		if p.ID == ids[0] {
			t.Fatal("related listing must not include the product itself")
		}
		if p.CategoryID != categoryID {
			t.Fatalf("expected category %d, got %d", categoryID, p.CategoryID)
		}
	}
}
