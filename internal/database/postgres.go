package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 8
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// EnsureSchema creates the commerce tables if they do not exist yet. The
// stock_quantity CHECK backs the invariant that stock never goes negative
// even if a write path bypasses the conditional decrement.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
CREATE TABLE IF NOT EXISTS categories (
	categories_id BIGSERIAL PRIMARY KEY,
	category_name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS brands (
	brand_id   BIGSERIAL PRIMARY KEY,
	brand_name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS products (
	products_id    BIGSERIAL PRIMARY KEY,
	name           TEXT NOT NULL,
	price          NUMERIC(10,2) NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	stock_quantity INT NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
	category_id    BIGINT NOT NULL REFERENCES categories(categories_id),
	brand_id       BIGINT NOT NULL REFERENCES brands(brand_id),
	specifications JSONB,
	image_urls     JSONB NOT NULL DEFAULT '[]',
	is_featured    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS cart (
	cart_id BIGSERIAL PRIMARY KEY,
	user_id TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS cartitems (
	cartitems_id BIGSERIAL PRIMARY KEY,
	cart_id      BIGINT NOT NULL REFERENCES cart(cart_id) ON DELETE CASCADE,
	product_id   BIGINT NOT NULL REFERENCES products(products_id),
	quantity     INT NOT NULL CHECK (quantity > 0),
	UNIQUE (cart_id, product_id)
);

CREATE TABLE IF NOT EXISTS orders (
	order_id     BIGSERIAL PRIMARY KEY,
	user_id      TEXT NOT NULL,
	address_id   BIGINT,
	total_amount NUMERIC(10,2) NOT NULL,
	status       TEXT NOT NULL DEFAULT 'pending',
	order_date   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orderitems (
	order_id   BIGINT NOT NULL REFERENCES orders(order_id),
	product_id BIGINT NOT NULL REFERENCES products(products_id),
	name       TEXT NOT NULL,
	quantity   INT NOT NULL CHECK (quantity > 0),
	price      NUMERIC(10,2) NOT NULL
);

CREATE TABLE IF NOT EXISTS payment (
	payment_id   BIGSERIAL PRIMARY KEY,
	order_id     BIGINT NOT NULL UNIQUE REFERENCES orders(order_id),
	method       TEXT NOT NULL,
	amount       NUMERIC(10,2) NOT NULL,
	status       TEXT NOT NULL DEFAULT 'pending',
	payment_date TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS shipping (
	shipping_id     BIGSERIAL PRIMARY KEY,
	order_id        BIGINT NOT NULL UNIQUE REFERENCES orders(order_id),
	method          TEXT NOT NULL,
	carrier         TEXT NOT NULL DEFAULT '',
	cost            NUMERIC(10,2) NOT NULL DEFAULT 0,
	tracking_number TEXT NOT NULL DEFAULT '',
	estimated_date  TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS address (
	address_id   BIGSERIAL PRIMARY KEY,
	user_id      TEXT NOT NULL,
	first_name   TEXT NOT NULL,
	last_name    TEXT NOT NULL,
	address1     TEXT NOT NULL,
	city         TEXT NOT NULL,
	post_code    TEXT NOT NULL,
	state        TEXT NOT NULL,
	phone_number TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS orders_user_id_idx ON orders(user_id);
CREATE INDEX IF NOT EXISTS orderitems_order_id_idx ON orderitems(order_id);
CREATE INDEX IF NOT EXISTS address_user_id_idx ON address(user_id);
`
	_, err := pool.Exec(ctx, schema)
	return err
}
