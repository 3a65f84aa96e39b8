package commerce

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"techub/internal/models"
)

// AddressStore keeps the shipping address book. Checkout only attaches an
// address id to an order for display; no address logic runs in the pipeline.
type AddressStore struct {
	DB *pgxpool.Pool
}

type AddressInput struct {
	FirstName   string
	LastName    string
	Address1    string
	City        string
	PostCode    string
	State       string
	PhoneNumber string
}

const addressColumns = `address_id, user_id, first_name, last_name, address1, city, post_code, state, phone_number`

func scanAddress(row pgx.Row) (models.Address, error) {
	var a models.Address
	err := row.Scan(&a.ID, &a.UserID, &a.FirstName, &a.LastName, &a.Address1,
		&a.City, &a.PostCode, &a.State, &a.PhoneNumber)
	return a, err
}

func (s *AddressStore) Create(ctx context.Context, userID string, in AddressInput) (models.Address, error) {
	row := s.DB.QueryRow(ctx, `
		INSERT INTO address (user_id, first_name, last_name, address1, city, post_code, state, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+addressColumns,
		userID, in.FirstName, in.LastName, in.Address1, in.City, in.PostCode, in.State, in.PhoneNumber)
	return scanAddress(row)
}

func (s *AddressStore) Get(ctx context.Context, addressID int64) (models.Address, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+addressColumns+` FROM address WHERE address_id = $1`, addressID)
	a, err := scanAddress(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Address{}, ErrAddressNotFound
	}
	return a, err
}

func (s *AddressStore) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+addressColumns+` FROM address WHERE user_id = $1 ORDER BY address_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *AddressStore) Update(ctx context.Context, addressID int64, in AddressInput) (models.Address, error) {
	row := s.DB.QueryRow(ctx, `
		UPDATE address
		SET first_name = $1, last_name = $2, address1 = $3, city = $4,
			post_code = $5, state = $6, phone_number = $7
		WHERE address_id = $8
		RETURNING `+addressColumns,
		in.FirstName, in.LastName, in.Address1, in.City, in.PostCode, in.State, in.PhoneNumber, addressID)
	a, err := scanAddress(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Address{}, ErrAddressNotFound
	}
	return a, err
}

func (s *AddressStore) Delete(ctx context.Context, addressID int64) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM address WHERE address_id = $1`, addressID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAddressNotFound
	}
	return nil
}
