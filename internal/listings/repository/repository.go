package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("listing not found")

type Listing struct {
	ID        uuid.UUID
	Title     string
	Location  *string
	Category  *string
	Price     *float64
	PriceMin  *float64
	PriceMax  *float64
	Tags      []string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const listingColumns = `id, title, location, category, price, price_min, price_max, tags, is_active, created_at, updated_at`

type listingRowScanner interface {
	Scan(dest ...any) error
}

func scanListing(s listingRowScanner) (Listing, error) {
	var listing Listing
	err := s.Scan(
		&listing.ID, &listing.Title, &listing.Location, &listing.Category,
		&listing.Price, &listing.PriceMin, &listing.PriceMax, &listing.Tags,
		&listing.IsActive, &listing.CreatedAt, &listing.UpdatedAt,
	)
	return listing, err
}

type CreateListingParams struct {
	Title    string
	Location *string
	Category *string
	Price    *float64
	PriceMin *float64
	PriceMax *float64
	Tags     []string
}

func (r *Repository) Create(ctx context.Context, params CreateListingParams) (Listing, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO listings (title, location, category, price, price_min, price_max, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+listingColumns+`
	`, params.Title, params.Location, params.Category, params.Price, params.PriceMin, params.PriceMax, params.Tags)

	return scanListing(row)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Listing, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
	listing, err := scanListing(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Listing{}, ErrNotFound
	}
	if err != nil {
		return Listing{}, err
	}
	return listing, nil
}

func (r *Repository) List(ctx context.Context, activeOnly bool) ([]Listing, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+listingColumns+` FROM listings
		WHERE ($1 = false OR is_active = true)
		ORDER BY created_at DESC
	`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return listings, nil
}

func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) (Listing, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE listings SET is_active = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+listingColumns+`
	`, id, active)

	listing, err := scanListing(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Listing{}, ErrNotFound
	}
	if err != nil {
		return Listing{}, err
	}
	return listing, nil
}
