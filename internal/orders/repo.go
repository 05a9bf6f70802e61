package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo is the PostgreSQL-backed Store. Schema lives in internal/postgres/migrations.
type Repo struct{ DB *pgxpool.Pool }

var _ Store = (*Repo)(nil)

// SeedCatalog inserts the startup flavors and hostels. Safe to call on every boot.
func (r *Repo) SeedCatalog(ctx context.Context) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, f := range SeedFlavors() {
		if _, err := tx.Exec(ctx, `
			INSERT INTO flavors(id, name, value, emoji) VALUES ($1,$2,$3,$4)
			ON CONFLICT (value) DO NOTHING`, f.ID, f.Name, f.Value, f.Emoji); err != nil {
			return fmt.Errorf("seed flavor %s: %w", f.Value, err)
		}
	}
	for _, h := range SeedHostels() {
		if _, err := tx.Exec(ctx, `
			INSERT INTO hostels(id, name, value) VALUES ($1,$2,$3)
			ON CONFLICT (value) DO NOTHING`, h.ID, h.Name, h.Value); err != nil {
			return fmt.Errorf("seed hostel %s: %w", h.Value, err)
		}
	}
	return tx.Commit(ctx)
}

func (r *Repo) CreateOrder(ctx context.Context, in CreateOrderInput) (Order, error) {
	if err := in.Validate(); err != nil {
		return Order{}, err
	}
	// total dihitung di sini, bukan dari client
	o := newOrder(0, in)
	flavors, err := json.Marshal(o.Flavors)
	if err != nil {
		return Order{}, err
	}

	err = r.DB.QueryRow(ctx, `
		INSERT INTO orders(hostel, room, quantity, flavors, total, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`,
		o.Hostel, o.Room, o.Quantity, flavors, o.Total, string(o.Status),
	).Scan(&o.ID)
	if err != nil {
		return Order{}, fmt.Errorf("insert order: %w", err)
	}
	return o, nil
}

func (r *Repo) GetOrder(ctx context.Context, id int64) (Order, error) {
	var (
		o       Order
		flavors []byte
		status  string
	)
	err := r.DB.QueryRow(ctx, `
		SELECT id, hostel, room, quantity, flavors, customer_name, phone_number, total, status
		FROM orders WHERE id=$1`, id,
	).Scan(&o.ID, &o.Hostel, &o.Room, &o.Quantity, &flavors, &o.CustomerName, &o.PhoneNumber, &o.Total, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("select order %d: %w", id, err)
	}
	if err := json.Unmarshal(flavors, &o.Flavors); err != nil {
		return Order{}, fmt.Errorf("decode flavors of order %d: %w", id, err)
	}
	o.Status = Status(status)
	return o, nil
}

func (r *Repo) ListFlavors(ctx context.Context) ([]Flavor, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, value, emoji FROM flavors ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Flavor{}
	for rows.Next() {
		var f Flavor
		if err := rows.Scan(&f.ID, &f.Name, &f.Value, &f.Emoji); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repo) ListHostels(ctx context.Context) ([]Hostel, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, value FROM hostels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Hostel{}
	for rows.Next() {
		var h Hostel
		if err := rows.Scan(&h.ID, &h.Name, &h.Value); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
