package cart

import (
	"context"
	"database/sql"
	"errors"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getOrCreateCartQuery = `
		INSERT INTO carts (session_id) VALUES ($1)
		ON CONFLICT (session_id) DO UPDATE SET session_id = EXCLUDED.session_id
		RETURNING id
	`
	findCartQuery  = `SELECT id FROM carts WHERE session_id = $1`
	listLinesQuery = `
		SELECT service_item_id, service_id, quantity
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at, id
	`
	addQuantityQuery = `
		INSERT INTO cart_items (cart_id, service_id, service_item_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, service_item_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()
	`
	setQuantityQuery = `
		UPDATE cart_items SET quantity = $1, updated_at = now()
		WHERE cart_id = $2 AND service_item_id = $3
	`
	removeItemQuery = `DELETE FROM cart_items WHERE cart_id = $1 AND service_item_id = $2`
	clearCartQuery  = `DELETE FROM cart_items WHERE cart_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetOrCreate(ctx context.Context, sessionID string) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, getOrCreateCartQuery, sessionID).Scan(&id)
	return id, err
}

func (r *PostgresRepository) Find(ctx context.Context, sessionID string) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, findCartQuery, sessionID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return id, err
}

func (r *PostgresRepository) Lines(ctx context.Context, cartID int) ([]Line, error) {
	rows, err := r.db.QueryContext(ctx, listLinesQuery, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Line, 0)
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ServiceItemID, &l.ServiceID, &l.Quantity); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) AddQuantity(ctx context.Context, cartID, serviceID int, serviceItemID string, qty int) error {
	_, err := r.db.ExecContext(ctx, addQuantityQuery, cartID, serviceID, serviceItemID, qty)
	return err
}

func (r *PostgresRepository) SetQuantity(ctx context.Context, cartID int, serviceItemID string, qty int) error {
	result, err := r.db.ExecContext(ctx, setQuantityQuery, qty, cartID, serviceItemID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) RemoveItem(ctx context.Context, cartID int, serviceItemID string) error {
	_, err := r.db.ExecContext(ctx, removeItemQuery, cartID, serviceItemID)
	return err
}

func (r *PostgresRepository) Clear(ctx context.Context, cartID int) error {
	_, err := r.db.ExecContext(ctx, clearCartQuery, cartID)
	return err
}
