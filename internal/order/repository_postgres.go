package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	orderColumns = `
		id, order_id, customer_name, customer_email, customer_phone, customer_address,
		total_amount, status, pickup_date, delivery_date, special_instructions, notes,
		created_at, updated_at
	`
	insertOrderQuery = `
		INSERT INTO orders (
			order_id, customer_name, customer_email, customer_phone, customer_address,
			total_amount, status, pickup_date, delivery_date, special_instructions, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	insertOrderItemQuery = `
		INSERT INTO order_items (
			order_id, service_id, service_item_id, name, category, service_type,
			quantity, price, total_price
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	getOrderByIDQuery      = `SELECT` + orderColumns + `FROM orders WHERE id = $1`
	getOrderByOrderIDQuery = `SELECT` + orderColumns + `FROM orders WHERE order_id = $1`
	listOrderItemsQuery    = `
		SELECT id, order_id, service_id, service_item_id, name, category, service_type,
			quantity, price, total_price
		FROM order_items
		WHERE order_id = ANY($1::int[])
		ORDER BY id
	`
	updateOrderStatusQuery = `
		UPDATE orders
		SET status = $1,
			pickup_date = COALESCE($2, pickup_date),
			delivery_date = COALESCE($3, delivery_date),
			updated_at = now()
		WHERE id = $4
	`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, o Order) (Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, insertOrderQuery,
		o.OrderID,
		o.CustomerName,
		o.CustomerEmail,
		o.CustomerPhone,
		o.CustomerAddress,
		decimal.NewFromFloat(o.TotalAmount),
		o.Status,
		o.PickupDate,
		o.DeliveryDate,
		o.SpecialInstructions,
		o.Notes,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return Order{}, fmt.Errorf("insert order: %w", err)
	}

	items := make([]Item, len(o.Items))
	for i, it := range o.Items {
		err := tx.QueryRowContext(ctx, insertOrderItemQuery,
			o.ID,
			it.ServiceID,
			it.ServiceItemID,
			it.Name,
			it.Category,
			it.ServiceType,
			it.Quantity,
			decimal.NewFromFloat(it.Price),
			decimal.NewFromFloat(it.TotalPrice),
		).Scan(&it.ID)
		if err != nil {
			return Order{}, fmt.Errorf("insert order item %s: %w", it.ServiceItemID, err)
		}
		items[i] = it
	}
	o.Items = items

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (Order, error) {
	return r.getOne(ctx, getOrderByIDQuery, id)
}

func (r *PostgresRepository) GetByOrderID(ctx context.Context, orderID string) (Order, error) {
	return r.getOne(ctx, getOrderByOrderIDQuery, orderID)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	orders := []Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return Order{}, err
	}
	return orders[0], nil
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]Order, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.CustomerEmail != "" {
		args = append(args, f.CustomerEmail)
		where = append(where, fmt.Sprintf("lower(customer_email) = lower($%d)", len(args)))
	}

	query := `SELECT` + orderColumns + `FROM orders`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int, status string, pickup, delivery *time.Time) (Order, error) {
	result, err := r.db.ExecContext(ctx, updateOrderStatusQuery, status, pickup, delivery, id)
	if err != nil {
		return Order{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Order{}, err
	}
	if affected == 0 {
		return Order{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// attachItems loads the items of every order in one query.
func (r *PostgresRepository) attachItems(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	index := make(map[int]int, len(orders))
	for i, o := range orders {
		ids[i] = int64(o.ID)
		index[o.ID] = i
		orders[i].Items = make([]Item, 0)
	}

	rows, err := r.db.QueryContext(ctx, listOrderItemsQuery, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it         Item
			orderID    int
			price      decimal.Decimal
			totalPrice decimal.Decimal
		)
		if err := rows.Scan(
			&it.ID,
			&orderID,
			&it.ServiceID,
			&it.ServiceItemID,
			&it.Name,
			&it.Category,
			&it.ServiceType,
			&it.Quantity,
			&price,
			&totalPrice,
		); err != nil {
			return err
		}
		it.Price = price.InexactFloat64()
		it.TotalPrice = totalPrice.InexactFloat64()
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return rows.Err()
}

func scanOrder(scanner rowScanner) (Order, error) {
	o := Order{}
	var (
		address      sql.NullString
		instructions sql.NullString
		notes        sql.NullString
		pickup       sql.NullTime
		delivery     sql.NullTime
		total        decimal.Decimal
	)
	if err := scanner.Scan(
		&o.ID,
		&o.OrderID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&address,
		&total,
		&o.Status,
		&pickup,
		&delivery,
		&instructions,
		&notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return Order{}, err
	}
	o.TotalAmount = total.InexactFloat64()
	if address.Valid {
		o.CustomerAddress = &address.String
	}
	if instructions.Valid {
		o.SpecialInstructions = &instructions.String
	}
	if notes.Valid {
		o.Notes = &notes.String
	}
	if pickup.Valid {
		o.PickupDate = &pickup.Time
	}
	if delivery.Valid {
		o.DeliveryDate = &delivery.Time
	}
	return o, nil
}
