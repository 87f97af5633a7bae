package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	serviceColumns = `id, slug, title, description, full_description, rating, reviews, duration, image, created_at, updated_at`

	listServicesQuery     = `SELECT ` + serviceColumns + ` FROM services ORDER BY id`
	getServiceBySlugQuery = `SELECT ` + serviceColumns + ` FROM services WHERE slug = $1`
	getServiceByIDQuery   = `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	insertServiceQuery    = `
		INSERT INTO services (slug, title, description, full_description, rating, reviews, duration, image)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at
	`
	countServicesQuery = `SELECT COUNT(*) FROM services`

	itemSelect = `
		SELECT i.id, i.service_id, i.category, i.name, i.description, i.price, i.unit, i.image, i.created_at, i.updated_at, s.title
		FROM service_items i
		JOIN services s ON s.id = i.service_id
	`
	listItemsQuery          = itemSelect + ` ORDER BY i.service_id, i.created_at, i.id`
	listItemsByServiceQuery = itemSelect + ` WHERE i.service_id = $1 ORDER BY i.created_at, i.id`
	getItemsByIDsQuery      = itemSelect + ` WHERE i.id = ANY($1::text[])`
	insertItemQuery         = `
		INSERT INTO service_items (id, service_id, category, name, description, price, unit, image)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at
	`
	deleteServicesQuery = `DELETE FROM services`
)

const uniqueViolation = "23505"

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListServices(ctx context.Context) ([]Service, error) {
	rows, err := r.db.QueryContext(ctx, listServicesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetServiceBySlug(ctx context.Context, slug string) (Service, error) {
	return r.getService(ctx, getServiceBySlugQuery, slug)
}

func (r *PostgresRepository) GetServiceByID(ctx context.Context, id int) (Service, error) {
	return r.getService(ctx, getServiceByIDQuery, id)
}

func (r *PostgresRepository) getService(ctx context.Context, q string, arg any) (Service, error) {
	s, err := scanService(r.db.QueryRowContext(ctx, q, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return Service{}, ErrNotFound
	}
	return s, err
}

func (r *PostgresRepository) CreateService(ctx context.Context, s Service) (Service, error) {
	return insertService(ctx, r.db, s)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertService(ctx context.Context, q queryRower, s Service) (Service, error) {
	err := q.QueryRowContext(ctx, insertServiceQuery,
		s.Slug,
		s.Title,
		s.Description,
		s.FullDescription,
		s.Rating,
		s.Reviews,
		s.Duration,
		s.Image,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Service{}, ErrDuplicateSlug
		}
		return Service{}, err
	}
	return s, nil
}

func insertItem(ctx context.Context, q queryRower, it ServiceItem) (ServiceItem, error) {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.Unit == "" {
		it.Unit = DefaultUnit
	}
	err := q.QueryRowContext(ctx, insertItemQuery,
		it.ID,
		it.ServiceID,
		it.Category,
		it.Name,
		it.Description,
		decimal.NewFromFloat(it.Price),
		it.Unit,
		it.Image,
	).Scan(&it.CreatedAt, &it.UpdatedAt)
	return it, err
}

func (r *PostgresRepository) ListItems(ctx context.Context, serviceID *int) ([]ServiceItem, error) {
	if serviceID != nil {
		return r.queryItems(ctx, listItemsByServiceQuery, *serviceID)
	}
	return r.queryItems(ctx, listItemsQuery)
}

func (r *PostgresRepository) GetItemsByIDs(ctx context.Context, ids []string) ([]ServiceItem, error) {
	if len(ids) == 0 {
		return []ServiceItem{}, nil
	}
	return r.queryItems(ctx, getItemsByIDsQuery, pq.Array(ids))
}

func (r *PostgresRepository) queryItems(ctx context.Context, q string, args ...any) ([]ServiceItem, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ServiceItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) CreateItems(ctx context.Context, items []ServiceItem) ([]ServiceItem, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	titles := map[int]string{}
	out := make([]ServiceItem, 0, len(items))
	for _, it := range items {
		created, err := insertItem(ctx, tx, it)
		if err != nil {
			return nil, err
		}
		title, ok := titles[created.ServiceID]
		if !ok {
			if err := tx.QueryRowContext(ctx, `SELECT title FROM services WHERE id = $1`, created.ServiceID).Scan(&title); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return nil, ErrNotFound
				}
				return nil, err
			}
			titles[created.ServiceID] = title
		}
		created.ServiceTitle = title
		out = append(out, created)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepository) CountServices(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countServicesQuery).Scan(&n)
	return n, err
}

// Reset deletes every service (items and cart lines cascade) and inserts the
// seed in a single transaction.
func (r *PostgresRepository) Reset(ctx context.Context, seed []Seed) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, deleteServicesQuery); err != nil {
		return err
	}
	for _, sd := range seed {
		s, err := insertService(ctx, tx, sd.Service)
		if err != nil {
			return err
		}
		for _, it := range sd.Items {
			it.ServiceID = s.ID
			if _, err := insertItem(ctx, tx, it); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanService(scanner rowScanner) (Service, error) {
	s := Service{}
	var (
		fullDesc sql.NullString
		rating   sql.NullInt64
		reviews  sql.NullInt64
		duration sql.NullString
		image    sql.NullString
	)
	if err := scanner.Scan(
		&s.ID,
		&s.Slug,
		&s.Title,
		&s.Description,
		&fullDesc,
		&rating,
		&reviews,
		&duration,
		&image,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return Service{}, err
	}
	if fullDesc.Valid {
		s.FullDescription = &fullDesc.String
	}
	if rating.Valid {
		s.Rating = ptrInt(int(rating.Int64))
	}
	if reviews.Valid {
		s.Reviews = ptrInt(int(reviews.Int64))
	}
	if duration.Valid {
		s.Duration = &duration.String
	}
	if image.Valid {
		s.Image = &image.String
	}
	return s, nil
}

func scanItem(scanner rowScanner) (ServiceItem, error) {
	it := ServiceItem{}
	var (
		desc  sql.NullString
		image sql.NullString
		price decimal.Decimal
	)
	if err := scanner.Scan(
		&it.ID,
		&it.ServiceID,
		&it.Category,
		&it.Name,
		&desc,
		&price,
		&it.Unit,
		&image,
		&it.CreatedAt,
		&it.UpdatedAt,
		&it.ServiceTitle,
	); err != nil {
		return ServiceItem{}, err
	}
	it.Price = price.InexactFloat64()
	if desc.Valid {
		it.Description = &desc.String
	}
	if image.Valid {
		it.Image = &image.String
	}
	return it, nil
}
