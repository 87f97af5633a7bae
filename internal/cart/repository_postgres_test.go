package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGetOrCreate_Upserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("INSERT INTO carts .* ON CONFLICT \\(session_id\\)").WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := NewPostgresRepository(db).GetOrCreate(context.Background(), "s1")
	if err != nil || id != 7 {
		t.Fatalf("expected cart 7, got %d %v", id, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAddQuantity_SingleUpsertStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("ON CONFLICT \\(cart_id, service_item_id\\)\\s+DO UPDATE SET quantity = cart_items.quantity \\+ EXCLUDED.quantity").
		WithArgs(7, 1, "svc-1", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := NewPostgresRepository(db).AddQuantity(context.Background(), 7, 1, "svc-1", 3); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSetQuantity_MissingLine(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE cart_items SET quantity").WithArgs(2, 7, "svc-9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewPostgresRepository(db).SetQuantity(context.Background(), 7, "svc-9", 2)
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestFind_NoCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id FROM carts").WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewPostgresRepository(db).Find(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLines(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM cart_items").WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"service_item_id", "service_id", "quantity"}).
			AddRow("svc-1", 1, 5).
			AddRow("suit", 2, 1))

	lines, err := NewPostgresRepository(db).Lines(context.Background(), 7)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(lines) != 2 || lines[0].Quantity != 5 || lines[1].ServiceID != 2 {
		t.Fatalf("unexpected lines %+v", lines)
	}
}
