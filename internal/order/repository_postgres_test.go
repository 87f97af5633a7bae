package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreate_RollsBackWhenItemInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))
	mock.ExpectQuery("INSERT INTO order_items").WillReturnError(errors.New("constraint violated"))
	mock.ExpectRollback()

	_, err = NewPostgresRepository(db).Create(context.Background(), Order{
		OrderID:       "ORD-1",
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		CustomerPhone: "555",
		TotalAmount:   10,
		Status:        StatusPending,
		Items:         []Item{{ServiceID: 1, ServiceItemID: "shirt", Name: "Shirt", Quantity: 1, Price: 10, TotalPrice: 10}},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreate_CommitsOrderAndItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(4, now, now))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(4, 1, "shirt", "Shirt", "men", "Regular", 2, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	o, err := NewPostgresRepository(db).Create(context.Background(), Order{
		OrderID: "ORD-2",
		Status:  StatusPending,
		Items:   []Item{{ServiceID: 1, ServiceItemID: "shirt", Name: "Shirt", Category: "men", ServiceType: "Regular", Quantity: 2, Price: 5, TotalPrice: 10}},
	})
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if o.ID != 4 || len(o.Items) != 1 || o.Items[0].ID != 11 {
		t.Fatalf("unexpected order %+v", o)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByOrderID_LoadsItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	orderCols := []string{"id", "order_id", "customer_name", "customer_email", "customer_phone", "customer_address",
		"total_amount", "status", "pickup_date", "delivery_date", "special_instructions", "notes", "created_at", "updated_at"}
	mock.ExpectQuery("FROM orders WHERE order_id = \\$1").WithArgs("ORD-3").
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(3, "ORD-3", "Ada", "ada@example.com", "555", nil, "35.00", "confirmed", now, nil, nil, "ring bell", now, now))
	itemCols := []string{"id", "order_id", "service_id", "service_item_id", "name", "category", "service_type", "quantity", "price", "total_price"}
	mock.ExpectQuery("FROM order_items\\s+WHERE order_id = ANY").WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(itemCols).
			AddRow(1, 3, 1, "shirt", "Shirt", "men", "Regular", 2, "10.00", "20.00").
			AddRow(2, 3, 1, "pants", "Pants", "men", "Regular", 3, "5.00", "15.00"))

	o, err := NewPostgresRepository(db).GetByOrderID(context.Background(), "ORD-3")
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if o.TotalAmount != 35 || len(o.Items) != 2 || o.Items[1].TotalPrice != 15 {
		t.Fatalf("unexpected order %+v", o)
	}
	if o.PickupDate == nil || o.DeliveryDate != nil || o.Notes == nil || *o.Notes != "ring bell" {
		t.Fatalf("unexpected nullable fields %+v", o)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestList_BuildsFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("WHERE status = \\$1 AND lower\\(customer_email\\) = lower\\(\\$2\\) ORDER BY created_at DESC, id DESC LIMIT \\$3").
		WithArgs(StatusPending, "ada@example.com", 50).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	orders, err := NewPostgresRepository(db).List(context.Background(), Filter{Status: StatusPending, CustomerEmail: "ada@example.com", Limit: 50})
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected no orders, got %d", len(orders))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateStatus_MissingOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE orders").WithArgs(StatusConfirmed, nil, nil, 9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = NewPostgresRepository(db).UpdateStatus(context.Background(), 9, StatusConfirmed, nil, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
