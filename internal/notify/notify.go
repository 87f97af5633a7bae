// Package notify sends transactional order emails. Delivery failures are
// reported through Result and never returned as errors, so callers can log
// them and carry on.
package notify

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Notifier announces order events to the customer.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, order OrderSummary) Result
	SendStatusUpdate(ctx context.Context, order OrderSummary, newStatus string) Result
}

// OrderSummary is the order data an email needs.
type OrderSummary struct {
	ID            int           `json:"id"`
	OrderID       string        `json:"orderId"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	TotalAmount   float64       `json:"totalAmount"`
	Status        string        `json:"status"`
	PickupDate    *time.Time    `json:"pickupDate,omitempty"`
	DeliveryDate  *time.Time    `json:"deliveryDate,omitempty"`
	Items         []ItemSummary `json:"items,omitempty"`
}

type ItemSummary struct {
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	TotalPrice float64 `json:"totalPrice"`
}

// Result is the outcome of one send attempt.
type Result struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

func failed(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

// StatusLabel renders a status for subjects, e.g. "out_for_delivery" becomes
// "OUT FOR DELIVERY".
func StatusLabel(status string) string {
	return strings.ToUpper(strings.ReplaceAll(status, "_", " "))
}

// Reference is the identifier shown to customers: the public order id when
// present, otherwise the numeric id.
func (o OrderSummary) Reference() string {
	if o.OrderID != "" {
		return o.OrderID
	}
	return strconv.Itoa(o.ID)
}
