package order

import "time"

// Order is a placed purchase. Items are written together with the order and
// never change afterwards.
type Order struct {
	ID                  int        `json:"id"`
	OrderID             string     `json:"orderId"`
	CustomerName        string     `json:"customerName"`
	CustomerEmail       string     `json:"customerEmail"`
	CustomerPhone       string     `json:"customerPhone"`
	CustomerAddress     *string    `json:"customerAddress,omitempty"`
	TotalAmount         float64    `json:"totalAmount"`
	Status              string     `json:"status"`
	PickupDate          *time.Time `json:"pickupDate"`
	DeliveryDate        *time.Time `json:"deliveryDate"`
	SpecialInstructions *string    `json:"specialInstructions,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
	Items               []Item     `json:"items"`
}

// Item snapshots the catalog item at the time the order was placed.
type Item struct {
	ID            int     `json:"id"`
	ServiceID     int     `json:"serviceId"`
	ServiceItemID string  `json:"serviceItemId"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	ServiceType   string  `json:"serviceType"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	TotalPrice    float64 `json:"totalPrice"`
}
