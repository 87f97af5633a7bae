package order

import "time"

var stepLabels = map[string]string{
	StatusPending:        "Order Placed",
	StatusConfirmed:      "Confirmed",
	StatusProcessing:     "Processing",
	StatusReadyForPickup: "Ready for Pickup",
	StatusOutForDelivery: "Out for Delivery",
	StatusCompleted:      "Completed",
}

type TrackingStep struct {
	Status    string     `json:"status"`
	Label     string     `json:"label"`
	Completed bool       `json:"completed"`
	Timestamp *time.Time `json:"timestamp"`
}

// Tracking is the customer-facing progress view of an order.
type Tracking struct {
	ID            int            `json:"id"`
	OrderID       string         `json:"orderId"`
	Status        string         `json:"status"`
	CustomerName  string         `json:"customerName"`
	TotalAmount   float64        `json:"totalAmount"`
	PickupDate    *time.Time     `json:"pickupDate"`
	DeliveryDate  *time.Time     `json:"deliveryDate"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Items         []Item         `json:"items"`
	TrackingSteps []TrackingStep `json:"trackingSteps"`
}

// BuildTracking derives one step per lifecycle stage. A step is completed
// when the order has reached it. Only the first step carries a timestamp,
// the order's creation time.
func BuildTracking(o Order) Tracking {
	current := stage(o.Status)
	steps := make([]TrackingStep, 0, len(lifecycle))
	for i, st := range lifecycle {
		step := TrackingStep{Status: st, Label: stepLabels[st], Completed: i <= current}
		if i == 0 {
			created := o.CreatedAt
			step.Timestamp = &created
		}
		steps = append(steps, step)
	}

	return Tracking{
		ID:            o.ID,
		OrderID:       o.OrderID,
		Status:        o.Status,
		CustomerName:  o.CustomerName,
		TotalAmount:   o.TotalAmount,
		PickupDate:    o.PickupDate,
		DeliveryDate:  o.DeliveryDate,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Items:         o.Items,
		TrackingSteps: steps,
	}
}
