package order

import "strings"

const (
	StatusPending        = "pending"
	StatusConfirmed      = "confirmed"
	StatusProcessing     = "processing"
	StatusReadyForPickup = "ready_for_pickup"
	StatusOutForDelivery = "out_for_delivery"
	StatusCompleted      = "completed"
	StatusCancelled      = "cancelled"
)

// lifecycle is the forward order of statuses. Cancelled is terminal and sits
// outside it.
var lifecycle = []string{
	StatusPending,
	StatusConfirmed,
	StatusProcessing,
	StatusReadyForPickup,
	StatusOutForDelivery,
	StatusCompleted,
}

// Statuses lists every accepted status.
func Statuses() []string {
	return append(append([]string{}, lifecycle...), StatusCancelled)
}

// ParseStatus normalizes s and reports whether it is a known status.
func ParseStatus(s string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, st := range Statuses() {
		if v == st {
			return v, true
		}
	}
	return "", false
}

// stage returns the position of status in the lifecycle. Cancelled orders
// never progressed past placement.
func stage(status string) int {
	for i, st := range lifecycle {
		if st == status {
			return i
		}
	}
	return 0
}
