package cart

// DefaultSessionID is used when a request carries no session identifier.
const DefaultSessionID = "default"

// Line is a stored cart row: one per (cart, service item).
type Line struct {
	ServiceItemID string
	ServiceID     int
	Quantity      int
}

// Item is a cart line resolved against the catalog.
type Item struct {
	ID            string  `json:"id"`
	ServiceItemID string  `json:"serviceItemId"`
	ServiceID     int     `json:"serviceId"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	ServiceType   string  `json:"serviceType"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
}

// Cart is the cart view returned to clients. Totals are derived from Items
// on every read.
type Cart struct {
	SessionID  string  `json:"sessionId"`
	Items      []Item  `json:"items"`
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
}
