package catalog

import "time"

const DefaultUnit = "Per Item"

// Service is a laundry offering such as dry cleaning. It owns ServiceItems.
type Service struct {
	ID              int       `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	FullDescription *string   `json:"fullDescription,omitempty"`
	Rating          *int      `json:"rating,omitempty"`
	Reviews         *int      `json:"reviews,omitempty"`
	Duration        *string   `json:"duration,omitempty"`
	Image           *string   `json:"image,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceItem is a priceable unit within a service.
type ServiceItem struct {
	ID          string    `json:"id"`
	ServiceID   int       `json:"serviceId"`
	Category    string    `json:"category"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Unit        string    `json:"unit"`
	Image       *string   `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// ServiceTitle is filled on reads from the owning service.
	ServiceTitle string `json:"serviceTitle,omitempty"`
}

// ServiceView is a service with its items grouped by category.
type ServiceView struct {
	Service
	Items map[string][]ItemView `json:"items"`
}

type ItemView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
}

// Seed is a service together with the items created for it.
type Seed struct {
	Service Service
	Items   []ServiceItem
}

func groupItems(items []ServiceItem) map[string][]ItemView {
	out := make(map[string][]ItemView)
	for _, it := range items {
		desc := ""
		if it.Description != nil {
			desc = *it.Description
		}
		unit := it.Unit
		if unit == "" {
			unit = DefaultUnit
		}
		out[it.Category] = append(out[it.Category], ItemView{
			ID:          it.ID,
			Name:        it.Name,
			Price:       it.Price,
			Description: desc,
			Unit:        unit,
		})
	}
	return out
}

func ptrString(s string) *string { return &s }
func ptrInt(i int) *int          { return &i }
