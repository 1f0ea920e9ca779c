package domain

// Product is a catalog entry as the backend API returns it. Cart lines
// copy their display fields and price from it at add time.
type Product struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Image       string  `json:"image,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	Stock       int     `json:"stock,omitempty"`
}
