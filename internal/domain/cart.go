package domain

// CartLine is one product the shopper intends to buy. Title, Image, Unit
// and Price are snapshots taken when the line was first added and are
// never refreshed from the catalog. Qty is always >= 1; a line that would
// reach zero is removed instead of kept at zero.
type CartLine struct {
	ProductID string  `json:"id"`
	Title     string  `json:"title"`
	Image     string  `json:"image,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// LineTotal is the payable amount for this line at its snapshot price.
func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Qty)
}
