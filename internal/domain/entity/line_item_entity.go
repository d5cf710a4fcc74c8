package entity

// LineItem is one cart entry submitted at checkout. It is never persisted.
// Price is in major currency units (e.g. dollars).
type LineItem struct {
	Name  string
	Price float64
	Qty   int64
}
