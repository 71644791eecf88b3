package model

import "github.com/shopspring/decimal"

// CartLine is a session-local cart entry. Name and price are captured when
// the item is first added and do not follow later menu edits.
type CartLine struct {
	ItemID   string          `json:"itemId"`
	ItemName string          `json:"itemName"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// OrderLine converts the cart line into its order counterpart.
func (l CartLine) OrderLine() OrderLine {
	return OrderLine{ItemName: l.ItemName, Quantity: l.Quantity, UnitPrice: l.Price}
}
