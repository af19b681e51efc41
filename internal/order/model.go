package order

import (
	"time"

	"cafe-pos/internal/money"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	// StatusPaid is a legacy terminal status some stored rows still carry.
	StatusPaid Status = "paid"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusCompleted, StatusPaid:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusPaid
}

// Line is one menu item entry of an order. Name and Price are a snapshot of
// the catalog at the time the item was added.
type Line struct {
	ID         string
	OrderID    string
	MenuItemID string
	Name       string
	Price      int64
	Quantity   int
	Notes      *string
	CreatedAt  time.Time
}

func (l Line) Subtotal() int64 {
	return money.LineTotal(l.Price, l.Quantity)
}

type Order struct {
	ID            string
	TableID       string
	Status        Status
	Total         int64
	Discount      *int64
	Tax           *int64
	CustomerName  *string
	CustomerPhone *string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Lines         []Line
}

// ItemCount is the number of units across all lines.
func (o *Order) ItemCount() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

func (o *Order) recomputeTotal() {
	subtotals := make([]int64, len(o.Lines))
	for i, l := range o.Lines {
		subtotals[i] = l.Subtotal()
	}
	o.Total = money.Sum(subtotals...)
}

func (o *Order) lineIndex(lineID string) int {
	for i, l := range o.Lines {
		if l.ID == lineID {
			return i
		}
	}
	return -1
}

// mergeTarget finds the line an added unit folds into: same menu item at the
// same unit price.
func (o *Order) mergeTarget(menuItemID string, price int64) int {
	for i, l := range o.Lines {
		if l.MenuItemID == menuItemID && l.Price == price {
			return i
		}
	}
	return -1
}

func (o *Order) clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Discount = cloneInt64(o.Discount)
	c.Tax = cloneInt64(o.Tax)
	c.CustomerName = cloneString(o.CustomerName)
	c.CustomerPhone = cloneString(o.CustomerPhone)
	c.Notes = cloneString(o.Notes)
	c.Lines = make([]Line, len(o.Lines))
	for i, l := range o.Lines {
		l.Notes = cloneString(l.Notes)
		c.Lines[i] = l
	}
	return &c
}

// Candidate is an item the cashier wants to add to a table's order.
type Candidate struct {
	MenuItemID string
	Name       string
	Price      int64
	Quantity   int
	Notes      string
}

// Customer holds the optional details captured in the payment dialog.
type Customer struct {
	Name  string
	Phone string
	Notes string
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
