package table

import "time"

type Type string

const (
	TypeRegular  Type = "regular"
	TypeVIP      Type = "vip"
	TypeTakeaway Type = "takeaway"
)

// Status is the stored, cosmetic table status. Occupancy shown to staff is
// derived from active orders, not from this field.
type Status string

const (
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
	StatusReserved  Status = "reserved"
	StatusCleaning  Status = "cleaning"
)

type Table struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	Status    Status    `json:"status"`
	Capacity  *int      `json:"capacity,omitempty"`
	Floor     *string   `json:"floor,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
