package menu

import "time"

type Category string

const (
	CategoryCoffee Category = "coffee"
	CategoryTea    Category = "tea"
	CategoryJuice  Category = "juice"
	CategorySnacks Category = "snacks"
	CategoryFood   Category = "food"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryCoffee, CategoryTea, CategoryJuice, CategorySnacks, CategoryFood:
		return true
	}
	return false
}

// MenuItem is a sellable catalog entry. Price is in whole VND.
type MenuItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Category    Category  `json:"category"`
	Available   bool      `json:"available"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
