package table

import "fmt"

// DefaultLayout is the café floor: one takeaway counter, ten VIP rooms and
// nine regular tables.
func DefaultLayout() []Table {
	tables := []Table{{ID: "takeaway", Name: "Mang về", Type: TypeTakeaway, Status: StatusAvailable}}

	for i := 1; i <= 10; i++ {
		tables = append(tables, Table{
			ID:     fmt.Sprintf("vip%d", i),
			Name:   fmt.Sprintf("Phòng VIP %d", i),
			Type:   TypeVIP,
			Status: StatusAvailable,
		})
	}
	for i := 1; i <= 9; i++ {
		tables = append(tables, Table{
			ID:     fmt.Sprintf("ban%d", i),
			Name:   fmt.Sprintf("Bàn %d", i),
			Type:   TypeRegular,
			Status: StatusAvailable,
		})
	}
	return tables
}
