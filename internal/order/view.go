package order

import "sort"

// ActiveOrders is a read-only snapshot of the non-terminal orders, keyed by
// table id. Occupancy is derived from it, never from the stored table status.
type ActiveOrders struct {
	byTable map[string]*Order
}

func newActiveOrders(byTable map[string]*Order) *ActiveOrders {
	snapshot := make(map[string]*Order, len(byTable))
	for tableID, o := range byTable {
		snapshot[tableID] = o.clone()
	}
	return &ActiveOrders{byTable: snapshot}
}

func (v *ActiveOrders) IsOccupied(tableID string) bool {
	_, ok := v.byTable[tableID]
	return ok
}

// ItemCount is the number of units ordered at the table, 0 without an order.
func (v *ActiveOrders) ItemCount(tableID string) int {
	o, ok := v.byTable[tableID]
	if !ok {
		return 0
	}
	return o.ItemCount()
}

// Order returns a copy of the table's active order.
func (v *ActiveOrders) Order(tableID string) (*Order, bool) {
	o, ok := v.byTable[tableID]
	if !ok {
		return nil, false
	}
	return o.clone(), true
}

func (v *ActiveOrders) Tables() []string {
	ids := make([]string, 0, len(v.byTable))
	for id := range v.byTable {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (v *ActiveOrders) Len() int {
	return len(v.byTable)
}

// Orders lists the active orders sorted by table id.
func (v *ActiveOrders) Orders() []*Order {
	out := make([]*Order, 0, len(v.byTable))
	for _, id := range v.Tables() {
		out = append(out, v.byTable[id].clone())
	}
	return out
}
