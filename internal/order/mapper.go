package order

import "time"

type LineResponse struct {
	ID         string    `json:"id"`
	MenuItemID string    `json:"menu_item_id"`
	Name       string    `json:"name"`
	Price      int64     `json:"price"`
	Quantity   int       `json:"quantity"`
	Subtotal   int64     `json:"subtotal"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type OrderResponse struct {
	ID            string         `json:"id"`
	TableID       string         `json:"table_id"`
	Status        Status         `json:"status"`
	Total         int64          `json:"total"`
	ItemCount     int            `json:"item_count"`
	Discount      *int64         `json:"discount,omitempty"`
	Tax           *int64         `json:"tax,omitempty"`
	CustomerName  *string        `json:"customer_name,omitempty"`
	CustomerPhone *string        `json:"customer_phone,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
	Items         []LineResponse `json:"items"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func MapLineToResponse(l Line) LineResponse {
	return LineResponse{
		ID:         l.ID,
		MenuItemID: l.MenuItemID,
		Name:       l.Name,
		Price:      l.Price,
		Quantity:   l.Quantity,
		Subtotal:   l.Subtotal(),
		Notes:      l.Notes,
		CreatedAt:  l.CreatedAt,
	}
}

func ToResponse(o *Order) *OrderResponse {
	if o == nil {
		return nil
	}

	items := make([]LineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, MapLineToResponse(l))
	}

	return &OrderResponse{
		ID:            o.ID,
		TableID:       o.TableID,
		Status:        o.Status,
		Total:         o.Total,
		ItemCount:     o.ItemCount(),
		Discount:      o.Discount,
		Tax:           o.Tax,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Notes:         o.Notes,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func ToResponses(orders []*Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToResponse(o))
	}
	return out
}
