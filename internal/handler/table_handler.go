package handler

import (
	"net/http"

	"cafe-pos/internal/apperr"
	"cafe-pos/internal/order"
	"cafe-pos/internal/table"
)

// TableResponse is a table with occupancy derived from the active orders.
type TableResponse struct {
	table.Table
	Occupied    bool          `json:"occupied"`
	ItemCount   int           `json:"item_count"`
	OrderTotal  int64         `json:"order_total"`
	OrderStatus *order.Status `json:"order_status,omitempty"`
}

func (h *Handler) handleListTables(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tables, err := h.tables.List(ctx)
	if err != nil {
		respondWithServiceError(w, r, apperr.Storage("list tables", err))
		return
	}

	view, err := h.orders.Refresh(ctx)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toTableResponses(tables, view))
}

func toTableResponses(tables []table.Table, view *order.ActiveOrders) []TableResponse {
	out := make([]TableResponse, 0, len(tables))
	for _, t := range tables {
		resp := TableResponse{Table: t}
		if o, ok := view.Order(t.ID); ok {
			status := o.Status
			resp.Occupied = true
			resp.ItemCount = o.ItemCount()
			resp.OrderTotal = o.Total
			resp.OrderStatus = &status
		}
		out = append(out, resp)
	}
	return out
}

func (h *Handler) handleListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}
