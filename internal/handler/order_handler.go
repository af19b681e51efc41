package handler

import (
	"net/http"

	"cafe-pos/internal/apperr"
	"cafe-pos/internal/order"

	"github.com/go-chi/chi/v5"
)

// AddItemRequest adds one of the item when quantity is omitted.
type AddItemRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   *int   `json:"quantity" validate:"omitempty,min=1,max=99"`
	Notes      string `json:"notes" validate:"max=200"`
}

// UpdateItemRequest sets a line's quantity; zero or less removes the line.
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type UpdateStatusRequest struct {
	Status order.Status `json:"status" validate:"required"`
}

func (h *Handler) handleListActiveOrders(w http.ResponseWriter, r *http.Request) {
	view, err := h.orders.Refresh(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, order.ToResponses(view.Orders()))
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.ActiveOrder(r.Context(), chi.URLParam(r, "tableID"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, order.ToResponse(o))
}

// handleAddItem snapshots the catalog name and price at the moment of adding.
func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.menu.Get(r.Context(), req.MenuItemID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	if !item.Available {
		respondWithServiceError(w, r, apperr.Invalid("menu_item_id", "is not available"))
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	o, err := h.orders.AddItem(r.Context(), chi.URLParam(r, "tableID"), order.Candidate{
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Quantity:   quantity,
		Notes:      req.Notes,
	})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, order.ToResponse(o))
}

func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	o, err := h.orders.UpdateItemQuantity(r.Context(),
		chi.URLParam(r, "tableID"), chi.URLParam(r, "lineID"), *req.Quantity)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithOrder(w, o)
}

func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.RemoveItem(r.Context(), chi.URLParam(r, "tableID"), chi.URLParam(r, "lineID"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithOrder(w, o)
}

func (h *Handler) handleClearOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.ClearOrder(r.Context(), chi.URLParam(r, "tableID")); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "tableID"), req.Status)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, order.ToResponse(o))
}

// respondWithOrder answers 204 when the last line went and the order with it.
func respondWithOrder(w http.ResponseWriter, o *order.Order) {
	if o == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondWithJSON(w, http.StatusOK, order.ToResponse(o))
}
