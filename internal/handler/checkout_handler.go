package handler

import (
	"net/http"

	"cafe-pos/internal/checkout"
	"cafe-pos/internal/order"
	"cafe-pos/internal/payment"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type CheckoutRequest struct {
	Method        payment.Method        `json:"method" validate:"required,oneof=cash card momo zalopay banking"`
	DiscountKind  checkout.DiscountKind `json:"discount_kind" validate:"omitempty,oneof=percent amount"`
	DiscountValue decimal.Decimal       `json:"discount_value"`
	Tendered      int64                 `json:"tendered" validate:"min=0"`
	CustomerName  string                `json:"customer_name" validate:"max=100"`
	CustomerPhone string                `json:"customer_phone" validate:"max=20"`
	Notes         string                `json:"notes" validate:"max=500"`
}

func (req CheckoutRequest) input() checkout.Input {
	return checkout.Input{
		Method:        req.Method,
		DiscountKind:  req.DiscountKind,
		DiscountValue: req.DiscountValue,
		Tendered:      req.Tendered,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
	}
}

type CheckoutResponse struct {
	Settlement   *checkout.Settlement `json:"settlement"`
	Payment      *payment.Payment     `json:"payment"`
	Order        *order.OrderResponse `json:"order"`
	Instructions []string             `json:"instructions"`
}

func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	settlement, err := h.checkout.Quote(r.Context(), chi.URLParam(r, "tableID"), req.input())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, settlement)
}

func (h *Handler) handlePay(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	receipt, err := h.checkout.Pay(r.Context(), chi.URLParam(r, "tableID"), req.input())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, CheckoutResponse{
		Settlement:   receipt.Settlement,
		Payment:      receipt.Payment,
		Order:        order.ToResponse(receipt.Order),
		Instructions: receipt.Instructions,
	})
}

func (h *Handler) handleListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.checkout.Payments(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, payments)
}
