package handler

import (
	"net/http"
	"time"

	"cafe-pos/internal/auth"
	"cafe-pos/internal/staff"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	PIN      string `json:"pin" validate:"required,min=4,max=12"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	Staff     *staff.Staff `json:"staff"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	token, member, err := h.staff.Login(r.Context(), req.Username, req.PIN)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(staff.TokenTTL),
	})

	respondWithJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresIn: int64(staff.TokenTTL / time.Second),
		Staff:     member,
	})
}
