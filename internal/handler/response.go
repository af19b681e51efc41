package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"cafe-pos/internal/apperr"
	"cafe-pos/internal/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.L().Error("failed to marshal JSON response", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		logger.L().Warn("failed to write JSON response", zap.Error(err))
	}
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrInsufficientPayment):
		return http.StatusPaymentRequired
	case errors.Is(err, apperr.ErrStorage):
		return http.StatusServiceUnavailable
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondWithServiceError maps a domain error to a status code. Messages of
// storage and unexpected failures are not exposed to the client.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code := mapErrorToStatusCode(err)
	log := logger.FromCtx(r.Context()).With(
		zap.String("layer", "handler"),
		zap.String("path", r.URL.Path),
		zap.Int("status", code),
		zap.Error(err),
	)

	switch code {
	case http.StatusServiceUnavailable:
		log.Error("store unavailable")
		respondWithError(w, code, "store unavailable, please retry")
	case http.StatusInternalServerError:
		log.Error("unexpected error")
		respondWithError(w, code, "internal server error")
	default:
		log.Info("request rejected")
		respondWithError(w, code, err.Error())
	}
}

// decodeAndValidate reads a JSON body into dst, rejecting unknown fields, and
// runs the struct's validate tags. It writes the 400 response itself and
// reports whether the handler may continue.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		logger.FromCtx(r.Context()).Info("failed to decode request body",
			zap.String("layer", "handler"),
			zap.Error(err),
		)
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid request payload: %v", err))
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondWithJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "validation failed",
				Details: formatValidationErrors(validationErrors),
			})
			return false
		}
		logger.FromCtx(r.Context()).Error("unexpected validation error", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "internal validation error")
		return false
	}
	return true
}

func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			details[field] = "is required"
		case "min", "gte":
			details[field] = "must be at least " + fe.Param()
		case "max", "lte":
			details[field] = "must be at most " + fe.Param()
		case "oneof":
			details[field] = "must be one of: " + fe.Param()
		default:
			details[field] = "is invalid"
		}
	}
	return details
}
