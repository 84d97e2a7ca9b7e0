package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// genericFailureMessage - единый текст для любых сбоев бэкенда
const genericFailureMessage = "Request failed. Please try again later."

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// errorStatus сопоставляет доменную ошибку со статус-кодом и текстом для клиента
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrBackendUnavailable):
		return http.StatusBadGateway, genericFailureMessage
	case errors.Is(err, domain.ErrFieldNotEditable):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrRouteConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, "Session is required"
	case errors.Is(err, domain.ErrAnonymous):
		return http.StatusForbidden, err.Error()
	}
	return http.StatusInternalServerError, "Internal server error"
}

// respondWithError пишет ошибку use case в лог и в ответ
func respondWithError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	code, message := errorStatus(err)
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": handler, "status_code": code})
	if code >= http.StatusInternalServerError {
		logger.Error("Request failed", err, nil)
	} else {
		logger.Warn("Request rejected", port.Fields{"error": err.Error()})
	}
	WriteJSONError(w, code, message)
}

// decodeJSON разбирает тело запроса. Неизвестные поля допускаются, если strict == false.
func decodeJSON(r *http.Request, dst any, strict bool) error {
	decoder := json.NewDecoder(r.Body)
	if strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(dst); err != nil {
		if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			return fmt.Errorf("%w: %s", domain.ErrFieldNotEditable, strings.Trim(field, `"`))
		}
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	return nil
}

// parseMaxPrice разбирает верхнюю границу цены. "1000+" читается как граница 1000.
func parseMaxPrice(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(strings.TrimSuffix(raw, "+"), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return nil, fmt.Errorf("%w: invalid price %q", domain.ErrValidation, raw)
	}
	return &value, nil
}

// multiValue поддерживает и повторяющиеся параметры, и список через запятую
func multiValue(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
	}
	return result
}
