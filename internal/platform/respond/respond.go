// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package respond provides a unified JSON response envelope for the admin HTTP
surface.

Architecture:

  - Envelope: all responses are wrapped in a standard structure.
  - JSON: default content-type is 'application/json; charset=utf-8'.
  - Errors: integrates with 'apperr' for consistent error reporting.
*/
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/catalogsync/sir/internal/platform/apperr"
	"github.com/catalogsync/sir/internal/platform/ctxkey"
)

// SuccessEnvelope is the JSON envelope for successful single-resource responses.
type SuccessEnvelope struct {
	Data interface{} `json:"data"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// # Error Handling

// httpStatusFor maps an [apperr.Kind] onto the HTTP status the admin surface reports.
func httpStatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindData:
		return http.StatusNotFound
	case apperr.KindSemantic:
		return http.StatusUnprocessableEntity
	case apperr.KindStructural:
		return http.StatusInternalServerError
	default:
		return http.StatusServiceUnavailable
	}
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Transient(err, "unclassified error")
	}

	logger := getLoggerFromContext(request)
	logger.ErrorContext(request.Context(), "admin_api_error",
		slog.String("code", appError.Code),
		slog.String("kind", appError.Kind.String()),
		slog.String("request_id", getRequestIDFromContext(request)),
		slog.Any("cause", appError.Cause),
	)

	JSON(writer, httpStatusFor(appError.Kind), ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}

func getLoggerFromContext(request *http.Request) *slog.Logger {
	if logger, ok := request.Context().Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

func getRequestIDFromContext(request *http.Request) string {
	if id, ok := request.Context().Value(ctxkey.KeyRequestID).(string); ok {
		return id
	}
	return ""
}
