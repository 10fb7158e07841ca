// Package handler exposes the ingestion pipeline over HTTP. This is boundary
// glue only; all behavior lives in the statement service.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/brenkeeper/brenkeeper/internal/domain/statement"
	"github.com/brenkeeper/brenkeeper/internal/domain/statement/service"
)

// StatementHandler handles statement upload requests.
type StatementHandler struct {
	svc            *service.Service
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewStatementHandler creates a handler. maxUploadBytes caps the request
// body; zero means the 10 MiB default.
func NewStatementHandler(svc *service.Service, logger *slog.Logger, maxUploadBytes int64) *StatementHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &StatementHandler{svc: svc, logger: logger, maxUploadBytes: maxUploadBytes}
}

// Health reports liveness.
func (h *StatementHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Upload ingests a multipart statement upload (field "statement") and
// responds with the transactions, cashflow summary, and export artifacts.
func (h *StatementHandler) Upload(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := h.logger.With(slog.String("request_id", requestID))

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("statement")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded. Please attach a bank statement.")
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		logger.Error("failed to read uploaded file", slog.Any("error", err))
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file.")
		return
	}

	result, err := h.svc.Process(r.Context(), payload, header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		logger.Error("failed to process uploaded statement",
			slog.String("filename", header.Filename),
			slog.Any("error", err))
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// statusFor maps the pipeline error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, statement.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, statement.ErrParserUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusUnprocessableEntity
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
