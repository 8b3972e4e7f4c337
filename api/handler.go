package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"booking-cost/core/output"
	"booking-cost/internal/errors"
)

const maxBodyBytes = 1 << 16

// handleQuote handles POST /quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.observeQuote(modeUnknown, "bad_request", started)
		s.writeError(w, r, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON", nil)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.metrics.observeQuote(modeLabel(req.PaymentMode), "bad_request", started)
		s.writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "request failed validation", validationDetails(err))
		return
	}
	if req.Days == 0 {
		req.Days = 1
	}

	q, err := s.calc.QuoteInput(req.StartTime, req.EndTime, req.PaymentMode, req.Days)
	if err != nil {
		s.metrics.observeQuote(modeLabel(req.PaymentMode), "rejected", started)
		s.log.Info("quote rejected",
			zap.String("start_time", req.StartTime),
			zap.String("end_time", req.EndTime),
			zap.String("payment_mode", req.PaymentMode),
			zap.String("type", string(errors.TypeOf(err))),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
		s.writeDomainError(w, r, err)
		return
	}

	if req.Breakdown != nil && !*req.Breakdown {
		trimmed := *q
		trimmed.Segments = nil
		q = &trimmed
	}

	resp := QuoteResponse{
		ID:      uuid.NewString(),
		Quote:   q,
		Summary: output.Summary(q),
	}
	s.metrics.observeQuote(string(q.Mode), "ok", started)
	s.log.Debug("quote",
		zap.String("id", resp.ID),
		zap.Int64("total", q.Total),
		zap.Int("segments", len(q.Segments)),
	)
	s.writeJSON(w, r, http.StatusOK, resp)
}

// handleRates handles GET /rates
func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	table := s.calc.Table()
	s.writeJSON(w, r, http.StatusOK, RatesResponse{
		Currency: table.Currency(),
		Bands:    table.Bands(),
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": s.version,
	})
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{
		"version": s.version,
	})
}

// statusFor maps a domain error type to an HTTP status.
func statusFor(t errors.Type) int {
	switch t {
	case errors.TypeInvalidFormat, errors.TypeInvalidInterval, errors.TypeInvalidArgument:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := errors.As(err)
	if !ok {
		s.log.Error("unexpected error", zap.Error(err))
		s.writeError(w, r, http.StatusInternalServerError, string(errors.TypeInternal), "internal error", nil)
		return
	}
	status := statusFor(e.Type)
	if status == http.StatusInternalServerError {
		s.log.Error("quote failed", zap.Error(err))
	}
	s.writeError(w, r, status, string(e.Type), e.Message, e.Context)
}

func validationDetails(err error) map[string]any {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	details := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]any) {
	s.writeJSON(w, r, status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
