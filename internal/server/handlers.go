package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/agbru/bncalc/internal/calc"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/logging"
	"github.com/agbru/bncalc/internal/service"
	"github.com/agbru/bncalc/pkg/models"
)

// requestError is a client error detected before evaluation.
type requestError struct {
	status  int
	message string
}

func (e requestError) Error() string { return e.message }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Unix(),
	})
}

func (s *Server) handleOperations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, service.ToOperations(s.service.Operations()))
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, service.ToLayout(s.service.Layout()))
}

// handleCalculate evaluates one operation. GET reads op, a, b and input from
// the query string; POST reads a models.CalculationRequest body.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var (
		req calc.Request
		err error
	)
	switch r.Method {
	case http.MethodGet:
		req, err = parseCalculateQuery(r)
	case http.MethodPost:
		req, err = parseCalculateBody(r)
	default:
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var reqErr requestError
	if errors.As(err, &reqErr) {
		s.writeErrorResponse(w, reqErr.status, reqErr.message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	res, err := s.service.Calculate(ctx, req)
	status := statusFor(err)
	if status == http.StatusBadRequest {
		s.writeErrorResponse(w, status, err.Error())
		return
	}
	switch {
	case status == http.StatusInternalServerError:
		s.logger.Error("calculation failed", err, logging.String("op", req.Op))
	case apperrors.IsContextError(err):
		s.logger.Debug("calculation interrupted", logging.String("op", req.Op), logging.Err(err))
	}
	s.writeJSONResponse(w, status, service.ToResponse(res, err))
}

// statusFor maps an evaluation error to an HTTP status. Oracle mismatches
// and other unexpected failures are server errors.
func statusFor(err error) int {
	var (
		validationErr apperrors.ValidationError
		overflowErr   apperrors.OverflowError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.Is(err, service.ErrOperandTooLong):
		return http.StatusBadRequest
	case errors.As(err, &overflowErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func parseCalculateQuery(r *http.Request) (calc.Request, error) {
	q := r.URL.Query()
	op := strings.ToLower(strings.TrimSpace(q.Get("op")))
	if op == "" {
		return calc.Request{}, requestError{http.StatusBadRequest, "Missing 'op' parameter"}
	}
	var operands []string
	for _, name := range []string{"a", "b"} {
		if q.Has(name) {
			operands = append(operands, q.Get(name))
		}
	}
	return buildRequest(op, operands, q.Get("input"))
}

func parseCalculateBody(r *http.Request) (calc.Request, error) {
	var body models.CalculationRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return calc.Request{}, requestError{http.StatusRequestEntityTooLarge, "Request body too large"}
		}
		return calc.Request{}, requestError{http.StatusBadRequest, "Invalid JSON body: " + err.Error()}
	}
	op := strings.ToLower(strings.TrimSpace(body.Op))
	if op == "" {
		return calc.Request{}, requestError{http.StatusBadRequest, "Missing 'op' field"}
	}
	return buildRequest(op, body.Operands, body.Input)
}

func buildRequest(op string, operands []string, input string) (calc.Request, error) {
	req := calc.Request{Op: op, Operands: operands}
	if input != "" {
		f, ok := calc.ParseFormat(input)
		if !ok {
			return calc.Request{}, requestError{http.StatusBadRequest, "Invalid 'input': must be hex or dec"}
		}
		req.Input = f
	}
	return req, nil
}

// writeJSONResponse writes data as JSON with the given status.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err)
	}
}

// writeErrorResponse writes a models.ErrorResponse.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
