package api

import (
	"errors"
	"io"
	"net/http"

	"lp-rebalance-calc/internal/estimate"
	"lp-rebalance-calc/internal/metrics"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 16

type ErrorResponse struct {
	Error string `json:"error" msgpack:"error"`
}

type AssumptionsResponse struct {
	Assumptions []string `json:"assumptions" msgpack:"assumptions"`
	Note        string   `json:"note" msgpack:"note"`
}

type Server struct {
	estimator *estimate.Estimator
	metrics   *metrics.Metrics
	log       *zap.Logger
	mux       *http.ServeMux
}

// New builds the API routes. metricsPath and metricsHandler may be empty/nil
// to leave the exposition endpoint unmounted.
func New(est *estimate.Estimator, m *metrics.Metrics, log *zap.Logger, metricsPath string, metricsHandler http.Handler) *Server {
	if m == nil {
		m = metrics.NewNoop()
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{estimator: est, metrics: m, log: log, mux: http.NewServeMux()}
	s.mux.HandleFunc("/v1/estimate", s.handleEstimate)
	s.mux.HandleFunc("/v1/assumptions", s.handleAssumptions)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	if metricsPath != "" && metricsHandler != nil {
		s.mux.Handle(metricsPath, metricsHandler)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.metrics.RequestsFailed.Inc()
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req estimate.Request
	if err := decodeBody(r, &req); err != nil {
		s.metrics.RequestsFailed.Inc()
		msg := "malformed request body"
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		s.log.Debug("estimate decode failed", zap.Error(err))
		s.writeError(w, r, http.StatusBadRequest, msg)
		return
	}
	res, err := s.estimator.Estimate(req)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	s.write(w, r, http.StatusOK, res)
}

func (s *Server) handleAssumptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.metrics.RequestsFailed.Inc()
		w.Header().Set("Allow", http.MethodGet)
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.write(w, r, http.StatusOK, AssumptionsResponse{
		Assumptions: estimate.Assumptions(),
		Note:        estimate.BreakEvenNote,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.write(w, r, status, ErrorResponse{Error: msg})
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, v any) {
	contentType, body, err := encodeBody(r, v)
	if err != nil {
		s.log.Error("response encode failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.log.Debug("response write failed", zap.Error(err))
	}
}
