// Package server exposes the inference engine over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ryuk2git/tuitiontier/pkg/core"
	"github.com/ryuk2git/tuitiontier/pkg/inference"
)

// RequestIDHeader carries the per-request id echoed in responses and logs.
const RequestIDHeader = "X-Request-ID"

const maxBody = 1 << 20

var errNullBody = errors.New("body is null")

// PredictResponse is the body of a /predict reply.
type PredictResponse struct {
	RequestID string `json:"request_id"`
	Category  string `json:"category,omitempty"`
	Cluster   *int   `json:"cluster,omitempty"`
	Error     string `json:"error,omitempty"`
}

type handler struct {
	engine *inference.Engine
	log    zerolog.Logger
}

// NewHandler routes POST /predict, GET /healthz and GET /metrics.
func NewHandler(engine *inference.Engine, log zerolog.Logger) http.Handler {
	h := &handler{engine: engine, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /predict", h.predict)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (h *handler) predict(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, id)
	log := h.log.With().Str("request_id", id).Logger()

	var rec core.Record
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.UseNumber()
	err := dec.Decode(&rec)
	if err == nil && rec == nil {
		err = errNullBody
	}
	if err != nil {
		log.Debug().Err(err).Msg("bad request body")
		writeJSON(w, http.StatusBadRequest, PredictResponse{RequestID: id, Error: "body must be a JSON object of field values"})
		return
	}

	pred, err := h.engine.Predict(rec)
	switch {
	case err == nil:
		log.Info().Str("category", pred.Tier.String()).Int("cluster", pred.Cluster).Msg("predicted")
		writeJSON(w, http.StatusOK, PredictResponse{RequestID: id, Category: pred.Tier.String(), Cluster: &pred.Cluster})
	case inference.IsRejection(err):
		log.Info().Err(err).Msg("record rejected")
		writeJSON(w, http.StatusUnprocessableEntity, PredictResponse{RequestID: id, Error: err.Error()})
	default:
		log.Error().Err(err).Msg("inference failed")
		writeJSON(w, http.StatusInternalServerError, PredictResponse{RequestID: id, Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
