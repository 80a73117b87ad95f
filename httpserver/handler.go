package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campusgrid/metersim/fleet"
	"github.com/campusgrid/metersim/meter"
	"github.com/campusgrid/metersim/seal"
)

// maxBodySize is the maximum allowed request body size (1MB).
const maxBodySize = 1024 * 1024

// Handler processes HTTP requests for the fleet reporting API.
type Handler struct {
	fleet *fleet.Fleet
	log   *slog.Logger
}

// NewHandler creates a handler serving the given fleet.
func NewHandler(f *fleet.Fleet, log *slog.Logger) *Handler {
	return &Handler{fleet: f, log: log}
}

// AddMeterRequest is the body of POST /api/meters. MeterID is optional; an
// empty one derives an identity from the class prefix.
type AddMeterRequest struct {
	Type    string `json:"type"`
	MeterID string `json:"meter_id,omitempty"`
}

// VerifyResponse is the body of POST /api/meters/{meter_id}/verify.
type VerifyResponse struct {
	Valid bool `json:"valid"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleAddMeter registers a new meter with the fleet. Responds 400 for an
// unknown class, 409 for an identity already in use.
func (h *Handler) HandleAddMeter(w http.ResponseWriter, r *http.Request) {
	var req AddMeterRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("malformed request body"))
		return
	}

	class, err := meter.ParseClass(req.Type)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	m, err := h.fleet.AddMeter(class, req.MeterID)
	if err != nil {
		if errors.Is(err, fleet.ErrDuplicateMeter) {
			h.writeError(w, http.StatusConflict, err)
		} else {
			h.writeError(w, http.StatusBadRequest, err)
		}
		return
	}

	h.log.Info("Meter added", "meterId", m.ID(), "class", m.Class().String())
	h.writeJSON(w, http.StatusCreated, m.Info())
}

// HandleMeterInfo returns the public description of one meter.
func (h *Handler) HandleMeterInfo(w http.ResponseWriter, r *http.Request) {
	m, ok := h.fleet.Meter(chi.URLParam(r, "meter_id"))
	if !ok {
		h.writeError(w, http.StatusNotFound, errors.New("unknown meter"))
		return
	}
	h.writeJSON(w, http.StatusOK, m.Info())
}

// HandleGenerateReading produces a signed reading from one meter. An
// optional ?timestamp query parameter supplies the epoch-millisecond time;
// without it the current time is used.
func (h *Handler) HandleGenerateReading(w http.ResponseWriter, r *http.Request) {
	m, ok := h.fleet.Meter(chi.URLParam(r, "meter_id"))
	if !ok {
		h.writeError(w, http.StatusNotFound, errors.New("unknown meter"))
		return
	}

	timestamp, hasTimestamp, err := timestampParam(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var reading meter.Reading
	if hasTimestamp {
		reading, err = m.GenerateReadingAt(timestamp)
	} else {
		reading, err = m.GenerateReading()
	}
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	h.writeJSON(w, http.StatusOK, reading)
}

// HandleVerifyReading checks a reading's authentication tag against the
// named meter's key. The result is always a boolean; a tampered reading is
// a negative verdict, not an error.
func (h *Handler) HandleVerifyReading(w http.ResponseWriter, r *http.Request) {
	m, ok := h.fleet.Meter(chi.URLParam(r, "meter_id"))
	if !ok {
		h.writeError(w, http.StatusNotFound, errors.New("unknown meter"))
		return
	}

	var reading meter.Reading
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&reading); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("malformed reading"))
		return
	}

	// Structurally invalid encodings are a bad request; a well-formed but
	// wrong signature is a negative verdict below.
	if _, err := seal.NewSignature(string(reading.Signature)); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	if _, err := seal.NewDataHash(string(reading.DataHash)); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	h.writeJSON(w, http.StatusOK, VerifyResponse{Valid: m.VerifyReading(reading)})
}

// HandleGenerateAllReadings produces one signed reading per fleet meter,
// all for the same timestamp, in insertion order.
func (h *Handler) HandleGenerateAllReadings(w http.ResponseWriter, r *http.Request) {
	timestamp, hasTimestamp, err := timestampParam(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var readings []meter.Reading
	if hasTimestamp {
		readings, err = h.fleet.GenerateAllReadingsAt(timestamp)
	} else {
		readings, err = h.fleet.GenerateAllReadings()
	}
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	h.writeJSON(w, http.StatusOK, readings)
}

// HandleFleetStatus returns meter counts and per-meter info records.
func (h *Handler) HandleFleetStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.fleet.Status())
}

func timestampParam(r *http.Request) (int64, bool, error) {
	raw := r.URL.Query().Get("timestamp")
	if raw == "" {
		return 0, false, nil
	}

	timestamp, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, errors.New("timestamp must be an integer of epoch milliseconds")
	}
	return timestamp, true, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("Failed to encode response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.log.Debug("Request rejected", "status", status, "err", err)
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}
