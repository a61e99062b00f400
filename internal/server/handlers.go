package server

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/pspoerri/photogridref/internal/exif"
	"github.com/pspoerri/photogridref/internal/locate"
	"github.com/pspoerri/photogridref/internal/metrics"
	"github.com/pspoerri/photogridref/internal/report"
	"github.com/pspoerri/photogridref/internal/source"
)

// Health provides a minimal liveness check endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GridRefHandler converts photos and positions to grid references.
type GridRefHandler struct {
	Log           *slog.Logger
	Metrics       *metrics.Metrics
	Locate        locate.Options
	MaxImageBytes int64
	DefaultFormat string
}

// FromImage reads a JPEG from the request body and reports the grid
// reference of its GPS position. The optional "format" query parameter
// selects the report format and "name" the file name shown in it.
func (h *GridRefHandler) FromImage(w http.ResponseWriter, r *http.Request) {
	enc, ok := h.encoder(w, r)
	if !ok {
		return
	}
	defer r.Body.Close()

	img, err := source.Read("request body", r.Body, h.MaxImageBytes)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Metrics.ImageBytes.Observe(float64(len(img.Data)))

	loc, err := exif.Parse(img.Data)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, enc, r.URL.Query().Get("name"), loc)
}

// FromPosition reports the grid reference of the "lat", "lon" and optional
// "alt" query parameters.
func (h *GridRefHandler) FromPosition(w http.ResponseWriter, r *http.Request) {
	enc, ok := h.encoder(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	if errLat != nil || errLon != nil {
		writeError(w, r, http.StatusBadRequest, "lat and lon must be decimal degrees")
		return
	}
	var alt float64
	if s := q.Get("alt"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			writeError(w, r, http.StatusBadRequest, "alt must be meters")
			return
		}
		alt = v
	}

	loc := &exif.Location{
		Latitude:     lat,
		Longitude:    lon,
		Altitude:     alt,
		LatitudeDMS:  exif.DMSFromDecimal(lat),
		LongitudeDMS: exif.DMSFromDecimal(lon),
	}
	h.respond(w, r, enc, "", loc)
}

func (h *GridRefHandler) encoder(w http.ResponseWriter, r *http.Request) (report.Encoder, bool) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = h.DefaultFormat
	}
	enc, err := report.NewEncoder(format)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return enc, true
}

func (h *GridRefHandler) respond(w http.ResponseWriter, r *http.Request, enc report.Encoder, name string, loc *exif.Location) {
	res, err := locate.Route(loc, h.Locate)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rec := report.New(name, loc, res)
	h.Metrics.Conversions.WithLabelValues(systemLabel(rec)).Inc()

	var buf bytes.Buffer
	if err := enc.Encode(&buf, rec); err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", enc.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.Log.ErrorContext(r.Context(), "failed to write reply", slog.String("error", err.Error()))
	}
}

// fail maps an error to a status code and writes the error response.
func (h *GridRefHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, reason := classify(err)
	if reason != "" {
		h.Metrics.ParseErrors.WithLabelValues(reason).Inc()
	}
	if status >= http.StatusInternalServerError {
		h.Log.ErrorContext(r.Context(), "conversion failed",
			slog.String("req_id", RequestID(r.Context())),
			slog.String("error", err.Error()))
		writeError(w, r, status, "internal error")
		return
	}
	h.Log.DebugContext(r.Context(), "request rejected",
		slog.String("req_id", RequestID(r.Context())),
		slog.String("error", err.Error()))
	writeError(w, r, status, err.Error())
}

// classify returns the HTTP status for err and, for rejected images, the
// reason label counted in metrics.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, source.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, source.ErrEmpty), errors.Is(err, exif.ErrEmptyOrTruncated):
		return http.StatusBadRequest, "truncated"
	case errors.Is(err, exif.ErrNotAnImage):
		return http.StatusBadRequest, "not_an_image"
	case errors.Is(err, exif.ErrCorruptDirectory):
		return http.StatusBadRequest, "corrupt"
	case errors.Is(err, exif.ErrNoGPSData):
		return http.StatusUnprocessableEntity, "no_gps"
	case errors.Is(err, locate.ErrInvalidPosition):
		return http.StatusBadRequest, ""
	case errors.Is(err, report.ErrOutsideGrid):
		return http.StatusUnprocessableEntity, ""
	default:
		return http.StatusInternalServerError, ""
	}
}

func systemLabel(rec *report.Record) string {
	if rec.Grid == nil {
		return report.SystemNone
	}
	return rec.System
}
