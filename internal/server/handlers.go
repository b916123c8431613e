package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/billmap/internal/dashboard"
	"github.com/sells-group/billmap/internal/geo"
	"github.com/sells-group/billmap/internal/model"
	"github.com/sells-group/billmap/internal/stats"
)

// SummaryResponse is the body of GET /api/summary.
type SummaryResponse struct {
	Summary stats.Summary   `json:"summary"`
	Panel   dashboard.Panel `json:"panel"`
}

// RegionResponse is the body of GET /api/region.
type RegionResponse struct {
	BBox    geo.BBox        `json:"bbox"`
	Rows    model.Table     `json:"rows"`
	Summary stats.Summary   `json:"summary"`
	Panel   dashboard.Panel `json:"panel"`
}

// MarkersResponse is the body of GET /api/markers. View is omitted when
// there are no bills.
type MarkersResponse struct {
	Markers []dashboard.Marker `json:"markers"`
	View    *geo.View          `json:"view,omitempty"`
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// dataset loads the dataset for a request, answering 500 itself on failure.
func (s *Server) dataset(w http.ResponseWriter, r *http.Request) (*dashboard.Dataset, bool) {
	ds, err := s.src.Dataset(r.Context())
	if err != nil {
		zap.L().Error("server: build dataset",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "failed to load bills")
		return nil, false
	}
	return ds, true
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	sum := ds.Summary()
	writeJSON(w, http.StatusOK, SummaryResponse{Summary: sum, Panel: s.printer.Overall(sum)})
}

func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	box, err := geo.ParseBBox(q.Get("south"), q.Get("west"), q.Get("north"), q.Get("east"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	region := ds.Region(box)
	writeJSON(w, http.StatusOK, RegionResponse{
		BBox:    region.BBox,
		Rows:    region.Table,
		Summary: region.Summary,
		Panel:   s.printer.Regional(region.Summary, ds.Summary()),
	})
}

func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	resp := MarkersResponse{Markers: ds.Markers()}
	if v, ok := ds.View(); ok {
		resp.View = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePopup(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}

	hash := chi.URLParam(r, "hash")
	html, err := ds.Popup(s.formatter, hash)
	switch {
	case errors.Is(err, dashboard.ErrUnknownBill):
		writeError(w, http.StatusNotFound, "unknown bill")
		return
	case err != nil:
		zap.L().Error("server: render popup",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("identity_hash", hash),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "failed to render receipt")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}
