package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rustyeddy/tradedash/analytics"
	"github.com/rustyeddy/tradedash/journal"
)

// filterFromQuery reads the active selection from query parameters:
// range, start, end, bucket, weekday, instrument and q.
func (s *Server) filterFromQuery(r *http.Request) (analytics.Filter, error) {
	q := r.URL.Query()
	f := analytics.Filter{
		Range: analytics.RangeSpec{
			Preset: q.Get("range"),
			Start:  q.Get("start"),
			End:    q.Get("end"),
		},
		TimeBucket: q.Get("bucket"),
		Weekday:    q.Get("weekday"),
		Instrument: q.Get("instrument"),
		Search:     q.Get("q"),
	}
	if f.Range == (analytics.RangeSpec{}) {
		f.Range.Preset = s.defaultRange
	}
	return f.Normalize()
}

// compute loads a fresh snapshot of the journal and runs the engine over it.
// It writes the error response itself and reports false on failure.
func (s *Server) compute(w http.ResponseWriter, r *http.Request) (analytics.Dashboard, analytics.Filter, bool) {
	f, err := s.filterFromQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return analytics.Dashboard{}, f, false
	}

	trades, err := s.store.List()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list trades")
		s.writeError(w, http.StatusInternalServerError, "Failed to load trades")
		return analytics.Dashboard{}, f, false
	}

	d, err := analytics.Compute(trades, f, s.now())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return analytics.Dashboard{}, f, false
	}
	return d, f, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type dashboardResponse struct {
	Filter  analytics.Filter         `json:"filter"`
	Display analytics.MetricsDisplay `json:"display"`
	analytics.Dashboard
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, f, ok := s.compute(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, dashboardResponse{Filter: f, Display: d.Metrics.Display(), Dashboard: d})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	d, _, ok := s.compute(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"range":   d.Range,
		"metrics": d.Metrics,
		"display": d.Metrics.Display(),
	})
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	d, _, ok := s.compute(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, d.Daily)
}

// handleCalendar returns the whole calendar index, or one month of it when
// month=YYYY-MM is given. Filters never apply here.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	trades, err := s.store.List()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list trades")
		s.writeError(w, http.StatusInternalServerError, "Failed to load trades")
		return
	}
	index := analytics.Calendar(trades)

	month := r.URL.Query().Get("month")
	if month == "" {
		s.writeJSON(w, http.StatusOK, index)
		return
	}
	m, err := time.Parse("2006-01", month)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	days := analytics.CalendarMonth(index, m.Year(), m.Month())
	if days == nil {
		days = []analytics.CalendarDay{}
	}
	s.writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleCalendarDay(w http.ResponseWriter, r *http.Request) {
	d, ok := analytics.ParseLocalDate(chi.URLParam(r, "date"))
	if !ok {
		s.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	trades, err := s.store.List()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list trades")
		s.writeError(w, http.StatusInternalServerError, "Failed to load trades")
		return
	}

	key := analytics.FormatDateKey(d)
	day, found := analytics.Calendar(trades)[key]
	if !found {
		day = analytics.CalendarDay{Date: key, Trades: []journal.Trade{}}
	}
	s.writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleInstruments(w http.ResponseWriter, r *http.Request) {
	trades, err := s.store.List()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list trades")
		s.writeError(w, http.StatusInternalServerError, "Failed to load trades")
		return
	}
	s.writeJSON(w, http.StatusOK, analytics.Instruments(trades))
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	buckets := make([]string, len(analytics.TimeBuckets))
	for i, b := range analytics.TimeBuckets {
		buckets[i] = string(b)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"ranges":      analytics.Presets,
		"default":     s.defaultRange,
		"timeBuckets": buckets,
		"weekdays":    analytics.Weekdays,
	})
}

// handleTrades lists the filtered trades in entry order.
func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	f, err := s.filterFromQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rng, err := analytics.ResolveRange(f.Range, s.now())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trades, err := s.store.List()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list trades")
		s.writeError(w, http.StatusInternalServerError, "Failed to load trades")
		return
	}
	s.writeJSON(w, http.StatusOK, analytics.Apply(trades, rng, f))
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.log.Error().Err(err).Msg("Failed to get trade")
		s.writeError(w, http.StatusInternalServerError, "Failed to load trade")
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}
