package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/afterschool_planner/internal/metrics"
	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/Freeeeeet/afterschool_planner/internal/service"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"go.uber.org/zap/zapio"
)

type Server struct {
	srv *http.Server
}

type api struct {
	planner *service.PlannerService
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewRouter собирает маршруты. metrics может быть nil, тогда /metrics не отдаётся.
func NewRouter(ps *service.PlannerService, m *metrics.Metrics, logger *zap.Logger) http.Handler {
	a := &api{planner: ps, metrics: m, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/health", a.health).Methods(http.MethodGet)
	if m != nil {
		r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(a.countRequests)
	apiRouter.HandleFunc("/slots", a.listSlots).Methods(http.MethodGet)
	apiRouter.HandleFunc("/quote", a.quote).Methods(http.MethodPost)

	accessLog := &zapio.Writer{Log: logger.Named("http"), Level: zap.DebugLevel}

	var h http.Handler = r
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{logger}))(h)
	h = handlers.CombinedLoggingHandler(accessLog, h)
	return h
}

func New(addr string, ps *service.PlannerService, m *metrics.Metrics, logger *zap.Logger) *Server {
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           NewRouter(ps, m, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

type recoveryLogger struct {
	logger *zap.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("HTTP handler panic", zap.Any("panic", v))
}

func (a *api) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if a.metrics != nil {
			route := r.URL.Path
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			a.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (a *api) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type slotsResponse struct {
	Version int64        `json:"version"`
	Count   int          `json:"count"`
	Slots   []model.Slot `json:"slots"`
}

// listSlots GET /api/slots?band=morning&band=evening&subject=Math,Chess
// Без band показываются все полосы, без subject все предметы.
func (a *api) listSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	bands := planner.AllBandSet()
	if raw := splitParams(q["band"]); len(raw) > 0 {
		bands = planner.NewBandSet()
		for _, name := range raw {
			b, ok := planner.ParseBand(name)
			if !ok {
				writeError(w, http.StatusBadRequest, "unknown band: "+name)
				return
			}
			bands[b] = struct{}{}
		}
	}

	subjects := planner.NewSubjectSet(splitParams(q["subject"])...)

	slots := a.planner.Search(bands, subjects)
	if day := q.Get("day"); day != "" {
		dow, err := strconv.Atoi(day)
		if err != nil || !model.ValidDay(dow) {
			writeError(w, http.StatusBadRequest, "day must be 1..7")
			return
		}
		slots = onDay(slots, dow)
	}
	if slots == nil {
		slots = []model.Slot{}
	}

	_, version := a.planner.Catalog()
	writeJSON(w, http.StatusOK, slotsResponse{Version: version, Count: len(slots), Slots: slots})
}

type quoteRequest struct {
	SlotIDs []string `json:"slot_ids"`
}

type quoteResponse struct {
	planner.Quote
	Items   []model.Slot `json:"items"`
	Missing []string     `json:"missing,omitempty"`
}

// quote POST /api/quote {"slot_ids": [...]}
func (a *api) quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, cart, missing := a.planner.QuoteIDs(req.SlotIDs)
	items := cart.Sorted()
	if items == nil {
		items = []model.Slot{}
	}
	writeJSON(w, http.StatusOK, quoteResponse{Quote: q, Items: items, Missing: missing})
}

func splitParams(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func onDay(slots []model.Slot, dow int) []model.Slot {
	var out []model.Slot
	for _, s := range slots {
		if s.DayOfWeek == dow {
			out = append(out, s)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
