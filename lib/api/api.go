package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/fosdem/layertunnel/lib/config"
	"github.com/fosdem/layertunnel/lib/layer"
	"github.com/fosdem/layertunnel/lib/metrics"
	"github.com/fosdem/layertunnel/lib/rotation"
	"github.com/fosdem/layertunnel/lib/stats"
	"github.com/fosdem/layertunnel/lib/theatre"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fosdem/layertunnel/lib/api/docs"
)

//	@title			layertunnel API
//	@version		1.0
//	@description	Control and monitoring of the layer tunnel visualiser

type Api struct {
	srv     http.Server
	mux     *http.ServeMux
	cfg     *config.Config
	theatre *theatre.Theatre

	Stats *stats.Stats

	wsClients      map[*wsClient]bool
	wsClientsMutex sync.Mutex
}

func New(cfg *config.Config, t *theatre.Theatre, s *stats.Stats) *Api {
	a := &Api{}
	a.cfg = cfg
	a.mux = http.NewServeMux()
	a.theatre = t
	a.Stats = s
	if cfg.Api != nil {
		a.srv.Addr = cfg.Api.Bind
	}
	a.srv.Handler = a.mux
	a.wsClients = make(map[*wsClient]bool)

	t.AddEventListener(theatre.EventModeChange, func(t *theatre.Theatre, data interface{}) {
		event := data.(theatre.EventDataModeChange)
		a.debug("Rotation mode switched to %s (manual: %t)", event.Mode, event.Manual)

		packet, err := json.Marshal(event)
		if err != nil {
			a.error("could not encode event: %s", err)
			return
		}
		a.broadcast(packet)
	})
	a.routes()
	return a
}

func (a *Api) routes() {
	if a.cfg.Api != nil && a.cfg.Api.EnableProfiler {
		a.mux.HandleFunc("/prof", a.profileCPU)
	}
	a.mux.HandleFunc("/api/kill", a.suicide)
	a.mux.HandleFunc("GET /api/stats", a.getStats)
	a.mux.HandleFunc("GET /api/config", a.handleConfig)
	a.mux.HandleFunc("GET /api/mode", a.getMode)
	a.mux.HandleFunc("POST /api/mode", a.handleModeJson)
	a.mux.HandleFunc("POST /api/mode/{mode}", a.handleMode)
	a.mux.HandleFunc("/api/ws", a.handleWebsocket)
	a.mux.Handle("/metrics", metrics.Handler())
	a.mux.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

// Handler exposes the routes without starting a server
func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	return a.srv.ListenAndServe()
}

func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}

// @Summary	Stop the visualiser
// @Router		/api/kill [post]
// @Tags		base
// @Success	200
func (a *Api) suicide(w http.ResponseWriter, _ *http.Request) {
	a.log("shutting down as per api request")
	a.theatre.RequestShutdown()
	a.writeOk(w)
}

// @Summary	Get render and scene statistics
// @Router		/api/stats [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	stats.Data
func (a *Api) getStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(a.Stats.Get())
	if err != nil {
		http.Error(w, fmt.Sprintf("could encode stats: %s", err), http.StatusInternalServerError)
		return
	}
}

type Config struct {
	Modes        []string `json:"modes"`
	Script       []string `json:"script"`
	CycleSeconds float64  `json:"cycle_seconds"`
	Patterns     []string `json:"patterns"`
	Pattern      string   `json:"pattern"`
	Points       int      `json:"points"`
	FPS          float32  `json:"fps"`
	Debug        bool     `json:"debug"`
}

// @Summary	Get the running configuration
// @Router		/api/config [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	Config
func (a *Api) handleConfig(w http.ResponseWriter, _ *http.Request) {
	result := &Config{
		CycleSeconds: a.cfg.Modes.CycleSeconds,
		Patterns:     layer.PatternNames(),
		Pattern:      a.cfg.Pattern.Kind,
		Points:       len(a.theatre.Scheduler.Pattern),
		FPS:          a.cfg.SimulationRate(),
		Debug:        a.cfg.Debug.Enabled,
	}
	for m := rotation.Mode(0); m < rotation.NumModes; m++ {
		result.Modes = append(result.Modes, m.String())
	}
	for _, m := range a.theatre.Cycler.Script() {
		result.Script = append(result.Script, m.String())
	}
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(result)
	if err != nil {
		http.Error(w, fmt.Sprintf("couldn't encode config: %s", err), http.StatusInternalServerError)
		return
	}
}

func (a *Api) writeOk(w http.ResponseWriter) {
	_, err := fmt.Fprintf(w, "\"ok\"\n")
	if err != nil {
		a.error("could not write response: %s", err.Error())
		return
	}
}

func (a *Api) log(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...), slog.String("module", "api"))
}

func (a *Api) debug(msg string, args ...interface{}) {
	slog.Debug(fmt.Sprintf(msg, args...), slog.String("module", "api"))
}

func (a *Api) error(msg string, args ...interface{}) {
	slog.Error(fmt.Sprintf(msg, args...), slog.String("module", "api"))
}

func ServeInBackground(cfg *config.Config, t *theatre.Theatre, s *stats.Stats) *Api {
	if cfg.Api == nil {
		return nil
	}
	theApi := New(cfg, t, s)

	theApi.log("starting web server on %s", cfg.Api.Bind)
	go func() {
		err := theApi.Serve()
		if err != nil {
			theApi.error("could not start web server: %s", err)
			t.RequestShutdown()
		}
	}()
	return theApi
}
