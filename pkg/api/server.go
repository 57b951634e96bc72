package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/att-innovate/torc-controller/pkg/log"
	"github.com/att-innovate/torc-controller/pkg/mesosclient"
	"github.com/att-innovate/torc-controller/pkg/metrics"
	"github.com/att-innovate/torc-controller/pkg/state"
	"github.com/att-innovate/torc-controller/pkg/types"
)

// ServiceGroupLister resolves a named api.service-groups[] entry into
// its instance-expanded task descriptors. *config.Config satisfies
// this; the interface exists so pkg/api does not need to import
// pkg/config directly.
type ServiceGroupLister interface {
	ServiceGroup(name string) ([]types.Task, bool)
}

// Server is the HTTP admin surface. It talks to the rest of the
// framework only through the state actor's client and the process-wide
// mesosclient slot — it holds no state of its own.
type Server struct {
	State  *state.Client
	Groups ServiceGroupLister
	mux    *http.ServeMux
}

// New constructs a Server and registers its routes.
func New(stateClient *state.Client, groups ServiceGroupLister) *Server {
	s := &Server{State: stateClient, Groups: groups, mux: http.NewServeMux()}

	s.mux.HandleFunc("/admin/ping", s.handlePing)
	s.mux.HandleFunc("/nodes", s.handleNodes)
	s.mux.HandleFunc("/services/metered", s.handleServicesMetered)
	s.mux.HandleFunc("/services/running", s.handleServicesRunning)
	s.mux.HandleFunc("/service", s.handleService)
	s.mux.HandleFunc("/start/group", s.handleStartGroup)
	s.mux.Handle("/metrics", metrics.Handler())

	return s
}

// ListenAndServe starts the admin surface on addr (conventionally
// "0.0.0.0:3005").
func (s *Server) ListenAndServe(addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	log.WithComponent("api").Info().Str("addr", addr).Msg("admin surface listening")
	return server.ListenAndServe()
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type resultResponse struct {
	Result string `json:"result"`
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("pong"))
}

// handleNodes returns the active node set. Only nodes the cluster
// master has advertised an offer for are "active"; config-declared but
// never-offered nodes are omitted.
func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	var active []types.Node
	for _, n := range s.State.GetNodes() {
		if n.Active {
			active = append(active, n)
		}
	}
	writeJSON(w, active)
}

func (s *Server) handleServicesMetered(w http.ResponseWriter, r *http.Request) {
	var out []types.Task
	for _, t := range s.State.GetRunningTasks() {
		if t.IsMetered {
			out = append(out, t)
		}
	}
	writeJSON(w, out)
}

func (s *Server) handleServicesRunning(w http.ResponseWriter, r *http.Request) {
	var out []types.Task
	for _, t := range s.State.GetRunningTasks() {
		if !t.IsJob {
			out = append(out, t)
		}
	}
	writeJSON(w, out)
}

// handleService dispatches GET (lookup by id prefix) and DELETE (kill by
// name). Neither the "id" nor the "name" query parameter gets any
// decoding beyond what net/http's Query() already does.
func (s *Server) handleService(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleServiceGet(w, r)
	case http.MethodDelete:
		s.handleServiceDelete(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleServiceGet looks up a task name by the "id" query parameter, a
// prefix of the task's cluster-assigned container id. Permissive CORS
// lets browser-based dashboards poll it cross-origin.
func (s *Server) handleServiceGet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	name := s.State.GetTaskNameByID(r.URL.Query().Get("id"))
	writeJSON(w, resultResponse{Result: name})
}

// handleServiceDelete kills the named task via the cluster master. A
// missing "name" parameter, or no subscribed driver yet, is logged and
// swallowed — the admin surface never signals a distinct error status
// for a malformed request.
func (s *Server) handleServiceDelete(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name != "" {
		if err := mesosclient.KillByName(name); err != nil {
			log.WithTaskName(log.WithComponent("api"), name).Warn().Err(err).Msg("kill request failed")
		}
	}
	writeJSON(w, resultResponse{Result: "done"})
}

// handleStartGroup enqueues every task in the named service group
// through StartTask. An unknown group name is logged and swallowed; the
// response is the same "done" marker either way.
func (s *Server) handleStartGroup(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	logger := log.WithComponent("api")

	tasks, ok := s.Groups.ServiceGroup(name)
	if !ok {
		logger.Warn().Str("group", name).Msg("start requested for unknown service group")
	}
	for _, task := range tasks {
		s.State.StartTask(task)
	}

	writeJSON(w, resultResponse{Result: "done"})
}
