// Package devserver hosts the content layer during development: it serves
// the frontend assets over HTTP, bridges IPC commands over a websocket and
// pushes reload events when the assets change on disk.
package devserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"appshell/internal/appcontext"
	"appshell/internal/ipc"
	"appshell/internal/logger"
)

type Server struct {
	cfg        appcontext.DevConfig
	dispatcher *ipc.Dispatcher
	bus        *ipc.Bus
	log        logger.Logger

	upgrader websocket.Upgrader
	httpSrv  *http.Server
	watcher  *assetWatcher
}

func New(cfg appcontext.DevConfig, d *ipc.Dispatcher, bus *ipc.Bus, log logger.Logger) *Server {
	s := &Server{
		cfg:        cfg,
		dispatcher: d,
		bus:        bus,
		log:        log,
		upgrader: websocket.Upgrader{
			// Dev-only server bound to loopback; the browser origin varies
			// with the chosen port, so the origin check stays open here.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.httpSrv = &http.Server{Handler: s.Handler()}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.Assets)))
	mux.HandleFunc("/ipc", s.handleIPC)
	return mux
}

// Start binds the listener and begins serving in the background. A bind
// failure is returned synchronously so startup can abort.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}

	watcher, err := newAssetWatcher(s.cfg.Assets, s.bus, s.log)
	if err != nil {
		ln.Close()
		return err
	}
	s.watcher = watcher

	s.log.Info("DevServer", "serving assets", map[string]interface{}{
		"address": ln.Addr().String(),
		"assets":  s.cfg.Assets,
	})

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("DevServer", err, nil)
		}
	}()
	return nil
}

func (s *Server) Shutdown() {
	if s.watcher != nil {
		s.watcher.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		s.log.Warning("DevServer", "http shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

type invokeRequest struct {
	ID   string          `json:"id"`
	Cmd  string          `json:"cmd"`
	Args json.RawMessage `json:"args"`
}

// invokeResponse always carries the result field on success, even when the
// handler returned nothing, so clients can tell "succeeded with null" from
// a truncated frame.
type invokeResponse struct {
	ID     string `json:"id"`
	Result any    `json:"result"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleIPC(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warning("DevServer", "websocket upgrade failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// One writer guards the socket: responses and pushed events interleave.
	var writeMu sync.Mutex
	write := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	events, unsubscribe := s.bus.Subscribe()
	defer unsubscribe()
	go func() {
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				if err := write(ev); err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		var req invokeRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}

		result, err := s.dispatcher.Invoke(ctx, req.Cmd, req.Args)
		resp := invokeResponse{ID: req.ID, Result: result}
		if err != nil {
			resp = invokeResponse{ID: req.ID, Error: err.Error()}
		}
		if err := write(resp); err != nil {
			return
		}
	}
}
