package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"wavesphere/internal/core"
	"wavesphere/internal/render"
	"wavesphere/internal/sim"
)

// Server runs the simulation headless and streams field frames to websocket
// clients. All simulation access happens on the loop goroutine; client reads
// funnel gesture events into it through a channel, so the simulation itself
// stays single-threaded.
type Server struct {
	sim *sim.Sim
	tps int

	events chan sim.Event

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex

	upgrader websocket.Upgrader
}

// New constructs a Server around an existing simulation. The server owns a
// view for gesture picking, so remote clients can both draw and rotate; the
// rotation is shared by all clients, matching a single shared screen.
func New(s *sim.Sim, tps int) *Server {
	view := render.NewSphereView(256)
	machine := s.Machine()
	machine.SetAngleResolver(view.Pick)
	machine.SetRotateFunc(view.Rotate)
	return &Server{
		sim:     s,
		tps:     tps,
		events:  make(chan sim.Event, 256),
		clients: map[*websocket.Conn]*sync.Mutex{},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run serves websocket clients on addr until ctx is cancelled.
func (sv *Server) Run(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", sv.handleWS)

	httpSrv := &http.Server{Addr: addr, Handler: mux}

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		sv.loop(ctx)
	}()
	go func() {
		<-ctx.Done()
		httpSrv.Close()
	}()

	log.Printf("serving on %s", addr)
	err := httpSrv.ListenAndServe()
	<-loopDone
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// loop is the single goroutine that owns the simulation. Pending gestures
// are applied before each tick so their impulses are visible to that tick's
// wave update.
func (sv *Server) loop(ctx context.Context) {
	timer := core.NewFixedStep(sv.tps)
	ticker := time.NewTicker(timer.Interval() / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-sv.events:
			sv.sim.Dispatch(ev)
		case <-ticker.C:
			for timer.ShouldStep() {
				sv.drainEvents()
				sv.sim.Step()
				sv.broadcast(sv.frame())
			}
		}
	}
}

func (sv *Server) drainEvents() {
	for {
		select {
		case ev := <-sv.events:
			sv.sim.Dispatch(ev)
		default:
			return
		}
	}
}

func (sv *Server) frame() Frame {
	grid := sv.sim.Grid()
	heights := make([]float32, len(grid.Front()))
	copy(heights, grid.Front())
	return Frame{
		Type:    msgFrame,
		Tick:    sv.sim.Ticks(),
		Cols:    grid.Cols(),
		Rows:    grid.Rows(),
		Heights: heights,
	}
}

func (sv *Server) broadcast(frame Frame) {
	sv.clientsMu.RLock()
	var failed []*websocket.Conn
	for conn, mu := range sv.clients {
		mu.Lock()
		err := conn.WriteJSON(frame)
		mu.Unlock()
		if err != nil {
			conn.Close()
			failed = append(failed, conn)
		}
	}
	sv.clientsMu.RUnlock()

	if len(failed) > 0 {
		sv.clientsMu.Lock()
		for _, conn := range failed {
			delete(sv.clients, conn)
		}
		sv.clientsMu.Unlock()
	}
}

func (sv *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := sv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	sv.clientsMu.Lock()
	sv.clients[conn] = connMu
	sv.clientsMu.Unlock()
	defer func() {
		sv.clientsMu.Lock()
		delete(sv.clients, conn)
		sv.clientsMu.Unlock()
	}()

	for {
		var msg GestureMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("websocket read: %v", err)
			}
			return
		}
		ev, err := msg.Event()
		if err != nil {
			log.Printf("dropping message: %v", err)
			continue
		}
		sv.events <- ev
	}
}
