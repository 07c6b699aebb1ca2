// Package web hosts the bridge UI as a script-driven HTML page. The page is served
// over HTTP and attaches through a websocket: page script sends JSON messages up,
// and every notification goes down as a script call the page evaluates.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	appevents "github.com/rescp17/yourcontrols/internal/app_events"
	"github.com/rescp17/yourcontrols/internal/config"
	"github.com/rescp17/yourcontrols/pkg/concurrency"
	"github.com/rescp17/yourcontrols/pkg/discovery"
	"github.com/rescp17/yourcontrols/pkg/protocol"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	scriptQueueSize = 256
	shutdownTimeout = 5 * time.Second
)

// Backend is the application-side handle of the web UI.
type Backend struct {
	title      string
	exited     concurrency.ExitFlag
	inbox      *concurrency.Mailbox[appevents.AppEvent]
	page       concurrency.Slot[*pageConn]
	guard      *concurrency.ConcurrencyGuard
	serializer protocol.MessageSerializer
	upgrader   websocket.Upgrader

	listener   net.Listener
	server     *http.Server
	document   []byte
	bridgePath string
	grace      time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu         sync.Mutex
	graceTimer *time.Timer
}

// pageConn is one attached page. Scripts are queued on a buffered channel and
// written by a dedicated goroutine, so Invoke never blocks on the network.
type pageConn struct {
	id      string
	conn    *websocket.Conn
	scripts chan string
	closed  chan struct{}
}

// Setup binds the listener, renders the page and spawns the server goroutine.
// Failures that happen before anything is spawned are returned.
func Setup(title string, uiCfg config.UIConfig, webCfg config.WebConfig) (*Backend, error) {
	ln, err := net.Listen("tcp", webCfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", webCfg.Addr, err)
	}

	bridgePath := "/bridge/" + uuid.NewString()
	doc, err := renderDocument(title, bridgePath, webCfg.LogoPath)
	if err != nil {
		ln.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &Backend{
		title:      title,
		inbox:      concurrency.NewMailbox[appevents.AppEvent](uiCfg.QueueSize),
		guard:      concurrency.NewConcurrencyGuard(),
		serializer: protocol.NewJSONSerializer(),
		listener:   ln,
		document:   doc,
		bridgePath: bridgePath,
		grace:      webCfg.ReconnectGrace,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	b.server = &http.Server{
		Handler:           b.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go b.serve()
	if webCfg.Announce {
		go b.announce()
	}
	slog.Info("Web UI ready", "url", b.URL())
	return b, nil
}

func (b *Backend) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", b.handleDocument)
	mux.HandleFunc("GET /bridge/{token}", b.handleBridge)
	return mux
}

func (b *Backend) serve() {
	defer close(b.done)
	err := b.server.Serve(b.listener)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Web UI server failed", "error", err)
	}
	b.cancel()
	b.page.With(func(p *pageConn) {
		p.conn.Close()
	})
	b.exited.Set()
	b.inbox.Close()
	slog.Info("Web UI closed")
}

func (b *Backend) announce() {
	port := b.listener.Addr().(*net.TCPAddr).Port
	info := discovery.ServiceInfo{
		Name:   b.title,
		Type:   discovery.ServiceType,
		Domain: discovery.DefaultDomain,
		Port:   port,
		Path:   "/",
	}
	adapter := &discovery.MDNSAdapter{}
	if err := adapter.Announce(b.ctx, info); err != nil {
		slog.Warn("Failed to announce web UI", "error", err)
	}
}

// Addr is the address the page is served on.
func (b *Backend) Addr() string {
	return b.listener.Addr().String()
}

// URL is the address a browser should open.
func (b *Backend) URL() string {
	return "http://" + b.Addr() + "/"
}

func (b *Backend) handleDocument(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(b.document); err != nil {
		slog.Debug("Failed to write page", "error", err)
	}
}

func (b *Backend) handleBridge(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != b.bridgePath {
		http.NotFound(w, r)
		return
	}
	err := b.guard.Execute(func() error {
		return b.attach(w, r)
	})
	if errors.Is(err, concurrency.ErrBusy) {
		slog.Warn("Rejected page, another one is attached", "remote", r.RemoteAddr)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{
			"error": concurrency.ErrBusy.Error(),
		})
		return
	}
	if err != nil {
		slog.Debug("Page detached", "error", err)
	}
}

// attach serves one page for as long as its websocket stays open.
func (b *Backend) attach(w http.ResponseWriter, r *http.Request) error {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("upgrade: %w", err)
	}
	b.stopGrace()

	p := &pageConn{
		id:      uuid.NewString(),
		conn:    conn,
		scripts: make(chan string, scriptQueueSize),
		closed:  make(chan struct{}),
	}
	b.page.Store(p)
	slog.Info("Page attached", "page", p.id, "remote", r.RemoteAddr)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		b.writeLoop(p)
	}()

	err = b.readLoop(p)

	b.page.Clear(func(cur *pageConn) bool { return cur == p })
	close(p.closed)
	conn.Close()
	wg.Wait()
	slog.Info("Page detached", "page", p.id)

	b.startGrace()
	return err
}

func (b *Backend) readLoop(p *pageConn) error {
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return err
			}
			return nil
		}
		msg, err := b.serializer.Unmarshal(data)
		if err != nil {
			slog.Debug("Dropping undecodable page message", "error", err)
			continue
		}
		if !b.inbox.Send(msg) {
			slog.Warn("Dropping page message, inbox unavailable", "type", msg.Type())
		}
	}
}

func (b *Backend) writeLoop(p *pageConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case script := <-p.scripts:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.TextMessage, []byte(script)); err != nil {
				slog.Debug("Failed to deliver script", "page", p.id, "error", err)
				p.conn.Close()
				return
			}
		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				p.conn.Close()
				return
			}
		case <-p.closed:
			return
		}
	}
}

// startGrace arms the exit timer after the page detached. A page attaching before
// it fires cancels it.
func (b *Backend) startGrace() {
	if b.ctx.Err() != nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.graceTimer != nil {
		b.graceTimer.Stop()
	}
	b.graceTimer = time.AfterFunc(b.grace, func() {
		if b.page.Populated() {
			return
		}
		slog.Info("No page reattached, closing web UI", "grace", b.grace)
		b.shutdown()
	})
}

func (b *Backend) stopGrace() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.graceTimer != nil {
		b.graceTimer.Stop()
		b.graceTimer = nil
	}
}

func (b *Backend) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := b.server.Shutdown(ctx); err != nil {
		slog.Debug("Web UI shutdown", "error", err)
	}
}

// Close stops the server, detaches any page and waits for the UI goroutine to finish.
func (b *Backend) Close() {
	b.stopGrace()
	b.cancel()
	b.page.With(func(p *pageConn) {
		p.conn.Close()
	})
	b.shutdown()
	<-b.done
}

func (b *Backend) Exited() bool {
	return b.exited.IsSet()
}

func (b *Backend) NextMessage() (appevents.AppEvent, error) {
	return b.inbox.TryRecv()
}

// Invoke hands the notification to the attached page as a script call. Before a
// page attaches, or when its queue is full, the notification is dropped.
func (b *Backend) Invoke(tag protocol.MessageType, data *string) {
	script, err := protocol.ScriptCall(protocol.Envelope{Type: tag, Data: data})
	if err != nil {
		slog.Debug("Dropping notification", "type", tag, "error", err)
		return
	}
	b.page.With(func(p *pageConn) {
		select {
		case p.scripts <- script:
		default:
			slog.Debug("Page queue full, dropping notification", "type", tag)
		}
	})
}
