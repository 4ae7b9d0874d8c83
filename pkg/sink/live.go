package sink

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/image/draw"

	"github.com/go-drift/exoclock/pkg/errors"
)

//go:embed web/index.html
var indexHTML []byte

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	pongWait   = pingPeriod + writeWait
)

// LiveOptions configure a Live sink.
type LiveOptions struct {
	// MaxWidth scales frames wider than this down before sending.
	// Zero sends frames at full size.
	MaxWidth int
	// ClientBuffer is the number of frames queued per client before the
	// client is considered too slow and disconnected. Zero means 2.
	ClientBuffer int
	// Logger receives connection events. Nil discards them.
	Logger *slog.Logger
}

// Live serves the most recent frame over HTTP and pushes every new frame
// to connected websocket clients as a binary PNG message.
//
// Routes: "/" serves a viewer page, "/ws" upgrades to the frame stream,
// "/frame.png" returns the latest frame and "/health" reports status.
type Live struct {
	opts     LiveOptions
	upgrader websocket.Upgrader
	mux      *http.ServeMux
	logger   *slog.Logger

	mu      sync.Mutex
	clients map[*liveClient]struct{}
	latest  []byte
	seq     uint64
	server  *http.Server
	closed  bool
}

// liveClient is one websocket viewer. Only its writer goroutine touches
// conn for writing; close asks the writer to say goodbye and hang up.
type liveClient struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
	done chan struct{}
}

func (c *liveClient) close() {
	c.once.Do(func() { close(c.done) })
}

// hangUp sends a normal-closure frame and closes the connection.
func (c *liveClient) hangUp() {
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	_ = c.conn.Close()
}

// NewLive returns a live sink. It does not listen until ListenAndServe.
func NewLive(opts LiveOptions) *Live {
	if opts.ClientBuffer <= 0 {
		opts.ClientBuffer = 2
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	l := &Live{
		opts:    opts,
		logger:  logger,
		clients: make(map[*liveClient]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", l.serveIndex)
	mux.HandleFunc("GET /frame.png", l.serveFrame)
	mux.HandleFunc("GET /ws", l.serveWS)
	mux.HandleFunc("GET /health", l.serveHealth)
	l.mux = mux
	return l
}

// Handler returns the sink's HTTP handler.
func (l *Live) Handler() http.Handler {
	return l.mux
}

// ListenAndServe serves the live view on addr until Close is called, then
// returns http.ErrServerClosed.
func (l *Live) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.New("sink.Live.ListenAndServe", errors.KindInit, err)
	}
	return l.Serve(ln)
}

// Serve serves the live view on ln until Close is called.
func (l *Live) Serve(ln net.Listener) error {
	srv := &http.Server{
		Handler:           l.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		_ = ln.Close()
		return http.ErrServerClosed
	}
	l.server = srv
	l.mu.Unlock()

	l.logger.Info("live view listening", slog.String("addr", ln.Addr().String()))
	return srv.Serve(ln)
}

// Clients returns the number of connected websocket clients.
func (l *Live) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Publish encodes the frame once and queues it for every client. Clients
// whose queue is full are disconnected; a slow browser never stalls the
// panel.
func (l *Live) Publish(ctx context.Context, f Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	img := l.scale(f.Image)
	var buf bytes.Buffer
	if err := Encode(&buf, img, FormatPNG); err != nil {
		return errors.New("sink.Live.Publish", errors.KindSink, err)
	}
	data := buf.Bytes()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.latest = data
	l.seq = f.Seq
	for c := range l.clients {
		select {
		case c.send <- data:
		default:
			l.logger.Warn("dropping slow live client", slog.String("remote", c.conn.RemoteAddr().String()))
			delete(l.clients, c)
			c.close()
		}
	}
	return nil
}

// Close disconnects all clients and stops the HTTP server.
func (l *Live) Close() error {
	l.mu.Lock()
	l.closed = true
	srv := l.server
	for c := range l.clients {
		delete(l.clients, c)
		c.close()
	}
	l.mu.Unlock()

	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	return srv.Shutdown(ctx)
}

func (l *Live) scale(src image.Image) image.Image {
	b := src.Bounds()
	if l.opts.MaxWidth <= 0 || b.Dx() <= l.opts.MaxWidth {
		return src
	}
	h := max(1, b.Dy()*l.opts.MaxWidth/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, l.opts.MaxWidth, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func (l *Live) serveIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (l *Live) serveFrame(w http.ResponseWriter, _ *http.Request) {
	l.mu.Lock()
	data := l.latest
	l.mu.Unlock()
	if data == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", FormatPNG.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

func (l *Live) serveHealth(w http.ResponseWriter, _ *http.Request) {
	l.mu.Lock()
	resp := struct {
		Status  string `json:"status"`
		Clients int    `json:"clients"`
		Frame   uint64 `json:"frame"`
	}{"ok", len(l.clients), l.seq}
	l.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
	}
}

func (l *Live) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		l.logger.Debug("websocket upgrade failed", slog.Any("err", err))
		return
	}
	c := &liveClient{
		conn: conn,
		send: make(chan []byte, l.opts.ClientBuffer),
		done: make(chan struct{}),
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		c.hangUp()
		return
	}
	l.clients[c] = struct{}{}
	if l.latest != nil {
		c.send <- l.latest
	}
	l.mu.Unlock()
	l.logger.Info("live client connected", slog.String("remote", conn.RemoteAddr().String()))

	go l.writer(c)
	l.reader(c)
}

// reader discards client messages and unregisters the client when the
// connection ends.
func (l *Live) reader(c *liveClient) {
	defer errors.Recover("sink.Live.reader")
	defer func() {
		l.mu.Lock()
		delete(l.clients, c)
		l.mu.Unlock()
		c.close()
		l.logger.Info("live client disconnected", slog.String("remote", c.conn.RemoteAddr().String()))
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) &&
				!stderrors.Is(err, net.ErrClosed) {
				l.logger.Debug("live client read error", slog.Any("err", err))
			}
			return
		}
	}
}

func (l *Live) writer(c *liveClient) {
	defer errors.Recover("sink.Live.writer")
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-c.done:
			c.hangUp()
			return
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				_ = c.conn.Close()
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				_ = c.conn.Close()
				return
			}
		}
	}
}
