// Package server exposes a running game over HTTP and websockets so remote
// clients can watch and steer it.
package server

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"snake-arcade/game"
	"snake-arcade/game/manager"
)

// Game is the part of game.Game the server needs.
type Game interface {
	Snapshot() game.Snapshot
	Handle(cmd game.Command) bool
}

// Stats is optional; without it the high score is the current score.
type Stats interface {
	Summary() manager.Summary
	HighScore() int
}

type Server struct {
	game     Game
	stats    Stats
	interval time.Duration
	logger   *log.Logger
	upgrader websocket.Upgrader
	router   *gin.Engine
}

type Option func(*Server)

func WithStats(stats Stats) Option {
	return func(s *Server) { s.stats = stats }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithBroadcastInterval sets how often websocket clients are checked for a
// new tick.
func WithBroadcastInterval(d time.Duration) Option {
	return func(s *Server) { s.interval = d }
}

func New(g Game, opts ...Option) *Server {
	s := &Server{
		game:     g,
		interval: 35 * time.Millisecond,
		logger:   log.New(io.Discard, "", 0),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(gin.LoggerWithWriter(s.logger.Writer()), gin.Recovery())

	api := r.Group("/api")
	api.GET("/snapshot", s.handleSnapshot)
	api.GET("/stats", s.handleStats)
	api.POST("/turn", s.handleTurn)
	api.POST("/restart", s.handleCommand(game.Restart))
	api.POST("/quit", s.handleCommand(game.Quit))
	r.GET("/ws", s.handleWebsocket)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	errc := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

func (s *Server) highScore() int {
	if s.stats == nil {
		return 0
	}
	return s.stats.HighScore()
}

func (s *Server) frame() Frame {
	return NewFrame(s.game.Snapshot(), s.highScore())
}

func (s *Server) handleSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, s.frame())
}

func (s *Server) handleStats(c *gin.Context) {
	var summary manager.Summary
	if s.stats != nil {
		summary = s.stats.Summary()
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleTurn(c *gin.Context) {
	var msg Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg.Direction == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing direction"})
		return
	}
	cmd, err := msg.Command()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accepted": s.game.Handle(cmd)})
}

func (s *Server) handleCommand(cmd game.Command) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"accepted": s.game.Handle(cmd)})
	}
}

func (s *Server) handleWebsocket(c *gin.Context) {
	codec, err := ParseCodec(c.Query("codec"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Printf("upgrade: %v", err)
		return
	}
	defer conn.Close()
	s.logger.Printf("client %s connected (%s)", conn.RemoteAddr(), codec)

	done := make(chan struct{})
	go s.writeFrames(conn, codec, done)
	s.readMessages(conn)
	close(done)
	s.logger.Printf("client %s disconnected", conn.RemoteAddr())
}

// readMessages feeds client commands into the game until the connection
// fails. Malformed messages are logged and skipped.
func (s *Server) readMessages(conn *websocket.Conn) {
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := DecodeMessage(messageType, data)
		if err == nil {
			var cmd game.Command
			if cmd, err = msg.Command(); err == nil {
				s.game.Handle(cmd)
				continue
			}
		}
		s.logger.Printf("client %s: %v", conn.RemoteAddr(), err)
	}
}

// writeFrames sends a frame whenever the session, tick or state changed. It
// is the only writer on conn.
func (s *Server) writeFrames(conn *websocket.Conn, codec Codec, done <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var last Frame
	first := true
	for {
		f := s.frame()
		if first || f.SessionID != last.SessionID || f.Tick != last.Tick || f.State != last.State {
			messageType, data, err := codec.Encode(f)
			if err != nil {
				s.logger.Printf("encode: %v", err)
				return
			}
			conn.SetWriteDeadline(time.Now().Add(time.Second))
			if err := conn.WriteMessage(messageType, data); err != nil {
				conn.Close()
				return
			}
			last, first = f, false
		}

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}
