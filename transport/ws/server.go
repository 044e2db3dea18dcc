package ws

import (
	"chat-router/auth"
	"chat-router/domain"
	"chat-router/errors"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the three socket endpoints and a health probe.
type Server struct {
	log        *slog.Logger
	addr       string
	bufferSize int
	issuer     *auth.Issuer
	agentHash  string
	upgrader   websocket.Upgrader
	customers  *CustomerGateway
	operators  *OperatorGateway
	agents     *AgentGateway
}

func NewServer(
	log *slog.Logger,
	host string, port int,
	bufferSize int,
	issuer *auth.Issuer,
	agentHash string,
	customers *CustomerGateway,
	operators *OperatorGateway,
	agents *AgentGateway,
) *Server {
	return &Server{
		log:        log,
		addr:       fmt.Sprintf("%s:%d", host, port),
		bufferSize: bufferSize,
		issuer:     issuer,
		agentHash:  agentHash,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		customers: customers,
		operators: operators,
		agents:    agents,
	}
}

// Handler builds the gin engine; exposed so tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/customer", auth.Interceptor(s.issuer, auth.RoleCustomer, false), s.serveCustomer)
	r.GET("/operator", auth.Interceptor(s.issuer, auth.RoleOperator, true), s.serveOperator)
	r.GET("/agent", s.serveAgent)
	return r
}

func (s *Server) serveCustomer(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	identity := claims.Identity()
	desc := domain.ChatDescriptor{
		ID:       claims.SessionID,
		Customer: identity,
		Locale:   identity.Locale,
		Groups:   identity.Groups,
	}
	if err := auth.ValidateDescriptor(desc); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	conn, ok := s.upgrade(c)
	if !ok {
		return
	}
	s.customers.Serve(conn, desc)
}

func (s *Server) serveOperator(c *gin.Context) {
	var identity *domain.Identity
	if claims := auth.ClaimsFrom(c); claims != nil {
		id := claims.Identity()
		identity = &id
	}
	conn, ok := s.upgrade(c)
	if !ok {
		return
	}
	s.operators.Serve(conn, identity)
}

func (s *Server) serveAgent(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		key = c.GetHeader("X-Agent-Key")
	}
	ok, err := auth.CompareAgentKey(key, s.agentHash)
	if err != nil || !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrInvalidAgentKey.Error()})
		return
	}
	conn, upgraded := s.upgrade(c)
	if !upgraded {
		return
	}
	s.agents.Serve(conn)
}

func (s *Server) upgrade(c *gin.Context) (*Conn, bool) {
	ws, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Debug("Websocket upgrade failed", "path", c.FullPath(), "error", err)
		return nil, false
	}
	conn := NewConn(ws, s.bufferSize, s.log)
	conn.Start()
	return conn, true
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Socket server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("Socket server shutdown", "error", err)
		}
		return nil
	}
}
