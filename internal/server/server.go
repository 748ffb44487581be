// Package server exposes the tool plugins over HTTP for the host framework.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ocrandkong/ragflow/internal/tools"
	"github.com/ocrandkong/ragflow/pkg/logger"
)

// ToolInvoker runs a named tool and returns its JSON envelope. Satisfied by
// *tools.Executor; stubbed in tests.
type ToolInvoker interface {
	Execute(ctx context.Context, name string, args map[string]interface{}) string
}

// Server wires the tool executor into HTTP routes
type Server struct {
	invoker ToolInvoker
	logger  *zap.Logger
}

// New creates a Server around the given invoker
func New(invoker ToolInvoker) *Server {
	return &Server{
		invoker: invoker,
		logger:  logger.Get(),
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router(production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(s.requestLogger())
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		v1.GET("/tools", s.handleListTools)
		v1.POST("/tools/:name", s.handleInvokeTool)
	}

	return router
}

// handleListTools returns the metadata of every registered tool.
func (s *Server) handleListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": tools.GetAllTools()})
}

// handleInvokeTool runs one tool. The response is always the tool's own
// envelope with HTTP 200: success=false inside the envelope is the protocol,
// not an HTTP-level failure.
func (s *Server) handleInvokeTool(c *gin.Context) {
	name := c.Param("name")

	args := map[string]interface{}{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&args); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "invalid request body",
				"message": err.Error(),
			})
			return
		}
	}

	requestID := uuid.NewString()
	s.logger.Info("Tool invocation",
		zap.String("request_id", requestID),
		zap.String("tool", name),
	)

	envelope := s.invoker.Execute(c.Request.Context(), name, args)
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(envelope))
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
