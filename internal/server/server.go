// Package server exposes the document engine over HTTP. The engine itself is
// pure and stateless; this layer implements the caller conventions: the
// pre-submission gate blocks generation on any Fail, and SAF-T parse errors
// map to 422 rather than a partial report.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/facturino/tax-engine/internal/einvoice"
	"github.com/facturino/tax-engine/internal/model"
	"github.com/facturino/tax-engine/internal/saft"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config *Config
	router *gin.Engine
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger())

	s := &Server{
		config: config,
		router: router,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/einvoice/generate", s.handleGenerate)
		v1.POST("/einvoice/check", s.handleCheck)
		v1.POST("/saft/validate", s.handleValidateSAFT)
		v1.GET("/rules", s.handleRules)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleCheck runs the pre-submission gate and returns the report.
func (s *Server) handleCheck(c *gin.Context) {
	var doc model.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid document payload", Details: err.Error()})
		return
	}
	doc.Normalize()

	rep := einvoice.CheckSubmissionReady(doc.Supplier, doc.Client, doc.Invoice, doc.Items)
	c.JSON(http.StatusOK, rep)
}

// handleGenerate gates the document and, when it is submission-ready,
// renders the UBL XML. Any gate Fail blocks generation.
func (s *Server) handleGenerate(c *gin.Context) {
	var doc model.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid document payload", Details: err.Error()})
		return
	}
	doc.Normalize()

	rep := einvoice.CheckSubmissionReady(doc.Supplier, doc.Client, doc.Invoice, doc.Items)
	if rep.HasFailures() {
		c.JSON(http.StatusUnprocessableEntity, GenerateBlockedResponse{
			Error:  "document is not submission-ready",
			Report: rep,
		})
		return
	}

	xmlBytes := einvoice.Generate(doc.Invoice, doc.Items, doc.Supplier, doc.Client)
	c.Data(http.StatusOK, "application/xml; charset=utf-8", xmlBytes)
}

// handleValidateSAFT parses a SAF-T export and runs the D406 battery.
func (s *Server) handleValidateSAFT(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return
	}

	rep, err := saft.ValidateBytes(body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "unreadable SAF-T document", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, rep)
}

// handleRules lists both rule batteries.
func (s *Server) handleRules(c *gin.Context) {
	c.JSON(http.StatusOK, RulesResponse{
		SAFT: saft.Rules(),
		Gate: einvoice.GateChecks(),
	})
}
