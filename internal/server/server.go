// Package server exposes the ingest and query use cases over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pdfqa/internal/domain"
	"pdfqa/internal/port"
	"pdfqa/internal/usecase"
)

const (
	msgNoFile      = "No file uploaded"
	msgNotFound    = "Chunks file not found."
	msgMalformed   = "Error parsing JSON file."
	msgBadRequest  = "Invalid request body"
	msgUploadLimit = "Uploaded file is too large"
)

// Server handles the HTTP API.
type Server struct {
	ingest    *usecase.IngestUseCase
	query     *usecase.QueryUseCase
	store     port.CorpusStore
	maxUpload int64
	logger    *slog.Logger
}

// NewServer creates a server. maxUploadBytes bounds the size of an
// uploaded document; zero or less means 32 MiB.
func NewServer(
	ingest *usecase.IngestUseCase,
	query *usecase.QueryUseCase,
	store port.CorpusStore,
	maxUploadBytes int64,
	logger *slog.Logger,
) *Server {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 32 << 20
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		ingest:    ingest,
		query:     query,
		store:     store,
		maxUpload: maxUploadBytes,
		logger:    logger,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/process-pdf", s.processPDF)
	api.POST("/search", s.search)
	api.POST("/chat", s.chat)
	api.GET("/corpora", s.corpora)
	api.DELETE("/corpora/:id", s.deleteCorpus)

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) processPDF(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload+1<<20)

	fh, err := c.FormFile("pdf")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": msgUploadLimit})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoFile})
		return
	}
	if fh.Size > s.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": msgUploadLimit})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	res, err := s.ingest.Ingest(fh.Filename, data)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Chunks saved to " + res.CorpusID,
		"corpus":  res.CorpusID,
		"chunks":  res.Chunks,
	})
}

func (s *Server) search(c *gin.Context) {
	var req domain.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgBadRequest})
		return
	}

	resp, err := s.query.Query(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type chatRequest struct {
	Filename string        `json:"filename"`
	Prompt   string        `json:"prompt"`
	History  []domain.Turn `json:"history"`
}

type chatResponse struct {
	Response string        `json:"response"`
	History  []domain.Turn `json:"history"`
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgBadRequest})
		return
	}

	session := domain.Session{CorpusID: req.Filename, History: req.History}
	next, resp, err := s.query.Ask(c.Request.Context(), session, req.Prompt)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chatResponse{Response: resp.GeminiResponse, History: next.History})
}

func (s *Server) corpora(c *gin.Context) {
	infos, err := s.store.List()
	if err != nil {
		s.fail(c, err)
		return
	}
	if infos == nil {
		infos = []domain.CorpusInfo{}
	}
	c.JSON(http.StatusOK, gin.H{"corpora": infos})
}

func (s *Server) deleteCorpus(c *gin.Context) {
	id := c.Param("id")
	if err := domain.ValidateID(id); err != nil {
		s.fail(c, err)
		return
	}
	if err := s.store.Delete(id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// fail maps domain errors onto status codes and the fixed client messages.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCorpusNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	case errors.Is(err, domain.ErrMalformedCorpus):
		s.logger.Error("malformed corpus", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgMalformed})
	default:
		s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
