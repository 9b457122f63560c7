package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"pdfqa/internal/adapter/cache"
	"pdfqa/internal/port"
	"pdfqa/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve the upload, search and chat endpoints over HTTP.

Routes:
  POST   /api/process-pdf   multipart field "pdf"
  POST   /api/search        {"prompt": ..., "filename": ...}
  POST   /api/chat          {"filename": ..., "prompt": ..., "history": [...]}
  GET    /api/corpora
  DELETE /api/corpora/:id
  GET    /healthz`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	backing, err := openStore()
	if err != nil {
		return err
	}
	defer backing.Close()

	var st port.CorpusStore = backing
	if cfg.Server.CacheSize > 0 {
		ttl := time.Duration(cfg.Server.CacheTTLSecs) * time.Second
		st = cache.NewCachedStore(backing, cache.NewCorpusCache(cfg.Server.CacheSize, ttl))
	}

	queryUC, err := newQueryUseCase(st, true)
	if err != nil {
		return err
	}

	srv := server.NewServer(
		newIngestUseCase(st),
		queryUC,
		st,
		int64(cfg.Server.MaxUploadMB)<<20,
		logger,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, addr)
}
