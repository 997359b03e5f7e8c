package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skonate/griot/internal/api"
	"github.com/skonate/griot/internal/pipeline"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the question-answering API over HTTP",
	Long: `Serve starts the HTTP API on top of the indexed corpus:

  POST /ask       answer a question with sources
  POST /retrieve  return the closest documents without generation
  GET  /health    index status (503 until a corpus is indexed)
  GET  /stats     index size, dimension, and models

Example:
  griot serve
  griot serve --addr :8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8000", "listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}
	if err := p.AttachLLM(); err != nil {
		return err
	}

	handlers := api.NewHandlers(p, p.Store(), cfg.Embedding.Model, cfg.LLM.Model)
	server := api.New(serveAddr, handlers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "Listening on %s (%d chunks indexed)\n", serveAddr, p.Store().Count())
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
