// Command openapi-router serves a metadata inspection endpoint for one
// Swagger 2.0 description: every request is matched and resolved against
// the description, and the resulting metadata record is echoed back as
// JSON. Useful for debugging a description's routing behavior before
// wiring the middleware into a real service.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/specx2/openapi-router/core/ir"
	"github.com/specx2/openapi-router/middleware"
	"github.com/specx2/openapi-router/reload"
)

func main() {
	specPath := flag.String("spec", "", "Path to a Swagger 2.0 description file (JSON or YAML)")
	addr := flag.String("addr", ":8080", "Listen address")
	basePath := flag.String("base-path", "", "Override the description's basePath (empty strips it; keeps the document's own value when unset)")
	watch := flag.Bool("watch", false, "Reload the description when the file changes")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "json", "Log format (json or console)")
	flag.Parse()

	logger, err := newLogger(*logLevel, *logFormat)
	if err != nil {
		os.Stderr.WriteString("failed to configure logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if *specPath == "" {
		logger.Fatal("no description provided, use -spec")
	}

	var opts []reload.Option
	if flagProvided("base-path") {
		opts = append(opts, reload.WithBasePath(*basePath))
	}

	watcher, err := reload.NewWatcher(*specPath, logger, opts...)
	if err != nil {
		logger.Fatal("failed to load description", zap.String("spec", *specPath), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *watch {
		go func() {
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("description watcher stopped", zap.Error(err))
			}
		}()
	}

	annotate := middleware.Metadata(watcher,
		middleware.WithLogger(logger),
		middleware.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"error": err.Error()})
		}),
	)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           annotate(http.HandlerFunc(inspect)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("inspection server ready",
		zap.String("addr", *addr),
		zap.String("spec", *specPath),
		zap.Bool("watch", *watch))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// flagProvided reports whether the named flag appeared on the command
// line, so an explicit -base-path="" can strip the basePath while an
// absent flag leaves the document's own value alone.
func flagProvided(name string) bool {
	var set bool
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// inspect echoes the resolved metadata for the request, or reports that
// the request matched nothing.
func inspect(w http.ResponseWriter, r *http.Request) {
	md := middleware.FromContext(r.Context())
	if md == nil {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"matched": false,
			"path":    r.URL.Path,
			"method":  r.Method,
		})
		return
	}

	params := make(map[string]interface{}, len(md.Params))
	for name, p := range md.Params {
		params[name] = map[string]interface{}{
			"in":    ir.NormalizeIn(p.Schema.In),
			"value": p.Value,
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"matched":     true,
		"operationId": md.Operation.OperationID,
		"params":      params,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newLogger(level, format string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	}
	parsed, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = parsed
	return cfg.Build()
}
