// Package reload keeps a route table in sync with its description
// document. A Watcher rebuilds the table when the document file changes
// and swaps the active reference atomically: requests that began matching
// against the old table finish with it, and the next request sees the new
// one. A table that fails to rebuild never enters service; the previous
// table stays active.
package reload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/specx2/openapi-router/core/parser"
	"github.com/specx2/openapi-router/core/router"
	"github.com/specx2/openapi-router/core/validator"
)

// Option configures table construction.
type Option func(*buildConfig)

type buildConfig struct {
	basePath    string
	hasBasePath bool
}

// WithBasePath replaces the description's own basePath before the table
// is compiled, so all templates match under the given prefix instead.
// An empty string strips the prefix entirely.
func WithBasePath(basePath string) Option {
	return func(cfg *buildConfig) {
		cfg.basePath = basePath
		cfg.hasBasePath = true
	}
}

// Watcher serves the current route table for one description file and
// rebuilds it on file changes.
type Watcher struct {
	path   string
	logger *zap.Logger
	opts   []Option
	table  atomic.Pointer[router.Table]
}

// NewWatcher loads, validates, and builds the table once from the given
// description file. The returned watcher is usable immediately; call Run
// to start following file changes. Options apply to every rebuild.
func NewWatcher(path string, logger *zap.Logger, opts ...Option) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Watcher{path: path, logger: logger, opts: opts}
	if err := w.rebuild(); err != nil {
		return nil, err
	}
	return w, nil
}

// Current returns the active table. Safe for concurrent use.
func (w *Watcher) Current() *router.Table {
	return w.table.Load()
}

// Run follows file changes until the context is canceled. Rebuild
// failures are logged and leave the previous table in service.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file: editors and atomic
	// writers replace the file, which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := w.rebuild(); err != nil {
				w.logger.Error("description reload failed, keeping previous table",
					zap.String("path", w.path),
					zap.Error(err))
				continue
			}
			w.logger.Info("description reloaded", zap.String("path", w.path))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("file watcher error", zap.Error(err))
		}
	}
}

// rebuild constructs a fresh table from the file and swaps it in only
// after it is fully built.
func (w *Watcher) rebuild() error {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return fmt.Errorf("failed to read description: %w", err)
	}
	table, err := BuildTable(data, w.path, w.opts...)
	if err != nil {
		return err
	}
	w.table.Store(table)
	return nil
}

// BuildTable validates, parses, and compiles one description document.
func BuildTable(data []byte, sourcePath string, opts ...Option) (*router.Table, error) {
	var cfg buildConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validator.Validate(data); err != nil {
		return nil, err
	}
	desc, err := parser.ParseFrom(data, sourcePath)
	if err != nil {
		return nil, err
	}
	if cfg.hasBasePath {
		desc.BasePath = cfg.basePath
	}
	return router.Build(desc)
}
