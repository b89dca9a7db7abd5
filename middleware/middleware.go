// Package middleware integrates the routing core into a net/http handler
// chain. The Metadata middleware matches each request against the current
// route table, resolves the declared parameters, and attaches the
// resulting metadata record to the request context for downstream
// handlers. Requests that match no declared path or operation pass through
// unmodified.
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/specx2/openapi-router/core/ir"
	"github.com/specx2/openapi-router/core/router"
)

// maxFormMemory bounds in-memory multipart form parsing.
const maxFormMemory = 32 << 20

// TableSource supplies the route table to match against. A *router.Table
// is itself a static source; reload.Watcher provides a hot-reloading one.
type TableSource interface {
	Current() *router.Table
}

// Config configures the Metadata middleware.
type Config struct {
	// Logger records resolution failures. Defaults to zap.NewNop().
	Logger *zap.Logger

	// ErrorHandler responds when parameter resolution fails for a
	// matched request. Defaults to a plain 500.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// Option configures Config.
type Option func(*Config)

// WithLogger sets the logger used for resolution failures.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// WithErrorHandler sets the handler invoked when resolution fails.
func WithErrorHandler(h func(w http.ResponseWriter, r *http.Request, err error)) Option {
	return func(cfg *Config) {
		cfg.ErrorHandler = h
	}
}

// Metadata returns middleware that annotates matched requests with their
// resolved metadata. The request body is parsed only when a declaration in
// scope reads from it, and is restored afterwards so downstream handlers
// can read it again.
func Metadata(source TableSource, opts ...Option) func(http.Handler) http.Handler {
	cfg := Config{
		Logger: zap.NewNop(),
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			table := source.Current()
			m := table.Match(r.URL.Path, r.Method)
			if !m.Matched() || m.Operation == nil {
				// Path not declared, or method not declared for it:
				// no metadata is available, pass through.
				next.ServeHTTP(w, r)
				return
			}

			req := router.Request{
				Query:  r.URL.Query(),
				Header: r.Header,
			}
			if needsBody(m) {
				body, err := parseBody(r)
				if err != nil {
					cfg.Logger.Warn("failed to parse request body",
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
						zap.Error(err))
					cfg.ErrorHandler(w, r, err)
					return
				}
				req.Body = body
			}

			params, err := router.Resolve(m, req)
			if err != nil {
				cfg.Logger.Warn("parameter resolution failed",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
					zap.Error(err))
				cfg.ErrorHandler(w, r, err)
				return
			}

			md := &router.RequestMetadata{
				Path:        m.Entry.Item,
				Operation:   m.Operation,
				Params:      params,
				Description: table.Description(),
			}
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), md)))
		})
	}
}

// needsBody reports whether any declaration in scope reads from the
// request body.
func needsBody(m router.Match) bool {
	check := func(params []ir.ParameterInfo) bool {
		for _, p := range params {
			if p.In == ir.ParameterInBody || p.In == ir.ParameterInFormData {
				return true
			}
		}
		return false
	}
	if check(m.Entry.Parameters) {
		return true
	}
	return m.Operation != nil && check(m.Operation.Parameters)
}

// parseBody decodes the request body into a name-keyed map: JSON object
// fields for JSON bodies, form fields for urlencoded and multipart ones.
// JSON bodies are restored so downstream handlers can decode them again.
func parseBody(r *http.Request) (map[string]interface{}, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return formValues(r), nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, err
		}
		return formValues(r), nil

	default:
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		r.Body = io.NopCloser(bytes.NewReader(data))
		if len(data) == 0 {
			return map[string]interface{}{}, nil
		}
		var body map[string]interface{}
		if err := json.Unmarshal(data, &body); err != nil {
			return nil, err
		}
		return body, nil
	}
}

func formValues(r *http.Request) map[string]interface{} {
	body := make(map[string]interface{}, len(r.PostForm))
	for name, values := range r.PostForm {
		if len(values) > 0 {
			body[name] = values[0]
		}
	}
	return body
}
