package middleware

import (
	"context"

	"github.com/specx2/openapi-router/core/router"
)

type contextKey string

const metadataKey contextKey = "request_metadata"

// NewContext returns a context carrying the request's resolved metadata.
func NewContext(ctx context.Context, md *router.RequestMetadata) context.Context {
	return context.WithValue(ctx, metadataKey, md)
}

// FromContext returns the metadata attached by the Metadata middleware, or
// nil when the request did not match a declared path and operation.
func FromContext(ctx context.Context) *router.RequestMetadata {
	md, _ := ctx.Value(metadataKey).(*router.RequestMetadata)
	return md
}
