// Package service implements the proxy layer between the HTTP surface and
// the third-party upstreams: cache-aside lookups, response normalization and
// per-endpoint fallback policy.
package service

import (
	"context"

	"go.uber.org/zap"
)

// loggerFromContext extracts a zap.Logger from request context if present.
// Returns nil if logger is not found or context is invalid.
func loggerFromContext(ctx context.Context) *zap.Logger {
	if v := ctx.Value("logger"); v != nil {
		if l, ok := v.(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return nil
}
