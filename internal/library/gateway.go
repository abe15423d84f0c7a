package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Transport performs a single JSON-RPC call against the library service
type Transport interface {
	Call(ctx context.Context, method string, params interface{}, result interface{}) error
}

// RemoteError is an error reported by the library service itself
// rather than by the transport
type RemoteError interface {
	error
	RemoteCode() int
}

// Gateway issues library queries and caches read-only results
type Gateway struct {
	transport Transport
	cache     *Cache
	flights   singleflight.Group
	metrics   *metrics.Metrics
	logger    *logrus.Logger
}

// NewGateway creates a new library gateway
func NewGateway(transport Transport, cache *Cache, m *metrics.Metrics, logger *logrus.Logger) *Gateway {
	return &Gateway{
		transport: transport,
		cache:     cache,
		metrics:   m,
		logger:    logger,
	}
}

// IsCacheable reports whether results of method may be cached.
// Only read-only library getters qualify.
func IsCacheable(method string) bool {
	return strings.HasPrefix(method, "VideoLibrary.Get")
}

// Query returns the raw result of method, or nil when the call failed,
// the service answered with an error, or the result was empty.
func (g *Gateway) Query(ctx context.Context, method string, params interface{}) json.RawMessage {
	if !IsCacheable(method) {
		return g.call(ctx, method, params)
	}

	key, err := CacheKey(method, params)
	if err != nil {
		g.logger.WithError(err).WithField("method", method).Warn("Library query not cacheable")
		return g.call(ctx, method, params)
	}

	payload, result := g.cache.Get(key)
	g.metrics.CacheLookup(result)
	if result == LookupHit {
		g.logger.WithField("method", method).Debug("Library cache hit")
		return payload
	}

	// Identical concurrent misses share one remote call.
	v, _, _ := g.flights.Do(key, func() (interface{}, error) {
		if cached, result := g.cache.Get(key); result == LookupHit {
			return cached, nil
		}
		fresh := g.call(ctx, method, params)
		if !isEmpty(fresh) {
			g.cache.Set(key, fresh)
		}
		return fresh, nil
	})

	payload, _ = v.(json.RawMessage)
	return payload
}

// QueryInto runs Query and decodes the result into out. It reports false
// when there was no result or it could not be decoded.
func (g *Gateway) QueryInto(ctx context.Context, method string, params interface{}, out interface{}) bool {
	payload := g.Query(ctx, method, params)
	if isEmpty(payload) {
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		g.logger.WithError(err).WithField("method", method).Warn("Failed to decode library result")
		return false
	}
	return true
}

// CacheSize returns the number of cached entries
func (g *Gateway) CacheSize() int {
	return g.cache.Len()
}

func (g *Gateway) call(ctx context.Context, method string, params interface{}) json.RawMessage {
	var result json.RawMessage
	err := g.transport.Call(ctx, method, params, &result)
	if err != nil {
		outcome := "transport_error"
		var remote RemoteError
		if errors.As(err, &remote) {
			outcome = "rpc_error"
		}
		g.metrics.LibraryCall(method, outcome)
		g.logger.WithError(err).WithField("method", method).Warn("Library call failed")
		return nil
	}

	g.metrics.LibraryCall(method, "ok")
	return result
}

func isEmpty(payload json.RawMessage) bool {
	trimmed := bytes.TrimSpace(payload)
	switch string(trimmed) {
	case "", "null", "{}", "[]", `""`:
		return true
	}
	return false
}
