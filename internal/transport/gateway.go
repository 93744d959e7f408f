package transport

import (
	"fmt"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// HealthPath is served from the gRPC health service.
const HealthPath = "/health"

// NewGateway routes the chain API and the health endpoint on a grpc-gateway mux.
func NewGateway(handler *ChainHandler, health grpc_health_v1.HealthClient, logger *zap.Logger) (*runtime.ServeMux, error) {
	mux := runtime.NewServeMux(
		runtime.WithMiddlewares(accessLog(logger.Named("http"))),
		runtime.WithHealthEndpointAt(health, HealthPath),
	)

	routes := []struct {
		method  string
		pattern string
		handle  runtime.HandlerFunc
	}{
		{http.MethodGet, "/v1/chains/{public_key}/latest", handler.LatestBlock},
		{http.MethodGet, "/v1/chains/{public_key}/blocks", handler.Blocks},
		{http.MethodGet, "/v1/chains/{public_key}/blocks/{sequence_number}", handler.Block},
		{http.MethodHead, "/v1/chains/{public_key}/blocks/{sequence_number}", handler.HasBlock},
		{http.MethodGet, "/v1/chains/{public_key}/blocks/{sequence_number}/linked", handler.LinkedBlock},
		{http.MethodPost, "/v1/validate", handler.Validate},
	}
	for _, route := range routes {
		if err := mux.HandlePath(route.method, route.pattern, route.handle); err != nil {
			return nil, fmt.Errorf("register %s %s: %w", route.method, route.pattern, err)
		}
	}
	return mux, nil
}

func accessLog(logger *zap.Logger) runtime.Middleware {
	return func(next runtime.HandlerFunc) runtime.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next(rec, r, params)
			logger.Debug("request served",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(started)),
			)
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
