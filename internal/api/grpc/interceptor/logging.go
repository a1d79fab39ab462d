package interceptor

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gearshare-backend/internal/logger"
)

// Logging records method, latency and status code for every unary call.
// Server-side failures log at error level, client mistakes at debug.
func Logging() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
		switch code {
		case codes.Internal, codes.Unavailable, codes.Unknown:
			logger.Error("RPC failed", append(args, "error", err)...)
		default:
			logger.Debug("RPC completed", args...)
		}
		return resp, err
	}
}
