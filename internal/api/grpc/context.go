package grpc

import (
	"context"
	"strconv"

	"gearshare-backend/internal/api/grpc/interceptor"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// GetUserIDFromContext returns the caller placed in metadata by the auth
// interceptor. Handlers behind a public method have no caller.
func GetUserIDFromContext(ctx context.Context) (int32, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	values := md.Get(interceptor.UserIDKey)
	if len(values) == 0 {
		return 0, status.Error(codes.Unauthenticated, "caller is not authenticated")
	}
	id, err := strconv.ParseInt(values[0], 10, 32)
	if err != nil || id <= 0 {
		return 0, status.Errorf(codes.Unauthenticated, "malformed caller id %q", values[0])
	}
	return int32(id), nil
}
