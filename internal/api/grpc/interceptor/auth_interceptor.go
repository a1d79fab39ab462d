package interceptor

import (
	"context"
	"strconv"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"gearshare-backend/internal/config"
	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/security"
)

// Metadata keys the handlers read the caller from.
const (
	UserIDKey    = "user-id"
	UserRolesKey = "user-roles"
)

type AuthInterceptor struct {
	tokenManager security.TokenManager
}

func NewAuthInterceptor(tm security.TokenManager) *AuthInterceptor {
	return &AuthInterceptor{tokenManager: tm}
}

// Unary checks the bearer token against the method's security level and
// replaces the caller metadata with the token's claims.
func (i *AuthInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		level := config.GetSecurityLevel(info.FullMethod)
		if level == config.SecurityPublic {
			return handler(ctx, req)
		}

		md, _ := metadata.FromIncomingContext(ctx)
		token, ok := bearerToken(md)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "authorization token is not provided")
		}
		claims, err := i.tokenManager.ValidateToken(token)
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "invalid token: %v", err)
		}
		if err := authorize(level, claims); err != nil {
			return nil, err
		}

		// Set, not Append, so a client-sent user-id never survives.
		md = md.Copy()
		md.Set(UserIDKey, strconv.Itoa(int(claims.UserID)))
		md.Set(UserRolesKey, strings.Join(claims.Roles, ","))
		return handler(metadata.NewIncomingContext(ctx, md), req)
	}
}

// bearerToken reads the authorization header. The "Bearer " prefix is optional.
func bearerToken(md metadata.MD) (string, bool) {
	values := md.Get("authorization")
	if len(values) == 0 {
		return "", false
	}
	token := strings.TrimSpace(values[0])
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token, token != ""
}

func authorize(level config.SecurityLevel, claims *security.UserClaims) error {
	want := security.TokenTypeAccess
	if level == config.SecurityRefresh {
		want = security.TokenTypeRefresh
	}
	if claims.Type != want {
		return status.Errorf(codes.PermissionDenied, "%s token required", want)
	}
	if level == config.SecurityAdmin && !claims.HasRole(domain.RoleAdmin) {
		return status.Error(codes.PermissionDenied, "admin role required")
	}
	return nil
}
