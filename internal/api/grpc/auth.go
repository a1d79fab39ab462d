package grpc

import (
	"context"

	"gearshare-backend/internal/service"

	"google.golang.org/protobuf/types/known/structpb"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func (h *AuthHandler) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := fieldsOf(req)
	email, err := r.requiredString("email")
	if err != nil {
		return nil, err
	}
	password := r.fields["password"].GetStringValue()

	access, refresh, user, err := h.authSvc.Login(ctx, email, password)
	if err != nil {
		return nil, toStatus(err)
	}
	return newStruct(map[string]any{
		"access_token":  access,
		"refresh_token": refresh,
		"user":          MapDomainUser(user),
	})
}

// RefreshToken rotates both tokens. The interceptor has already checked that
// the bearer token is a refresh token.
func (h *AuthHandler) RefreshToken(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	refresh, err := fieldsOf(req).requiredString("refresh_token")
	if err != nil {
		return nil, err
	}
	access, next, err := h.authSvc.RefreshToken(ctx, refresh)
	if err != nil {
		return nil, toStatus(err)
	}
	return newStruct(map[string]any{
		"access_token":  access,
		"refresh_token": next,
	})
}
