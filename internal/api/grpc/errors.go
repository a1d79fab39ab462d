package grpc

import (
	"errors"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/service"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus converts a service error into a gRPC status. Errors that already
// carry a status pass through unchanged.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codeFor(err), err.Error())
}

func codeFor(err error) codes.Code {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		return codes.Unauthenticated
	case errors.Is(err, domain.ErrUnauthorized):
		return codes.PermissionDenied
	case errors.Is(err, domain.ErrNotFound):
		return codes.NotFound
	case errors.Is(err, domain.ErrValidation):
		return codes.InvalidArgument
	case errors.Is(err, domain.ErrConflict):
		return codes.Aborted
	case errors.Is(err, domain.ErrBusinessRejection),
		errors.Is(err, domain.ErrIneligible),
		errors.Is(err, domain.ErrInvalidTransition):
		return codes.FailedPrecondition
	case errors.Is(err, domain.ErrCollaboratorFailure):
		return codes.Unavailable
	default:
		// ErrConfiguration and anything unclassified.
		return codes.Internal
	}
}
