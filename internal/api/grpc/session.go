package grpc

import (
	"context"

	"gearshare-backend/internal/service"

	"google.golang.org/protobuf/types/known/structpb"
)

type SessionHandler struct {
	sessionSvc service.SessionService
}

func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

func (h *SessionHandler) GetSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	bookingID, err := fieldsOf(req).int32("booking_id")
	if err != nil {
		return nil, err
	}

	v, err := h.sessionSvc.GetSession(ctx, userID, bookingID)
	if err != nil {
		return nil, toStatus(err)
	}
	return sessionResponse(v)
}

func (h *SessionHandler) Advance(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	r := fieldsOf(req)
	bookingID, err := r.int32("booking_id")
	if err != nil {
		return nil, err
	}
	ev, err := parseEvent(r)
	if err != nil {
		return nil, err
	}

	v, err := h.sessionSvc.Advance(ctx, userID, bookingID, ev)
	if err != nil {
		return nil, toStatus(err)
	}
	return sessionResponse(v)
}

func (h *SessionHandler) RequestPhotoUpload(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	r := fieldsOf(req)
	bookingID, err := r.int32("booking_id")
	if err != nil {
		return nil, err
	}
	angleID, err := r.requiredString("angle_id")
	if err != nil {
		return nil, err
	}
	contentType, err := r.requiredString("content_type")
	if err != nil {
		return nil, err
	}

	up, err := h.sessionSvc.RequestPhotoUpload(ctx, userID, bookingID, angleID, contentType)
	if err != nil {
		return nil, toStatus(err)
	}
	return newStruct(MapPhotoUpload(up))
}

func (h *SessionHandler) OverrideIdentity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	adminID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	bookingID, err := fieldsOf(req).int32("booking_id")
	if err != nil {
		return nil, err
	}

	v, err := h.sessionSvc.OverrideIdentity(ctx, adminID, bookingID)
	if err != nil {
		return nil, toStatus(err)
	}
	return sessionResponse(v)
}

func sessionResponse(v *service.SessionView) (*structpb.Struct, error) {
	m, err := MapSessionView(v)
	if err != nil {
		return nil, toStatus(err)
	}
	return newStruct(m)
}
