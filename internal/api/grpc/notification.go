package grpc

import (
	"context"

	"gearshare-backend/internal/service"

	"google.golang.org/protobuf/types/known/structpb"
)

type NotificationHandler struct {
	noteSvc service.NotificationService
}

func NewNotificationHandler(noteSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{noteSvc: noteSvc}
}

func (h *NotificationHandler) GetNotifications(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	r := fieldsOf(req)
	page, err := r.optionalInt32("page", 1)
	if err != nil {
		return nil, err
	}
	pageSize, err := r.optionalInt32("page_size", 0)
	if err != nil {
		return nil, err
	}

	notes, count, err := h.noteSvc.GetNotifications(ctx, userID, page, pageSize)
	if err != nil {
		return nil, toStatus(err)
	}
	items := make([]any, len(notes))
	for i := range notes {
		items[i] = MapDomainNotification(&notes[i])
	}
	return newStruct(map[string]any{
		"notifications": items,
		"total_count":   count,
	})
}

func (h *NotificationHandler) MarkNotificationRead(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	id, err := fieldsOf(req).int32("notification_id")
	if err != nil {
		return nil, err
	}
	if err := h.noteSvc.MarkAsRead(ctx, userID, id); err != nil {
		return nil, toStatus(err)
	}
	return newStruct(map[string]any{"success": true})
}
