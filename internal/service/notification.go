package service

import (
	"context"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/repository"
)

const maxPageSize = 100

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.noteRepo.List(ctx, userID, pageSize, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}

// notify writes an in-app notification. Delivery is best effort: a failure is
// logged and never fails the operation that triggered it.
func notify(ctx context.Context, repo repository.NotificationRepository, userID, bookingID int32, kind domain.NotificationKind, title, message string) {
	n := &domain.Notification{
		UserID:    userID,
		BookingID: bookingID,
		Kind:      kind,
		Title:     title,
		Message:   message,
	}
	if err := repo.Create(ctx, n); err != nil {
		logger.Warn("Failed to create notification", "userID", userID, "bookingID", bookingID, "kind", kind, "error", err)
	}
}
