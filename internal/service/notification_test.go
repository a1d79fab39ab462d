package service

import (
	"context"
	"testing"

	"gearshare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_GetNotifications(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name           string
		page, pageSize int32
		limit, offset  int32
	}{
		{"Defaults", 0, 0, 20, 0},
		{"Third page", 3, 10, 10, 20},
		{"Oversized page", 1, 500, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockNotificationRepo)
			repo.On("List", ctx, int32(20), tt.limit, tt.offset).
				Return([]domain.Notification{{ID: 1, UserID: 20}}, int32(1), nil)

			notes, total, err := NewNotificationService(repo).GetNotifications(ctx, 20, tt.page, tt.pageSize)
			require.NoError(t, err)
			assert.Len(t, notes, 1)
			assert.Equal(t, int32(1), total)
		})
	}
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepo)
	repo.On("MarkAsRead", ctx, int32(7), int32(20)).Return(domain.ErrNotFound)

	err := NewNotificationService(repo).MarkAsRead(ctx, 20, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
