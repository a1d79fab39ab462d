package lifecycle

import (
	"context"

	"gearshare-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockIdentityVerifier
type MockIdentityVerifier struct {
	mock.Mock
}

func (m *MockIdentityVerifier) Analyze(ctx context.Context, documentURL, expectedName string) (*domain.IdentityAnalysisResult, error) {
	args := m.Called(ctx, documentURL, expectedName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IdentityAnalysisResult), args.Error(1)
}

// MockStatusStore
type MockStatusStore struct {
	mock.Mock
}

func (m *MockStatusStore) UpdateStatus(ctx context.Context, bookingID int32, from, to domain.BookingStatus, version int64) (int64, error) {
	args := m.Called(ctx, bookingID, from, to, version)
	return args.Get(0).(int64), args.Error(1)
}

// MockClaimFiler
type MockClaimFiler struct {
	mock.Mock
}

func (m *MockClaimFiler) CreateClaim(ctx context.Context, bookingID, reporterID int32, reason, description string) error {
	args := m.Called(ctx, bookingID, reporterID, reason, description)
	return args.Error(0)
}

// MockReviewSubmitter
type MockReviewSubmitter struct {
	mock.Mock
}

func (m *MockReviewSubmitter) CreateReview(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
