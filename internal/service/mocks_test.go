package service

import (
	"context"
	"time"

	"gearshare-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockListingRepo
type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockListingRepo) GetByID(ctx context.Context, id int32) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingRepo) Update(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int32, from, to domain.BookingStatus, version int64) (int64, error) {
	args := m.Called(ctx, id, from, to, version)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBookingRepo) Cancel(ctx context.Context, id int32, reason string, version int64) (int64, error) {
	args := m.Called(ctx, id, reason, version)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBookingRepo) ListEndingBetween(ctx context.Context, statuses []domain.BookingStatus, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, statuses, from, to)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockSessionRepo
type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Get(ctx context.Context, bookingID int32) (*domain.RentalSession, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalSession), args.Error(1)
}
func (m *MockSessionRepo) Save(ctx context.Context, s *domain.RentalSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSessionRepo) Delete(ctx context.Context, bookingID int32) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}
func (m *MockSessionRepo) PurgeCompleted(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockFeeConfigRepo
type MockFeeConfigRepo struct {
	mock.Mock
}

func (m *MockFeeConfigRepo) Latest(ctx context.Context) (*domain.FeeConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeConfig), args.Error(1)
}
func (m *MockFeeConfigRepo) GetByVersion(ctx context.Context, version int32) (*domain.FeeConfig, error) {
	args := m.Called(ctx, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeConfig), args.Error(1)
}
func (m *MockFeeConfigRepo) Publish(ctx context.Context, cfg *domain.FeeConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

// MockClaimRepo
type MockClaimRepo struct {
	mock.Mock
}

func (m *MockClaimRepo) Create(ctx context.Context, c *domain.Claim) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockClaimRepo) ListByBooking(ctx context.Context, bookingID int32) ([]domain.Claim, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Claim), args.Error(1)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, r *domain.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReviewRepo) ListByBooking(ctx context.Context, bookingID int32) ([]domain.Review, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalAgreement(ctx context.Context, email, name string, doc domain.ContractDocument) error {
	args := m.Called(ctx, email, name, doc)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingRequestNotification(ctx context.Context, ownerEmail, renterName, itemName string) error {
	args := m.Called(ctx, ownerEmail, renterName, itemName)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCancelledNotification(ctx context.Context, ownerEmail, renterName, itemName, reason string) error {
	args := m.Called(ctx, ownerEmail, renterName, itemName, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReminder(ctx context.Context, email, name, itemName string, endDate time.Time) error {
	args := m.Called(ctx, email, name, itemName, endDate)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalCompletedNotification(ctx context.Context, email, name, itemName string) error {
	args := m.Called(ctx, email, name, itemName)
	return args.Error(0)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}
func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

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

// MockPhotoStorage
type MockPhotoStorage struct {
	mock.Mock
}

func (m *MockPhotoStorage) GeneratePresignedUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Error(1)
}
func (m *MockPhotoStorage) DownloadURL(key string) string {
	return m.Called(key).String(0)
}
func (m *MockPhotoStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}
func (m *MockPhotoStorage) DeleteFile(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
