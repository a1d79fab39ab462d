package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"gearshare-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewReviewRepository(db)
	ctx := context.Background()
	review := &domain.Review{BookingID: 11, AuthorID: 4, TargetID: 3, Role: domain.ReviewRoleHost, Ratings: map[string]int32{"care": 5}, Comment: "Spotless"}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO reviews").
			WithArgs(int32(11), int32(4), int32(3), domain.ReviewRoleHost, []byte(`{"care":5}`), "Spotless", "", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		require.NoError(t, repo.Create(ctx, review))
		assert.Equal(t, int32(1), review.ID)
	})

	t.Run("Duplicate review", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO reviews").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, review)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestClaimRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	claim := &domain.Claim{BookingID: 11, ReporterID: 4, Reason: domain.ClaimReasonReturnDamage, Description: "Cracked fin"}
	mock.ExpectQuery("INSERT INTO claims").
		WithArgs(int32(11), int32(4), domain.ClaimReasonReturnDamage, "Cracked fin", domain.ClaimStatusOpen, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))

	require.NoError(t, NewClaimRepository(db).Create(context.Background(), claim))
	assert.Equal(t, int32(8), claim.ID)
	assert.Equal(t, domain.ClaimStatusOpen, claim.Status)

	mock.ExpectQuery("INSERT INTO claims").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
	err = NewClaimRepository(db).Create(context.Background(), &domain.Claim{BookingID: 11, ReporterID: 4, Reason: domain.ClaimReasonReturnDamage, Description: "Cracked fin"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewListingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "email", "title", "legal_item_name", "description", "category", "subcategory",
			"pricing_mode", "rate_cents", "security_deposit_cents", "created_on", "updated_on"}).
			AddRow(2, 4, "Olive Owner", "olive@test.com", "Sea Ray 240", "", "Day boat", "BOATS", "Yacht", "daily", 250000, 100000, time.Now(), time.Now())
		mock.ExpectQuery("SELECT (.+) FROM listings l JOIN users u ON u.id = l.owner_id").
			WithArgs(int32(2)).
			WillReturnRows(rows)

		l, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Olive Owner", l.OwnerName)
		assert.Equal(t, domain.CategoryBoats, l.Category)
		assert.Equal(t, domain.PricingModeDaily, l.PricingMode)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM listings").WithArgs(int32(3)).WillReturnError(sql.ErrNoRows)
		_, err := repo.GetByID(ctx, 3)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Update missing row", func(t *testing.T) {
		mock.ExpectExec("UPDATE listings SET").WillReturnResult(sqlmock.NewResult(0, 0))
		err := repo.Update(ctx, &domain.Listing{ID: 3, Title: "Gone"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestNotificationRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewNotificationRepository(db)
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		created := time.Date(2026, 7, 4, 9, 0, 0, 0, time.UTC)
		n := &domain.Notification{
			UserID:     3,
			BookingID:  11,
			Kind:       domain.NotificationRentalStarted,
			Title:      "Rental started",
			Message:    "Enjoy",
			Attributes: map[string]string{"item": "Kayak"},
		}
		mock.ExpectQuery("INSERT INTO notifications").
			WithArgs(int32(3), int32(11), "RENTAL_STARTED", "Rental started", "Enjoy", false, []byte(`{"item":"Kayak"}`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(7, created))

		require.NoError(t, repo.Create(ctx, n))
		assert.Equal(t, int32(7), n.ID)
		assert.Equal(t, created, n.CreatedOn)
	})

	t.Run("List", func(t *testing.T) {
		created := time.Date(2026, 7, 4, 9, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT count\(\*\) FROM notifications`).
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT id, user_id, booking_id, kind").
			WithArgs(int32(3), int32(20), int32(0)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "booking_id", "kind", "title", "message", "is_read", "attributes", "created_on"}).
				AddRow(7, 3, 11, "RETURN_REMINDER", "Return due today", "Bring it back", false, []byte(`{"due_date":"2026-07-04"}`), created))

		notes, total, err := repo.List(ctx, 3, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, int32(1), total)
		require.Len(t, notes, 1)
		assert.Equal(t, domain.NotificationReturnReminder, notes[0].Kind)
		assert.Equal(t, "2026-07-04", notes[0].Attributes["due_date"])
	})

	t.Run("List empty skips the page query", func(t *testing.T) {
		mock.ExpectQuery(`SELECT count\(\*\) FROM notifications`).
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		notes, total, err := repo.List(ctx, 5, 20, 0)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, notes)
	})

	t.Run("MarkAsRead not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET is_read = TRUE").
			WithArgs(int32(7), int32(4)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkAsRead(ctx, 7, 4)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
