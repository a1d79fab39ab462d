package jobs

import (
	"context"
	"fmt"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
)

// SendReturnReminders reminds renters whose active rental ends today
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func(ctx context.Context) error {
		count, err := jr.sendReturnReminders(ctx)
		if err != nil {
			return err
		}
		logger.Info("Return reminders sent", "count", count)
		return nil
	})
}

func (jr *JobRunner) sendReturnReminders(ctx context.Context) (int, error) {
	today := jr.now().UTC().Truncate(24 * time.Hour)
	bookings, err := jr.repos.Bookings.ListEndingBetween(ctx,
		[]domain.BookingStatus{domain.BookingStatusActive}, today, today.AddDate(0, 0, 1))
	if err != nil {
		return 0, fmt.Errorf("list bookings ending today: %w", err)
	}

	count := 0
	for _, b := range bookings {
		renter, err := jr.repos.Users.GetByID(ctx, b.RenterID)
		if err != nil {
			logger.Error("Failed to load renter for reminder", "booking_id", b.ID, "renter_id", b.RenterID, "error", err)
			continue
		}
		listing, err := jr.repos.Listings.GetByID(ctx, b.ListingID)
		if err != nil {
			logger.Error("Failed to load listing for reminder", "booking_id", b.ID, "listing_id", b.ListingID, "error", err)
			continue
		}

		note := &domain.Notification{
			UserID:     b.RenterID,
			BookingID:  b.ID,
			Kind:       domain.NotificationReturnReminder,
			Title:      "Return due today",
			Message:    fmt.Sprintf("Your rental of %s is due back today. Meet the owner for the return inspection.", listing.Title),
			Attributes: map[string]string{"due_date": b.EndDate.Format("2006-01-02")},
		}
		if err := jr.repos.Notifications.Create(ctx, note); err != nil {
			logger.Warn("Failed to create reminder notification", "booking_id", b.ID, "error", err)
		}

		if err := jr.email.SendReturnReminder(ctx, renter.Email, renter.Name, listing.Title, b.EndDate); err != nil {
			logger.Error("Failed to send return reminder email",
				"booking_id", b.ID,
				"renter_id", b.RenterID,
				"email", renter.Email,
				"error", err)
			continue
		}

		count++
		logger.Debug("Sent return reminder", "booking_id", b.ID, "renter_id", b.RenterID)
	}
	return count, nil
}
