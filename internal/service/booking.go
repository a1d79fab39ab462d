package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gearshare-backend/internal/classify"
	"gearshare-backend/internal/contract"
	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/events"
	"gearshare-backend/internal/lifecycle"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/pricing"
	"gearshare-backend/internal/repository"
	"gearshare-backend/internal/utils"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	feeRepo     repository.FeeConfigRepository
	fees        FeeConfigService
	emailSvc    EmailService
	noteRepo    repository.NotificationRepository
	publisher   EventPublisher
	now         func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	feeRepo repository.FeeConfigRepository,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
	publisher EventPublisher,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		feeRepo:     feeRepo,
		fees:        NewFeeConfigService(feeRepo),
		emailSvc:    emailSvc,
		noteRepo:    noteRepo,
		publisher:   publisher,
		now:         time.Now,
	}
}

func (s *bookingService) Quote(ctx context.Context, renterID, listingID int32, start, end time.Time) (*Quote, error) {
	listing, renter, price, err := s.price(ctx, renterID, listingID, start, end)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Listing:        listing,
		Price:          price,
		ContractType:   contract.Select(listing.Class()),
		RequiredAngles: classify.RequiredAngles(listing.Class()),
		Eligible:       pricing.CheckEligibility(listing, renter.HasLicense),
	}, nil
}

// price loads the listing and renter and computes the breakdown against the
// active fee configuration.
func (s *bookingService) price(ctx context.Context, renterID, listingID int32, start, end time.Time) (*domain.Listing, *domain.User, domain.PriceBreakdown, error) {
	days, err := utils.RentalDays(start, end)
	if err != nil {
		return nil, nil, domain.PriceBreakdown{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, nil, domain.PriceBreakdown{}, err
	}
	renter, err := s.userRepo.GetByID(ctx, renterID)
	if err != nil {
		return nil, nil, domain.PriceBreakdown{}, err
	}
	cfg, err := s.fees.Active(ctx)
	if err != nil {
		return nil, nil, domain.PriceBreakdown{}, err
	}
	return listing, renter, pricing.Compute(listing, days, *cfg), nil
}

func (s *bookingService) CreateBooking(ctx context.Context, renterID, listingID int32, start, end time.Time, protectionAcknowledged bool) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.CreateBooking", "renterID", renterID, "listingID", listingID)

	listing, renter, price, err := s.price(ctx, renterID, listingID, start, end)
	if err != nil {
		logger.ExitMethodWithError("bookingService.CreateBooking", err)
		return nil, err
	}
	if listing.OwnerID == renterID {
		err := fmt.Errorf("%w: you cannot book your own listing", domain.ErrValidation)
		logger.ExitMethodWithError("bookingService.CreateBooking", err)
		return nil, err
	}
	if !pricing.CheckEligibility(listing, renter.HasLicense) {
		err := fmt.Errorf("%w: an operator license is required to rent %s", domain.ErrIneligible, listing.Title)
		logger.ExitMethodWithError("bookingService.CreateBooking", err)
		return nil, err
	}
	if !protectionAcknowledged {
		err := fmt.Errorf("%w: %s terms must be acknowledged", domain.ErrValidation, price.ProtectionLabel)
		logger.ExitMethodWithError("bookingService.CreateBooking", err)
		return nil, err
	}

	booking := &domain.Booking{
		ListingID:              listing.ID,
		RenterID:               renterID,
		OwnerID:                listing.OwnerID,
		StartDate:              start,
		EndDate:                end,
		Price:                  price,
		ContractType:           contract.Select(listing.Class()),
		ProtectionAcknowledged: true,
		Status:                 domain.BookingStatusPending,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		logger.ExitMethodWithError("bookingService.CreateBooking", err)
		return nil, err
	}

	notify(ctx, s.noteRepo, listing.OwnerID, booking.ID, domain.NotificationBookingRequest,
		"New booking request", fmt.Sprintf("%s requested to rent %s for %d day(s)", renter.Name, listing.Title, price.Days))
	if listing.OwnerEmail != "" {
		if err := s.emailSvc.SendBookingRequestNotification(ctx, listing.OwnerEmail, renter.Name, listing.Title); err != nil {
			logger.Warn("Failed to send booking request email", "bookingID", booking.ID, "error", err)
		}
	}
	doc := s.render(ctx, booking, listing, renter, price.FeeConfigVersion)
	if err := s.emailSvc.SendRentalAgreement(ctx, renter.Email, renter.Name, doc); err != nil {
		logger.Warn("Failed to send rental agreement", "bookingID", booking.ID, "error", err)
	}
	s.publish(ctx, events.KeyBookingCreated, booking)

	logger.ExitMethod("bookingService.CreateBooking", "bookingID", booking.ID, "total", price.TotalCents)
	return booking, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: only the owner can confirm booking %d", domain.ErrUnauthorized, bookingID)
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, fmt.Errorf("%w: booking %d is %s", domain.ErrInvalidTransition, bookingID, booking.Status)
	}
	listing, err := s.listingRepo.GetByID(ctx, booking.ListingID)
	if err != nil {
		return nil, err
	}

	version, err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusPending, domain.BookingStatusConfirmed, booking.Version)
	if err != nil {
		return nil, err
	}
	booking.Status = domain.BookingStatusConfirmed
	booking.Version = version

	sess, err := lifecycle.NewSession(booking, listing.Class())
	if err != nil {
		return nil, err
	}
	sess.UpdatedOn = s.now()
	if err := s.sessionRepo.Save(ctx, sess); err != nil {
		// The session is derived again from the booking on first load.
		logger.Warn("Failed to create rental session", "bookingID", bookingID, "error", err)
	}

	notify(ctx, s.noteRepo, booking.RenterID, bookingID, domain.NotificationBookingConfirmed,
		"Booking confirmed", fmt.Sprintf("Your booking of %s was confirmed.", listing.Title))
	s.publish(ctx, events.KeyBookingStatusChanged, events.BookingStatusChanged{
		BookingID: bookingID, From: string(domain.BookingStatusPending), To: string(domain.BookingStatusConfirmed),
		Version: version, ActorID: ownerID, At: s.now(),
	})
	return booking, nil
}

// CancelBooking is the renter's way out before the rental starts. It races
// the host's handover: whichever status update lands first wins and the other
// side gets ErrConflict.
func (s *bookingService) CancelBooking(ctx context.Context, renterID, bookingID int32, reason string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != renterID {
		return nil, fmt.Errorf("%w: only the renter can cancel booking %d", domain.ErrUnauthorized, bookingID)
	}
	if booking.Status != domain.BookingStatusPending && booking.Status != domain.BookingStatusConfirmed {
		return nil, fmt.Errorf("%w: booking %d is %s and can no longer be cancelled", domain.ErrInvalidTransition, bookingID, booking.Status)
	}

	reason = strings.TrimSpace(reason)
	version, err := s.bookingRepo.Cancel(ctx, bookingID, reason, booking.Version)
	if err != nil {
		return nil, err
	}
	from := booking.Status
	booking.Status = domain.BookingStatusCancelled
	booking.CancelReason = reason
	booking.Version = version

	if from == domain.BookingStatusConfirmed {
		if err := s.sessionRepo.Delete(ctx, bookingID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Failed to discard rental session", "bookingID", bookingID, "error", err)
		}
	}

	listing, err := s.listingRepo.GetByID(ctx, booking.ListingID)
	if err == nil {
		notify(ctx, s.noteRepo, booking.OwnerID, bookingID, domain.NotificationBookingCancelled,
			"Booking cancelled", fmt.Sprintf("The booking of %s was cancelled.", listing.Title))
		if renter, err := s.userRepo.GetByID(ctx, renterID); err == nil && listing.OwnerEmail != "" {
			if err := s.emailSvc.SendBookingCancelledNotification(ctx, listing.OwnerEmail, renter.Name, listing.Title, reason); err != nil {
				logger.Warn("Failed to send cancellation email", "bookingID", bookingID, "error", err)
			}
		}
	}
	s.publish(ctx, events.KeyBookingStatusChanged, events.BookingStatusChanged{
		BookingID: bookingID, From: string(from), To: string(domain.BookingStatusCancelled),
		Version: version, ActorID: renterID, At: s.now(),
	})
	return booking, nil
}

// GetContract re-renders the agreement fixed on the booking. Nothing is stored.
func (s *bookingService) GetContract(ctx context.Context, userID, bookingID int32) (*domain.ContractDocument, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if userID != booking.RenterID && userID != booking.OwnerID {
		return nil, fmt.Errorf("%w: not a party to booking %d", domain.ErrUnauthorized, bookingID)
	}
	listing, err := s.listingRepo.GetByID(ctx, booking.ListingID)
	if err != nil {
		return nil, err
	}
	renter, err := s.userRepo.GetByID(ctx, booking.RenterID)
	if err != nil {
		return nil, err
	}
	doc := s.render(ctx, booking, listing, renter, booking.Price.FeeConfigVersion)
	return &doc, nil
}

func (s *bookingService) render(ctx context.Context, b *domain.Booking, l *domain.Listing, renter *domain.User, feeVersion int32) domain.ContractDocument {
	var deductible int64
	if cfg, err := s.feeRepo.GetByVersion(ctx, feeVersion); err == nil {
		deductible = cfg.DeductibleCents
	} else {
		logger.Warn("Fee configuration for contract not found", "version", feeVersion, "error", err)
	}
	return contract.RenderAs(b.ContractType, contract.RenderInput{
		Listing:         l,
		Renter:          renter,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		TotalPriceCents: b.Price.TotalCents,
		DeductibleCents: deductible,
	})
}

func (s *bookingService) publish(ctx context.Context, key string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		logger.Warn("Failed to publish event", "key", key, "error", err)
	}
}
