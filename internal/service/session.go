package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/events"
	"gearshare-backend/internal/lifecycle"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/repository"
	"gearshare-backend/internal/storage"
)

var allowedPhotoTypes = []string{"image/jpeg", "image/png", "image/heic"}

// SessionDeps groups what the session service reads and writes.
type SessionDeps struct {
	Sessions      repository.SessionRepository
	Bookings      repository.BookingRepository
	Listings      repository.ListingRepository
	Users         repository.UserRepository
	Claims        repository.ClaimRepository
	Reviews       repository.ReviewRepository
	Notifications repository.NotificationRepository
	Email         EmailService
	Events        EventPublisher
	Identity      lifecycle.IdentityVerifier
	Photos        storage.PhotoStorage
	UploadExpiry  time.Duration
}

type sessionService struct {
	SessionDeps
	now func() time.Time
}

func NewSessionService(deps SessionDeps) SessionService {
	if deps.UploadExpiry <= 0 {
		deps.UploadExpiry = 15 * time.Minute
	}
	return &sessionService{SessionDeps: deps, now: time.Now}
}

func (s *sessionService) GetSession(ctx context.Context, userID, bookingID int32) (*SessionView, error) {
	sess, _, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if userID != sess.HostID && userID != sess.RenterID {
		return nil, fmt.Errorf("%w: not a party to booking %d", domain.ErrUnauthorized, bookingID)
	}
	return s.view(s.controller(sess), nil), nil
}

func (s *sessionService) Advance(ctx context.Context, userID, bookingID int32, ev lifecycle.Event) (*SessionView, error) {
	logger.EnterMethod("sessionService.Advance", "userID", userID, "bookingID", bookingID)

	if ev != nil && ev.Kind() == lifecycle.EventOverrideIdentity {
		err := fmt.Errorf("%w: identity overrides are made by an admin", domain.ErrUnauthorized)
		logger.ExitMethodWithError("sessionService.Advance", err)
		return nil, err
	}

	sess, listing, err := s.load(ctx, bookingID)
	if err != nil {
		logger.ExitMethodWithError("sessionService.Advance", err)
		return nil, err
	}
	if userID != sess.HostID {
		err := fmt.Errorf("%w: only the host operates the rental session", domain.ErrUnauthorized)
		logger.ExitMethodWithError("sessionService.Advance", err)
		return nil, err
	}

	ev, err = s.complete(ctx, sess, userID, ev)
	if err != nil {
		logger.ExitMethodWithError("sessionService.Advance", err)
		return nil, err
	}

	v, err := s.apply(ctx, sess, listing, userID, ev)
	if err != nil {
		logger.ExitMethodWithError("sessionService.Advance", err)
		return nil, err
	}
	logger.ExitMethod("sessionService.Advance", "state", v.Session.State.String())
	return v, nil
}

func (s *sessionService) OverrideIdentity(ctx context.Context, adminID, bookingID int32) (*SessionView, error) {
	admin, err := s.Users.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if !admin.IsAdmin {
		return nil, fmt.Errorf("%w: admin role required", domain.ErrUnauthorized)
	}

	sess, listing, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	v, err := s.apply(ctx, sess, listing, adminID, lifecycle.OverrideIdentity{AdminID: adminID})
	if err != nil {
		return nil, err
	}
	notify(ctx, s.Notifications, sess.HostID, bookingID, domain.NotificationIdentityOverride,
		"Identity check cleared", "An admin reviewed the renter's identity document. You can continue the handover.")
	return v, nil
}

func (s *sessionService) RequestPhotoUpload(ctx context.Context, userID, bookingID int32, angleID, contentType string) (*PhotoUpload, error) {
	if !slices.Contains(allowedPhotoTypes, contentType) {
		return nil, fmt.Errorf("%w: unsupported photo type %q", domain.ErrValidation, contentType)
	}
	sess, _, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if userID != sess.HostID {
		return nil, fmt.Errorf("%w: only the host captures inspection photos", domain.ErrUnauthorized)
	}

	ctrl := s.controller(sess)
	angle, ok := ctrl.CurrentAngle()
	if !ok {
		return nil, fmt.Errorf("%w: no inspection is collecting photos in %s", domain.ErrInvalidTransition, ctrl.CurrentState())
	}
	if angle.ID != angleID {
		return nil, fmt.Errorf("%w: expected a photo of %s, not %s", domain.ErrValidation, angle.ID, angleID)
	}

	direction := "outbound"
	if sess.State.Phase == domain.PhaseReturn {
		direction = "inbound"
	}
	key := storage.PhotoKey(bookingID, direction, angleID, contentType)
	uploadURL, err := s.Photos.GeneratePresignedUploadURL(ctx, key, contentType, s.UploadExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload url: %w", err)
	}
	return &PhotoUpload{
		UploadURL:   uploadURL,
		DownloadURL: s.Photos.DownloadURL(key),
		Key:         key,
		ExpiresAt:   s.now().Add(s.UploadExpiry),
	}, nil
}

// load returns the persisted session, or derives one from the booking status.
// The booking is always re-read so the session carries its current version
// and the listing's current item class.
func (s *sessionService) load(ctx context.Context, bookingID int32) (*domain.RentalSession, *domain.Listing, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	listing, err := s.Listings.GetByID(ctx, booking.ListingID)
	if err != nil {
		return nil, nil, err
	}

	sess, err := s.Sessions.Get(ctx, bookingID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		sess, err = lifecycle.NewSession(booking, listing.Class())
		if err != nil {
			return nil, nil, err
		}
	case err != nil:
		return nil, nil, err
	default:
		sess.EndDate = booking.EndDate
		if !statusMatchesPhase(booking.Status, sess.State.Phase) {
			sess, err = s.resume(ctx, sess, booking, listing)
			if err != nil {
				return nil, nil, err
			}
		}
		sess.BookingVersion = booking.Version
	}
	sess.ItemClass = listing.Class()
	return sess, listing, nil
}

// resume repairs a snapshot whose save was lost after its step had already
// written the booking status. The follow-up of that step runs here since
// apply never got to it.
func (s *sessionService) resume(ctx context.Context, sess *domain.RentalSession, booking *domain.Booking, listing *domain.Listing) (*domain.RentalSession, error) {
	ctrl := s.controller(sess)
	t, ok := ctrl.Resume(booking.Status, booking.Version)
	if !ok {
		return nil, fmt.Errorf("%w: booking %d is %s but the rental session is in %s",
			domain.ErrConflict, booking.ID, booking.Status, sess.State)
	}

	next := ctrl.Session()
	if err := s.Sessions.Save(ctx, &next); err != nil {
		logger.Warn("Failed to save resumed rental session", "bookingID", next.BookingID, "state", next.State.String(), "error", err)
	}
	logger.Info("Rental session resumed from booking status", "bookingID", next.BookingID, "from", t.From.String(), "to", t.To.String())
	s.publish(ctx, events.KeySessionTransitioned, t)
	s.afterStatusChange(ctx, &next, listing, next.HostID, t)
	return &next, nil
}

func statusMatchesPhase(status domain.BookingStatus, phase domain.Phase) bool {
	switch phase {
	case domain.PhaseHandover:
		return status == domain.BookingStatusConfirmed
	case domain.PhaseActive, domain.PhaseReturn:
		return status == domain.BookingStatusActive
	case domain.PhaseCompleted:
		return status == domain.BookingStatusCompleted
	}
	return false
}

// complete fills event fields the server knows better than the client.
func (s *sessionService) complete(ctx context.Context, sess *domain.RentalSession, userID int32, ev lifecycle.Event) (lifecycle.Event, error) {
	switch e := ev.(type) {
	case lifecycle.CapturePhoto:
		e.CapturedBy = userID
		return e, nil
	case lifecycle.SubmitIdentity:
		if strings.TrimSpace(e.ExpectedName) == "" {
			renter, err := s.Users.GetByID(ctx, sess.RenterID)
			if err != nil {
				return nil, err
			}
			e.ExpectedName = renter.Name
		}
		return e, nil
	}
	return ev, nil
}

func (s *sessionService) controller(sess *domain.RentalSession) *lifecycle.Controller {
	return lifecycle.New(sess, lifecycle.Collaborators{
		Identity: s.Identity,
		Status:   s.Bookings,
		Claims:   claimFiler{s.Claims},
		Reviews:  reviewSubmitter{s.Reviews},
	}, lifecycle.WithClock(s.now))
}

// apply runs one event and persists the resulting snapshot.
func (s *sessionService) apply(ctx context.Context, sess *domain.RentalSession, listing *domain.Listing, actorID int32, ev lifecycle.Event) (*SessionView, error) {
	ctrl := s.controller(sess)
	t, err := ctrl.Advance(ctx, ev)
	if err != nil {
		return nil, err
	}

	next := ctrl.Session()
	if err := s.Sessions.Save(ctx, &next); err != nil {
		logger.Error("Failed to save rental session", "bookingID", next.BookingID, "state", next.State.String(), "error", err)
		return nil, fmt.Errorf("%w: could not save the rental session, try again: %w", domain.ErrCollaboratorFailure, err)
	}

	if t.Changed() {
		s.publish(ctx, events.KeySessionTransitioned, t)
	}
	if slices.Contains(t.Effects, lifecycle.EffectStatusPersisted) {
		s.afterStatusChange(ctx, &next, listing, actorID, t)
	}
	return s.view(ctrl, &t), nil
}

func (s *sessionService) afterStatusChange(ctx context.Context, sess *domain.RentalSession, listing *domain.Listing, actorID int32, t lifecycle.Transition) {
	from, to := domain.BookingStatusConfirmed, domain.BookingStatusActive
	if sess.State.Phase == domain.PhaseCompleted {
		from, to = domain.BookingStatusActive, domain.BookingStatusCompleted
	}
	s.publish(ctx, events.KeyBookingStatusChanged, events.BookingStatusChanged{
		BookingID: sess.BookingID,
		From:      string(from),
		To:        string(to),
		Version:   sess.BookingVersion,
		ActorID:   actorID,
		At:        t.At,
	})

	item := listing.Title
	switch to {
	case domain.BookingStatusActive:
		notify(ctx, s.Notifications, sess.RenterID, sess.BookingID, domain.NotificationRentalStarted,
			"Rental started", fmt.Sprintf("Your rental of %s has started. It is due back on %s.", item, sess.EndDate.Format("Jan 2, 2006")))
	case domain.BookingStatusCompleted:
		for _, uid := range []int32{sess.RenterID, sess.HostID} {
			notify(ctx, s.Notifications, uid, sess.BookingID, domain.NotificationRentalCompleted,
				"Rental completed", fmt.Sprintf("The rental of %s has been closed.", item))
		}
		if renter, err := s.Users.GetByID(ctx, sess.RenterID); err == nil {
			if err := s.Email.SendRentalCompletedNotification(ctx, renter.Email, renter.Name, item); err != nil {
				logger.Warn("Failed to send completion email", "bookingID", sess.BookingID, "error", err)
			}
		}
	}
}

// publish is best effort. The session is already committed.
func (s *sessionService) publish(ctx context.Context, key string, payload any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, key, payload); err != nil {
		logger.Warn("Failed to publish event", "key", key, "error", err)
	}
}

func (s *sessionService) view(ctrl *lifecycle.Controller, t *lifecycle.Transition) *SessionView {
	sess := ctrl.Session()
	v := &SessionView{
		Session:         &sess,
		RequiredAngles:  ctrl.RequiredAngles(),
		Allowed:         ctrl.Allowed(),
		Remaining:       ctrl.Remaining(),
		ComparisonPairs: ctrl.ComparisonPairs(),
		Transition:      t,
	}
	if a, ok := ctrl.CurrentAngle(); ok {
		v.CurrentAngle = &a
	}
	return v
}

// claimFiler adapts the claim store to the lifecycle's collaborator.
type claimFiler struct {
	repo repository.ClaimRepository
}

func (f claimFiler) CreateClaim(ctx context.Context, bookingID, reporterID int32, reason, description string) error {
	return f.repo.Create(ctx, &domain.Claim{
		BookingID:   bookingID,
		ReporterID:  reporterID,
		Reason:      reason,
		Description: description,
		Status:      domain.ClaimStatusOpen,
	})
}

type reviewSubmitter struct {
	repo repository.ReviewRepository
}

func (r reviewSubmitter) CreateReview(ctx context.Context, review *domain.Review) error {
	return r.repo.Create(ctx, review)
}
