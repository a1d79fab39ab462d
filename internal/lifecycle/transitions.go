package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
)

// handler applies one event to a working copy of the session and sets its
// next state. The controller discards the copy when an error is returned.
type handler func(c *Controller, ctx context.Context, s *domain.RentalSession, ev Event) ([]Effect, error)

type key struct {
	state domain.State
	kind  EventKind
}

var (
	paymentCheck   = domain.State{Phase: domain.PhaseHandover, Step: domain.StepPaymentCheck}
	identityCheck  = domain.State{Phase: domain.PhaseHandover, Step: domain.StepIdentityCheck}
	conditionDocs  = domain.State{Phase: domain.PhaseHandover, Step: domain.StepConditionDocumentation}
	active         = domain.State{Phase: domain.PhaseActive}
	inboundInspect = domain.State{Phase: domain.PhaseReturn, Step: domain.StepInboundInspection}
	damageAssess   = domain.State{Phase: domain.PhaseReturn, Step: domain.StepDamageAssessment}
	claimFiling    = domain.State{Phase: domain.PhaseReturn, Step: domain.StepClaimFiling}
	reviewClose    = domain.State{Phase: domain.PhaseReturn, Step: domain.StepReviewClose}
	completed      = domain.State{Phase: domain.PhaseCompleted}
)

const minOutboundPhotos = 2

// transitions is the whole state machine. Pairs missing from it are rejected
// with ErrInvalidTransition.
var transitions map[key]handler

func init() {
	transitions = map[key]handler{
		{paymentCheck, EventConfirmBalance}: (*Controller).confirmBalance,
		{paymentCheck, EventProceed}:        (*Controller).leavePaymentCheck,

		{identityCheck, EventSubmitIdentity}:   (*Controller).submitIdentity,
		{identityCheck, EventOverrideIdentity}: (*Controller).overrideIdentity,
		{identityCheck, EventProceed}:          (*Controller).leaveIdentityCheck,

		{conditionDocs, EventCapturePhoto}: (*Controller).capturePhoto,
		{conditionDocs, EventNextAngle}:    (*Controller).nextAngle,
		{conditionDocs, EventSignWaiver}:   (*Controller).signWaiver,
		{conditionDocs, EventProceed}:      (*Controller).startRental,

		{active, EventBeginReturn}: (*Controller).beginReturn,

		{inboundInspect, EventCapturePhoto}: (*Controller).capturePhoto,
		{inboundInspect, EventNextAngle}:    (*Controller).nextAngle,
		{inboundInspect, EventProceed}:      (*Controller).finishInspection,

		{damageAssess, EventDecideVerdict}: (*Controller).decideVerdict,
		{damageAssess, EventProceed}:       (*Controller).requireVerdict,

		{claimFiling, EventDecideVerdict}: (*Controller).decideVerdict,
		{claimFiling, EventFileClaim}:     (*Controller).fileClaim,
		{claimFiling, EventProceed}:       (*Controller).requireClaim,

		{reviewClose, EventSubmitReview}: (*Controller).submitReview,
		{reviewClose, EventProceed}:      (*Controller).closeRental,
	}
}

func (c *Controller) confirmBalance(_ context.Context, s *domain.RentalSession, _ Event) ([]Effect, error) {
	s.BalanceConfirmed = true
	return []Effect{EffectBalanceConfirmed}, nil
}

func (c *Controller) leavePaymentCheck(_ context.Context, s *domain.RentalSession, _ Event) ([]Effect, error) {
	if !s.BalanceConfirmed {
		return nil, fmt.Errorf("%w: balance not confirmed", domain.ErrValidation)
	}
	s.State = identityCheck
	return nil, nil
}

func (c *Controller) submitIdentity(ctx context.Context, s *domain.RentalSession, ev Event) ([]Effect, error) {
	e, ok := ev.(SubmitIdentity)
	if !ok {
		return nil, malformed(ev)
	}
	if strings.TrimSpace(e.DocumentURL) == "" {
		return nil, fmt.Errorf("%w: identity document image is required", domain.ErrValidation)
	}
	if c.collab.Identity == nil {
		return nil, fmt.Errorf("%w: no identity verifier configured", domain.ErrConfiguration)
	}

	result, err := c.collab.Identity.Analyze(ctx, e.DocumentURL, e.ExpectedName)
	if err != nil {
		return nil, fmt.Errorf("%w: could not reach verification service, try again: %w", domain.ErrCollaboratorFailure, err)
	}
	if result == nil {
		return nil, fmt.Errorf("%w: verification service returned no result, try again", domain.ErrCollaboratorFailure)
	}

	s.IdentityDocument = e.DocumentURL
	s.IdentityAnalysis = result
	s.IdentityOverride = nil
	return []Effect{EffectIdentityAnalyzed}, nil
}

func (c *Controller) overrideIdentity(_ context.Context, s *domain.RentalSession, ev Event) ([]Effect, error) {
	e, ok := ev.(OverrideIdentity)
	if !ok {
		return nil, malformed(ev)
	}
	if s.IdentityAnalysis == nil || s.IdentityAnalysis.VerificationStatus != domain.VerificationFlagged {
		return nil, fmt.Errorf("%w: only a flagged identity result can be overridden", domain.ErrValidation)
	}
	s.IdentityAnalysis.VerificationStatus = domain.VerificationManualCheck
	admin := e.AdminID
	s.IdentityOverride = &admin
	return []Effect{EffectIdentityOverride}, nil
}

func (c *Controller) leaveIdentityCheck(_ context.Context, s *domain.RentalSession, _ Event) ([]Effect, error) {
	if s.IdentityDocument == "" || s.IdentityAnalysis == nil {
		return nil, fmt.Errorf("%w: identity document not submitted", domain.ErrValidation)
	}
	if s.IdentityAnalysis.VerificationStatus == domain.VerificationFlagged {
		return nil, fmt.Errorf("%w: identity check flagged, manual review required", domain.ErrBusinessRejection)
	}
	s.State = conditionDocs
	return nil, nil
}

func (c *Controller) capturePhoto(ctx context.Context, s *domain.RentalSession, ev Event) ([]Effect, error) {
	e, ok := ev.(CapturePhoto)
	if !ok {
		return nil, malformed(ev)
	}
	set := evidenceFor(s)
	angles := c.RequiredAngles()
	angle, ok := currentAngle(*set, angles)
	if !ok {
		return nil, fmt.Errorf("%w: all angles have been captured", domain.ErrValidation)
	}
	if e.AngleID != "" && e.AngleID != angle.ID {
		return nil, fmt.Errorf("%w: photo is for %s but the current angle is %s", domain.ErrValidation, e.AngleID, angle.ID)
	}

	photo, err := c.capture.acquire(angle, e)
	if err != nil {
		return nil, err
	}
	*set = recordPhoto(*set, photo)
	return []Effect{EffectPhotoCaptured}, nil
}

func (c *Controller) nextAngle(_ context.Context, s *domain.RentalSession, _ Event) ([]Effect, error) {
	set := evidenceFor(s)
	next, err := advanceCursor(*set, c.RequiredAngles())
	if err != nil {
		return nil, err
	}
	*set = next
	return []Effect{EffectCursorAdvanced}, nil
}

func (c *Controller) signWaiver(_ context.Context, s *domain.RentalSession, _ Event) ([]Effect, error) {
	s.WaiverSigned = true
	return []Effect{EffectWaiverSigned}, nil
}

func (c *Controller) startRental(ctx context.Context, s *domain.RentalSession, _ Event) ([]Effect, error) {
	if n := len(s.Outbound.Photos); n < minOutboundPhotos {
		return nil, fmt.Errorf("%w: at least %d outbound photos are required, have %d", domain.ErrValidation, minOutboundPhotos, n)
	}
	if !s.WaiverSigned {
		return nil, fmt.Errorf("%w: waiver not signed", domain.ErrValidation)
	}
	if err := c.persistStatus(ctx, s, domain.BookingStatusConfirmed, domain.BookingStatusActive); err != nil {
		return nil, err
	}
	s.State = active
	return []Effect{EffectStatusPersisted}, nil
}

func (c *Controller) beginReturn(_ context.Context, s *domain.RentalSession, _ Event) ([]Effect, error) {
	s.State = inboundInspect
	s.Inbound = domain.EvidenceSet{}
	return nil, nil
}

func (c *Controller) finishInspection(_ context.Context, s *domain.RentalSession, _ Event) ([]Effect, error) {
	if missing := missingAngles(s.Inbound, c.RequiredAngles()); len(missing) > 0 {
		return nil, fmt.Errorf("%w: return photos missing for %s", domain.ErrValidation, strings.Join(missing, ", "))
	}

	suggested := domain.VerdictClean
	for _, p := range s.Inbound.Photos {
		if p.DamageDetected {
			suggested = domain.VerdictDamage
			break
		}
	}
	s.SuggestedVerdict = &suggested
	s.DamageVerdict = nil
	s.State = damageAssess
	return []Effect{EffectVerdictSuggested}, nil
}

func (c *Controller) decideVerdict(_ context.Context, s *domain.RentalSession, ev Event) ([]Effect, error) {
	e, ok := ev.(DecideVerdict)
	if !ok {
		return nil, malformed(ev)
	}
	verdict := e.Verdict
	switch verdict {
	case domain.VerdictClean:
		filed := false
		s.ClaimFiled = &filed
		s.DamageNotes = ""
		s.State = reviewClose
	case domain.VerdictDamage:
		s.State = claimFiling
	default:
		return nil, fmt.Errorf("%w: unknown damage verdict %q", domain.ErrValidation, e.Verdict)
	}
	s.DamageVerdict = &verdict
	return []Effect{EffectVerdictDecided}, nil
}

func (c *Controller) requireVerdict(context.Context, *domain.RentalSession, Event) ([]Effect, error) {
	return nil, fmt.Errorf("%w: damage verdict not decided", domain.ErrValidation)
}

func (c *Controller) fileClaim(ctx context.Context, s *domain.RentalSession, ev Event) ([]Effect, error) {
	e, ok := ev.(FileClaim)
	if !ok {
		return nil, malformed(ev)
	}
	notes := strings.TrimSpace(e.Notes)
	if notes == "" {
		return nil, fmt.Errorf("%w: damage notes are required", domain.ErrValidation)
	}
	if c.collab.Claims == nil {
		return nil, fmt.Errorf("%w: no claims service configured", domain.ErrConfiguration)
	}

	// A conflict means an earlier attempt was stored but its reply was lost.
	err := c.collab.Claims.CreateClaim(ctx, s.BookingID, s.HostID, domain.ClaimReasonReturnDamage, notes)
	switch {
	case errors.Is(err, domain.ErrConflict):
		logger.Info("Damage claim already filed", "bookingID", s.BookingID)
	case err != nil:
		return nil, fmt.Errorf("%w: could not file damage claim, try again: %w", domain.ErrCollaboratorFailure, err)
	}

	filed := true
	s.DamageNotes = notes
	s.ClaimFiled = &filed
	s.State = reviewClose
	return []Effect{EffectClaimFiled}, nil
}

func (c *Controller) requireClaim(context.Context, *domain.RentalSession, Event) ([]Effect, error) {
	return nil, fmt.Errorf("%w: damage notes must be filed before closing", domain.ErrValidation)
}

func (c *Controller) submitReview(ctx context.Context, s *domain.RentalSession, ev Event) ([]Effect, error) {
	e, ok := ev.(SubmitReview)
	if !ok {
		return nil, malformed(ev)
	}
	if s.ReviewSubmitted {
		return nil, fmt.Errorf("%w: review already submitted", domain.ErrValidation)
	}
	if len(e.Ratings) == 0 {
		return nil, fmt.Errorf("%w: at least one rating is required", domain.ErrValidation)
	}
	for name, score := range e.Ratings {
		if score < 1 || score > 5 {
			return nil, fmt.Errorf("%w: rating %s must be between 1 and 5", domain.ErrValidation, name)
		}
	}
	if c.collab.Reviews == nil {
		return nil, fmt.Errorf("%w: no review service configured", domain.ErrConfiguration)
	}

	review := &domain.Review{
		BookingID:   s.BookingID,
		AuthorID:    s.HostID,
		TargetID:    s.RenterID,
		Role:        domain.ReviewRoleHost,
		Ratings:     e.Ratings,
		Comment:     e.Comment,
		PrivateNote: e.PrivateNote,
	}
	err := c.collab.Reviews.CreateReview(ctx, review)
	switch {
	case errors.Is(err, domain.ErrConflict):
		logger.Info("Review already on file", "bookingID", s.BookingID, "authorID", s.HostID)
	case err != nil:
		return nil, fmt.Errorf("%w: could not submit review, try again: %w", domain.ErrCollaboratorFailure, err)
	}
	s.ReviewSubmitted = true
	return []Effect{EffectReviewSubmitted}, nil
}

func (c *Controller) closeRental(ctx context.Context, s *domain.RentalSession, _ Event) ([]Effect, error) {
	if !s.ReviewSubmitted {
		return nil, fmt.Errorf("%w: review not submitted", domain.ErrValidation)
	}
	if err := c.persistStatus(ctx, s, domain.BookingStatusActive, domain.BookingStatusCompleted); err != nil {
		return nil, err
	}
	s.State = completed
	return []Effect{EffectStatusPersisted}, nil
}

// persistStatus writes the booking status with the session's version token
// and records the new token on success.
func (c *Controller) persistStatus(ctx context.Context, s *domain.RentalSession, from, to domain.BookingStatus) error {
	if c.collab.Status == nil {
		return fmt.Errorf("%w: no status store configured", domain.ErrConfiguration)
	}
	version, err := c.collab.Status.UpdateStatus(ctx, s.BookingID, from, to, s.BookingVersion)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("booking %d was changed by someone else, reload and try again: %w", s.BookingID, err)
		}
		return fmt.Errorf("%w: could not update booking status, try again: %w", domain.ErrCollaboratorFailure, err)
	}
	s.BookingVersion = version
	return nil
}

func evidenceFor(s *domain.RentalSession) *domain.EvidenceSet {
	if s.State.Phase == domain.PhaseReturn {
		return &s.Inbound
	}
	return &s.Outbound
}

func malformed(ev Event) error {
	return fmt.Errorf("%w: malformed %s event %T", domain.ErrValidation, ev.Kind(), ev)
}
