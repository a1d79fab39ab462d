// Package lifecycle drives a rental from handover to completion. Every step is
// an entry in an explicit (state, event) table; anything else is rejected.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gearshare-backend/internal/classify"
	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
)

// Transition describes a committed step.
type Transition struct {
	BookingID int32        `json:"booking_id"`
	From      domain.State `json:"from"`
	To        domain.State `json:"to"`
	Event     EventKind    `json:"event"`
	Effects   []Effect     `json:"effects,omitempty"`
	At        time.Time    `json:"at"`
}

// Changed reports whether the phase or step moved.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Controller owns one rental session. It is not safe for concurrent use; a
// session is operated by a single host at a time.
type Controller struct {
	session domain.RentalSession
	collab  Collaborators
	capture *capturer
	now     func() time.Time
}

type Option func(*Controller)

// WithClock replaces time.Now for photo timestamps and UpdatedOn.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
		c.capture.now = now
	}
}

func New(session *domain.RentalSession, collab Collaborators, opts ...Option) *Controller {
	c := &Controller{
		session: cloneSession(*session),
		collab:  collab,
		now:     time.Now,
	}
	c.capture = &capturer{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewSession starts a session for a booking, picking the initial state from
// the booking's persisted status.
func NewSession(b *domain.Booking, item domain.ItemClass) (*domain.RentalSession, error) {
	var state domain.State
	switch b.Status {
	case domain.BookingStatusConfirmed:
		state = paymentCheck
	case domain.BookingStatusActive:
		state = inboundInspect
	case domain.BookingStatusCompleted:
		state = completed
	default:
		return nil, fmt.Errorf("%w: booking %d is %s and has no rental session", domain.ErrInvalidTransition, b.ID, b.Status)
	}
	return &domain.RentalSession{
		BookingID:      b.ID,
		BookingVersion: b.Version,
		HostID:         b.OwnerID,
		RenterID:       b.RenterID,
		ItemClass:      item,
		EndDate:        b.EndDate,
		State:          state,
	}, nil
}

func (c *Controller) CurrentState() domain.State {
	return c.session.State
}

// Session returns a copy of the session data.
func (c *Controller) Session() domain.RentalSession {
	return cloneSession(c.session)
}

// RequiredAngles is recomputed from the item class on every call so a listing
// edit between handover and return cannot leave a stale list behind.
func (c *Controller) RequiredAngles() []domain.EvidenceAngle {
	return classify.RequiredAngles(c.session.ItemClass)
}

// CurrentAngle is the angle the capture cursor points at in the current
// inspection, if one is running.
func (c *Controller) CurrentAngle() (domain.EvidenceAngle, bool) {
	switch c.session.State {
	case conditionDocs:
		return currentAngle(c.session.Outbound, c.RequiredAngles())
	case inboundInspect:
		return currentAngle(c.session.Inbound, c.RequiredAngles())
	}
	return domain.EvidenceAngle{}, false
}

func (c *Controller) ComparisonPairs() []domain.PhotoPair {
	return comparisonPairs(c.session.Outbound, c.session.Inbound, c.RequiredAngles())
}

// Allowed lists the events defined for the current state, sorted by name.
func (c *Controller) Allowed() []EventKind {
	var kinds []EventKind
	for k := range transitions {
		if k.state == c.session.State {
			kinds = append(kinds, k.kind)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (c *Controller) Remaining() time.Duration {
	return c.session.Remaining(c.now())
}

// Advance applies ev. On error the session is left exactly as it was.
func (c *Controller) Advance(ctx context.Context, ev Event) (Transition, error) {
	from := c.session.State
	if ev == nil {
		return Transition{}, fmt.Errorf("%w: no event", domain.ErrValidation)
	}

	h, ok := transitions[key{state: from, kind: ev.Kind()}]
	if !ok {
		err := fmt.Errorf("%w: %s is not allowed in %s", domain.ErrInvalidTransition, ev.Kind(), from)
		logger.Rejected(c.session.BookingID, from.String(), string(ev.Kind()), err, false)
		return Transition{}, err
	}

	work := cloneSession(c.session)
	effects, err := h(c, ctx, &work, ev)
	if err != nil {
		logger.Rejected(c.session.BookingID, from.String(), string(ev.Kind()), err, errors.Is(err, domain.ErrCollaboratorFailure))
		return Transition{}, err
	}

	at := c.now()
	work.UpdatedOn = at
	c.session = work

	t := Transition{
		BookingID: work.BookingID,
		From:      from,
		To:        work.State,
		Event:     ev.Kind(),
		Effects:   effects,
		At:        at,
	}
	logger.Transition(t.BookingID, t.From.String(), t.To.String(), string(t.Event), "effects", effects)
	return t, nil
}

// Resume catches the session up with a booking status that a step already
// persisted when the snapshot written after it was lost. Only the single step
// whose status write can precede the snapshot is replayed, and only if its
// guards still hold on the session. Anything else is left for the caller to
// report as a conflict.
func (c *Controller) Resume(status domain.BookingStatus, version int64) (Transition, bool) {
	from := c.session.State
	work := cloneSession(c.session)
	switch {
	case from == conditionDocs && status == domain.BookingStatusActive:
		if len(work.Outbound.Photos) < minOutboundPhotos || !work.WaiverSigned {
			return Transition{}, false
		}
		work.State = active
	case from == reviewClose && status == domain.BookingStatusCompleted:
		if !work.ReviewSubmitted {
			return Transition{}, false
		}
		work.State = completed
	default:
		return Transition{}, false
	}

	at := c.now()
	work.BookingVersion = version
	work.UpdatedOn = at
	c.session = work

	t := Transition{
		BookingID: work.BookingID,
		From:      from,
		To:        work.State,
		Event:     EventProceed,
		Effects:   []Effect{EffectStatusPersisted},
		At:        at,
	}
	logger.Transition(t.BookingID, t.From.String(), t.To.String(), "resume", "version", version)
	return t, true
}

// cloneSession copies everything a handler may modify so a failed handler
// cannot leak partial changes.
func cloneSession(s domain.RentalSession) domain.RentalSession {
	out := s
	out.Outbound.Photos = append([]domain.InspectionPhoto(nil), s.Outbound.Photos...)
	out.Inbound.Photos = append([]domain.InspectionPhoto(nil), s.Inbound.Photos...)
	if s.IdentityAnalysis != nil {
		a := *s.IdentityAnalysis
		out.IdentityAnalysis = &a
	}
	return out
}
