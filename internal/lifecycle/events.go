package lifecycle

import "gearshare-backend/internal/domain"

type EventKind string

const (
	EventConfirmBalance   EventKind = "CONFIRM_BALANCE"
	EventProceed          EventKind = "PROCEED"
	EventSubmitIdentity   EventKind = "SUBMIT_IDENTITY"
	EventOverrideIdentity EventKind = "OVERRIDE_IDENTITY"
	EventCapturePhoto     EventKind = "CAPTURE_PHOTO"
	EventNextAngle        EventKind = "NEXT_ANGLE"
	EventSignWaiver       EventKind = "SIGN_WAIVER"
	EventBeginReturn      EventKind = "BEGIN_RETURN"
	EventDecideVerdict    EventKind = "DECIDE_VERDICT"
	EventFileClaim        EventKind = "FILE_CLAIM"
	EventSubmitReview     EventKind = "SUBMIT_REVIEW"
)

// Event is anything the host (or an admin) can ask the controller to do.
type Event interface {
	Kind() EventKind
}

// ConfirmBalance records that the renter's outstanding balance was settled.
type ConfirmBalance struct{}

// Proceed asks to leave the current step. Each step has its own guard.
type Proceed struct{}

// SubmitIdentity sends the renter's ID document to the verification service.
type SubmitIdentity struct {
	DocumentURL  string
	ExpectedName string
}

// OverrideIdentity lets an admin move a flagged result to manual_check.
type OverrideIdentity struct {
	AdminID int32
}

type CapturePhoto struct {
	AngleID    string
	ImageURL   string
	CapturedBy int32
	// Location is the device's fix, taken on the device before the image.
	// Nil when the device could not get one; the photo is kept without GPS.
	Location       *domain.GeoPoint
	DamageDetected bool
}

type NextAngle struct{}

type SignWaiver struct{}

type BeginReturn struct{}

type DecideVerdict struct {
	Verdict domain.DamageVerdict
}

type FileClaim struct {
	Notes string
}

type SubmitReview struct {
	Ratings     map[string]int32
	Comment     string
	PrivateNote string
}

func (ConfirmBalance) Kind() EventKind   { return EventConfirmBalance }
func (Proceed) Kind() EventKind          { return EventProceed }
func (SubmitIdentity) Kind() EventKind   { return EventSubmitIdentity }
func (OverrideIdentity) Kind() EventKind { return EventOverrideIdentity }
func (CapturePhoto) Kind() EventKind     { return EventCapturePhoto }
func (NextAngle) Kind() EventKind        { return EventNextAngle }
func (SignWaiver) Kind() EventKind       { return EventSignWaiver }
func (BeginReturn) Kind() EventKind      { return EventBeginReturn }
func (DecideVerdict) Kind() EventKind    { return EventDecideVerdict }
func (FileClaim) Kind() EventKind        { return EventFileClaim }
func (SubmitReview) Kind() EventKind     { return EventSubmitReview }

// Effect names a side effect a transition performed on a collaborator or on
// session data.
type Effect string

const (
	EffectBalanceConfirmed Effect = "balance_confirmed"
	EffectIdentityAnalyzed Effect = "identity_analyzed"
	EffectIdentityOverride Effect = "identity_overridden"
	EffectPhotoCaptured    Effect = "photo_captured"
	EffectCursorAdvanced   Effect = "cursor_advanced"
	EffectWaiverSigned     Effect = "waiver_signed"
	EffectStatusPersisted  Effect = "status_persisted"
	EffectVerdictSuggested Effect = "verdict_suggested"
	EffectVerdictDecided   Effect = "verdict_decided"
	EffectClaimFiled       Effect = "claim_filed"
	EffectReviewSubmitted  Effect = "review_submitted"
)
