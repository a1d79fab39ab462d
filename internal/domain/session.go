package domain

import "time"

type Phase string

const (
	PhaseHandover  Phase = "HANDOVER"
	PhaseActive    Phase = "ACTIVE"
	PhaseReturn    Phase = "RETURN"
	PhaseCompleted Phase = "COMPLETED"
)

type Step string

const (
	StepNone                   Step = ""
	StepPaymentCheck           Step = "PAYMENT_CHECK"
	StepIdentityCheck          Step = "IDENTITY_CHECK"
	StepConditionDocumentation Step = "CONDITION_DOCUMENTATION"
	StepInboundInspection      Step = "INBOUND_INSPECTION"
	StepDamageAssessment       Step = "DAMAGE_ASSESSMENT"
	StepClaimFiling            Step = "CLAIM_FILING"
	StepReviewClose            Step = "REVIEW_CLOSE"
)

type State struct {
	Phase Phase `json:"phase"`
	Step  Step  `json:"step"`
}

func (s State) String() string {
	if s.Step == StepNone {
		return string(s.Phase)
	}
	return string(s.Phase) + "/" + string(s.Step)
}

type DamageVerdict string

const (
	VerdictClean  DamageVerdict = "clean"
	VerdictDamage DamageVerdict = "damage"
)

// RentalSession is the lifecycle state bound 1:1 to a booking.
type RentalSession struct {
	BookingID      int32     `json:"booking_id"`
	BookingVersion int64     `json:"booking_version"`
	HostID         int32     `json:"host_id"`
	RenterID       int32     `json:"renter_id"`
	ItemClass      ItemClass `json:"item_class"`
	EndDate        time.Time `json:"end_date"`

	State            State                   `json:"state"`
	BalanceConfirmed bool                    `json:"balance_confirmed"`
	IdentityDocument string                  `json:"identity_document,omitempty"`
	IdentityAnalysis *IdentityAnalysisResult `json:"identity_analysis,omitempty"`
	IdentityOverride *int32                  `json:"identity_override,omitempty"` // Admin who cleared a flagged result
	WaiverSigned     bool                    `json:"waiver_signed"`
	Outbound         EvidenceSet             `json:"outbound"`
	Inbound          EvidenceSet             `json:"inbound"`
	SuggestedVerdict *DamageVerdict          `json:"suggested_verdict,omitempty"`
	DamageVerdict    *DamageVerdict          `json:"damage_verdict,omitempty"`
	DamageNotes      string                  `json:"damage_notes,omitempty"`
	ClaimFiled       *bool                   `json:"claim_filed,omitempty"`
	ReviewSubmitted  bool                    `json:"review_submitted"`
	UpdatedOn        time.Time               `json:"updated_on"`
}

// Remaining is the time left before the scheduled return. It is recomputed
// on every read.
func (s *RentalSession) Remaining(now time.Time) time.Duration {
	if s.State.Phase != PhaseActive {
		return 0
	}
	d := s.EndDate.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
