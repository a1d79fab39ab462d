package lifecycle

import (
	"context"

	"gearshare-backend/internal/domain"
)

// IdentityVerifier analyzes an ID document. A network error and a flagged
// result are different outcomes: only the former is returned as an error.
type IdentityVerifier interface {
	Analyze(ctx context.Context, documentURL, expectedName string) (*domain.IdentityAnalysisResult, error)
}

// StatusStore persists booking status changes. The update only applies when
// the stored status and version still match, and returns the new version.
type StatusStore interface {
	UpdateStatus(ctx context.Context, bookingID int32, from, to domain.BookingStatus, version int64) (int64, error)
}

type ClaimFiler interface {
	CreateClaim(ctx context.Context, bookingID, reporterID int32, reason, description string) error
}

type ReviewSubmitter interface {
	CreateReview(ctx context.Context, review *domain.Review) error
}

type Collaborators struct {
	Identity IdentityVerifier
	Status   StatusStore
	Claims   ClaimFiler
	Reviews  ReviewSubmitter
}
