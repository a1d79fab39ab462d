package domain

type VerificationStatus string

const (
	VerificationVerified    VerificationStatus = "verified"
	VerificationFlagged     VerificationStatus = "flagged"
	VerificationManualCheck VerificationStatus = "manual_check"
)

type IdentityAnalysisResult struct {
	ExtractedName      string             `json:"extracted_name"`
	DOB                string             `json:"dob"`
	ExpiryDate         string             `json:"expiry_date"`
	DocNumber          string             `json:"doc_number"`
	IsExpired          bool               `json:"is_expired"`
	NameMatchScore     float64            `json:"name_match_score"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	Summary            string             `json:"summary"`
}
