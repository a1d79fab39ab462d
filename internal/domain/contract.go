package domain

import "time"

type ContractType string

const (
	ContractBareboatCharter      ContractType = "BAREBOAT_CHARTER"
	ContractPowersportsWaiver    ContractType = "POWERSPORTS_WAIVER"
	ContractMotorVehicleBailment ContractType = "MOTOR_VEHICLE_BAILMENT"
	ContractEquipmentRental      ContractType = "EQUIPMENT_RENTAL"
	ContractBicycleRental        ContractType = "BICYCLE_RENTAL"
	ContractSurfboardRental      ContractType = "SURFBOARD_RENTAL"
	ContractPaddleboardRental    ContractType = "PADDLEBOARD_RENTAL"
	ContractAdventureWaiver      ContractType = "ADVENTURE_WAIVER"
)

type Party struct {
	Role  string `json:"role"` // "Owner" or "Renter"
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type ContractSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// ContractDocument is a rendered agreement. It is recomputed on demand and
// never stored.
type ContractDocument struct {
	Type                 ContractType      `json:"type"`
	Title                string            `json:"title"`
	Parties              []Party           `json:"parties"`
	ItemName             string            `json:"item_name"`
	ItemClass            ItemClass         `json:"item_class"`
	StartDate            time.Time         `json:"start_date"`
	EndDate              time.Time         `json:"end_date"`
	TotalPriceCents      int64             `json:"total_price_cents"`
	SecurityDepositCents int64             `json:"security_deposit_cents"`
	DeductibleCents      int64             `json:"deductible_cents"`
	RiskClauses          []ContractSection `json:"risk_clauses"`
	LiabilityRelease     ContractSection   `json:"liability_release"`
}
