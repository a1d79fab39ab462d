package contract

import (
	"fmt"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/utils"
)

// Fixed replacement fees for paddleboard accessories, in cents.
var paddleboardAccessoryFees = []struct {
	Item  string
	Cents int64
}{
	{"Paddle", 7500},
	{"Leash", 2500},
	{"Fin", 3500},
	{"Pump", 4500},
}

var titles = map[domain.ContractType]string{
	domain.ContractBareboatCharter:      "Bareboat (Demise) Charter Agreement",
	domain.ContractPowersportsWaiver:    "Powersports Rental Agreement and Waiver",
	domain.ContractMotorVehicleBailment: "Motor Vehicle Bailment Agreement",
	domain.ContractEquipmentRental:      "Equipment Rental Agreement",
	domain.ContractBicycleRental:        "Bicycle Rental Agreement",
	domain.ContractSurfboardRental:      "Surfboard Rental Agreement",
	domain.ContractPaddleboardRental:    "Paddleboard Rental Agreement",
	domain.ContractAdventureWaiver:      "Adventure Activity Waiver",
}

type clauseFunc func(in RenderInput, item string) []domain.ContractSection

var riskClauses = map[domain.ContractType]clauseFunc{
	domain.ContractBareboatCharter: func(in RenderInput, item string) []domain.ContractSection {
		return []domain.ContractSection{
			{
				Heading: "Demise of Vessel",
				Body: fmt.Sprintf("Owner demises the vessel %s to Charterer without crew. For the whole charter period Charterer "+
					"has full possession, command and navigation of the vessel and is its operator for all legal purposes, "+
					"including navigation rules, registration duties and accident reporting. No master or crew is provided by Owner.", item),
			},
			{
				Heading: "Operator Qualification",
				Body:    "Charterer holds every boating licence or safety certificate required in the waters of use and will not permit any unqualified person to operate the vessel.",
			},
			{
				Heading: "Fuel, Equipment and Return",
				Body:    "The vessel is delivered with the fuel level recorded at handover and must be returned at the same level with all safety equipment aboard.",
			},
			deductibleClause(in),
		}
	},
	domain.ContractPowersportsWaiver: func(in RenderInput, item string) []domain.ContractSection {
		return []domain.ContractSection{
			{
				Heading: "Assumption of Risk",
				Body: fmt.Sprintf("Renter understands that operating %s involves speed, mechanical power and terrain or water hazards "+
					"that can cause serious injury or death, and voluntarily assumes those risks.", item),
			},
			{
				Heading: "License and Safety Equipment",
				Body:    "Only the Renter, holding a valid operator license on file, may operate the item. Helmets or personal flotation devices must be worn at all times.",
			},
			deductibleClause(in),
		}
	},
	domain.ContractMotorVehicleBailment: func(in RenderInput, item string) []domain.ContractSection {
		return []domain.ContractSection{
			{
				Heading: "Bailment",
				Body: fmt.Sprintf("Owner delivers %s to Renter as bailee for the rental period. Renter takes custody and control "+
					"and must return it in the condition documented at handover, ordinary wear excepted.", item),
			},
			{
				Heading: "Licensed Drivers Only",
				Body:    "The vehicle may be driven only by the Renter, who holds a valid driver license for its class.",
			},
			{
				Heading: "Tolls, Citations and Fuel",
				Body:    "Renter pays all tolls, parking and traffic citations incurred during the rental and returns the vehicle with the recorded fuel level.",
			},
			deductibleClause(in),
		}
	},
	domain.ContractEquipmentRental: func(in RenderInput, item string) []domain.ContractSection {
		return []domain.ContractSection{
			{
				Heading: "Condition and Use",
				Body:    fmt.Sprintf("Renter will use %s only for its intended purpose and return it clean and in the condition documented at handover.", item),
			},
			{
				Heading: "Loss or Damage",
				Body:    "Renter is responsible for loss of or damage to the item beyond ordinary wear, up to its replacement value.",
			},
		}
	},
	domain.ContractBicycleRental: func(in RenderInput, item string) []domain.ContractSection {
		return []domain.ContractSection{
			{
				Heading: "Theft and Replacement",
				Body: fmt.Sprintf("Renter must lock %s to a fixed object whenever it is unattended. If it is stolen while in Renter's "+
					"custody, Renter is liable for its full replacement value.", item),
			},
			{
				Heading: "Helmet",
				Body:    "A properly fitted helmet must be worn while riding.",
			},
		}
	},
	domain.ContractSurfboardRental: func(in RenderInput, item string) []domain.ContractSection {
		return []domain.ContractSection{
			{
				Heading: "Delamination and Structural Damage",
				Body: fmt.Sprintf("Renter is liable for delamination, pressure dents beyond normal wear, dings exposing the core, "+
					"and any crease, buckle or snap of %s.", item),
			},
			{
				Heading: "Storage",
				Body:    "The board must be kept out of direct sun and closed vehicles when not in the water.",
			},
		}
	},
	domain.ContractPaddleboardRental: func(in RenderInput, item string) []domain.ContractSection {
		fees := "Missing accessories are charged at fixed rates:"
		for _, f := range paddleboardAccessoryFees {
			fees += fmt.Sprintf(" %s %s;", f.Item, utils.FormatCents(f.Cents))
		}
		return []domain.ContractSection{
			{
				Heading: "Heat and Inflation",
				Body: fmt.Sprintf("Inflated boards expand in heat. Renter must not leave %s in direct sun or in a closed vehicle "+
					"while inflated, and must not exceed the pressure printed on the valve.", item),
			},
			{
				Heading: "Lost Accessories",
				Body:    fees[:len(fees)-1] + ".",
			},
		}
	},
	domain.ContractAdventureWaiver: func(in RenderInput, item string) []domain.ContractSection {
		return []domain.ContractSection{
			{
				Heading: "Inherent Risks",
				Body:    fmt.Sprintf("Outdoor use of %s carries inherent risks, including weather, terrain and equipment failure, which Renter accepts.", item),
			},
		}
	},
}

func deductibleClause(in RenderInput) domain.ContractSection {
	return domain.ContractSection{
		Heading: "Damage Deductible",
		Body:    fmt.Sprintf("Renter pays the first %s of any covered damage claim. The security deposit of %s may be applied to it.", utils.FormatCents(in.DeductibleCents), utils.FormatCents(in.Listing.SecurityDepositCents)),
	}
}

func liabilityRelease(item, owner string) domain.ContractSection {
	return domain.ContractSection{
		Heading: "Release of Liability",
		Body: fmt.Sprintf("To the fullest extent permitted by law, Renter releases %s and the platform from all claims for "+
			"injury, death or property damage arising from the use of %s during the rental period, except those caused by "+
			"gross negligence or wilful misconduct.", owner, item),
	}
}
