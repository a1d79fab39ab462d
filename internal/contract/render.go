package contract

import (
	"fmt"
	"strings"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/utils"
)

// RenderInput carries everything an agreement is projected from.
type RenderInput struct {
	Listing         *domain.Listing
	Renter          *domain.User
	StartDate       time.Time
	EndDate         time.Time
	TotalPriceCents int64
	DeductibleCents int64
}

// Render builds the agreement selected for the listing. It has no side effects.
func Render(in RenderInput) domain.ContractDocument {
	return RenderAs(Select(in.Listing.Class()), in)
}

// RenderAs renders a specific agreement type, used when re-rendering the type
// fixed on a booking.
func RenderAs(ct domain.ContractType, in RenderInput) domain.ContractDocument {
	item := in.Listing.ItemName()
	build, ok := riskClauses[ct]
	if !ok {
		ct = domain.ContractEquipmentRental
		build = riskClauses[ct]
	}

	owner := in.Listing.OwnerName
	if owner == "" {
		owner = "Owner"
	}

	return domain.ContractDocument{
		Type:  ct,
		Title: titles[ct],
		Parties: []domain.Party{
			{Role: "Owner", ID: in.Listing.OwnerID, Name: owner, Email: in.Listing.OwnerEmail},
			{Role: "Renter", ID: in.Renter.ID, Name: in.Renter.Name, Email: in.Renter.Email},
		},
		ItemName:             item,
		ItemClass:            in.Listing.Class(),
		StartDate:            in.StartDate,
		EndDate:              in.EndDate,
		TotalPriceCents:      in.TotalPriceCents,
		SecurityDepositCents: in.Listing.SecurityDepositCents,
		DeductibleCents:      in.DeductibleCents,
		RiskClauses:          build(in, item),
		LiabilityRelease:     liabilityRelease(item, owner),
	}
}

// PlainText lays the document out for email and print.
func PlainText(doc domain.ContractDocument) string {
	const dateLayout = "January 2, 2006"
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", strings.ToUpper(doc.Title))
	for _, p := range doc.Parties {
		fmt.Fprintf(&b, "%s: %s", p.Role, p.Name)
		if p.Email != "" {
			fmt.Fprintf(&b, " <%s>", p.Email)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nItem: %s (%s", doc.ItemName, doc.ItemClass.Category)
	if doc.ItemClass.Subcategory != "" {
		fmt.Fprintf(&b, " / %s", doc.ItemClass.Subcategory)
	}
	b.WriteString(")\n")
	fmt.Fprintf(&b, "Rental period: %s to %s\n", doc.StartDate.Format(dateLayout), doc.EndDate.Format(dateLayout))
	fmt.Fprintf(&b, "Total price: %s\n", utils.FormatCents(doc.TotalPriceCents))
	fmt.Fprintf(&b, "Security deposit: %s\n", utils.FormatCents(doc.SecurityDepositCents))

	for i, s := range doc.RiskClauses {
		fmt.Fprintf(&b, "\n%d. %s\n%s\n", i+1, s.Heading, s.Body)
	}
	fmt.Fprintf(&b, "\n%d. %s\n%s\n", len(doc.RiskClauses)+1, doc.LiabilityRelease.Heading, doc.LiabilityRelease.Body)
	return b.String()
}
