package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"gearshare-backend/internal/contract"
	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sendgrid/rest"
)

// mailSender is the slice of the SendGrid client the email service calls.
type mailSender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// sendFunc delivers one rendered message.
type sendFunc func(ctx context.Context, to, subject, plain string) error

type emailService struct {
	send sendFunc
}

// NewSendGridEmailService delivers mail through SendGrid.
func NewSendGridEmailService(apiKey, from, fromName string) EmailService {
	return newSendGridEmailService(sendgrid.NewSendClient(apiKey), from, fromName)
}

func newSendGridEmailService(client mailSender, from, fromName string) *emailService {
	sender := mail.NewEmail(fromName, from)
	return &emailService{
		send: func(ctx context.Context, to, subject, plain string) error {
			logger.ExternalServiceCall("sendgrid", "Send", "to", to, "subject", subject)
			htmlBody := "<pre>" + html.EscapeString(plain) + "</pre>"
			message := mail.NewSingleEmail(sender, subject, mail.NewEmail("", to), plain, htmlBody)

			resp, err := client.Send(message)
			if err == nil && resp.StatusCode >= 400 {
				err = fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
			}
			logger.ExternalServiceResult("sendgrid", "Send", err)
			if err != nil {
				return fmt.Errorf("failed to send email: %w", err)
			}
			return nil
		},
	}
}

// NewLogEmailService writes messages to the log instead of sending them.
func NewLogEmailService() EmailService {
	return &emailService{
		send: func(ctx context.Context, to, subject, plain string) error {
			logger.InfoContext(ctx, "Email (log provider)", "to", to, "subject", subject, "body", plain)
			return nil
		},
	}
}

func (s *emailService) SendRentalAgreement(ctx context.Context, email, name string, doc domain.ContractDocument) error {
	subject := fmt.Sprintf("Your %s for %s", doc.Title, doc.ItemName)
	body := fmt.Sprintf("Hello %s,\n\nPlease keep this agreement for your records.\n\n%s\n\nBest regards,\nThe GearShare Team",
		name, contract.PlainText(doc))
	return s.send(ctx, email, subject, body)
}

func (s *emailService) SendBookingRequestNotification(ctx context.Context, ownerEmail, renterName, itemName string) error {
	subject := fmt.Sprintf("New booking request for %s", itemName)
	body := fmt.Sprintf("Hello,\n\n%s would like to rent your %s. Open GearShare to confirm the booking.\n\nBest regards,\nThe GearShare Team",
		renterName, itemName)
	return s.send(ctx, ownerEmail, subject, body)
}

func (s *emailService) SendBookingCancelledNotification(ctx context.Context, ownerEmail, renterName, itemName, reason string) error {
	subject := fmt.Sprintf("Booking for %s cancelled", itemName)
	var b strings.Builder
	fmt.Fprintf(&b, "Hello,\n\n%s cancelled the booking for your %s.", renterName, itemName)
	if reason != "" {
		fmt.Fprintf(&b, "\n\nReason: %s", reason)
	}
	b.WriteString("\n\nBest regards,\nThe GearShare Team")
	return s.send(ctx, ownerEmail, subject, b.String())
}

func (s *emailService) SendReturnReminder(ctx context.Context, email, name, itemName string, endDate time.Time) error {
	subject := fmt.Sprintf("Reminder: %s is due back today", itemName)
	body := fmt.Sprintf("Hello %s,\n\nYour rental of %s ends on %s. Please arrange the return with the owner so the return inspection can be completed.\n\nBest regards,\nThe GearShare Team",
		name, itemName, endDate.Format("Monday, January 2, 2006"))
	return s.send(ctx, email, subject, body)
}

func (s *emailService) SendRentalCompletedNotification(ctx context.Context, email, name, itemName string) error {
	subject := fmt.Sprintf("Rental of %s completed", itemName)
	body := fmt.Sprintf("Hello %s,\n\nThe rental of %s has been closed. Thank you for using GearShare.\n\nBest regards,\nThe GearShare Team",
		name, itemName)
	return s.send(ctx, email, subject, body)
}
