package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gearshare-backend/internal/domain"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*mail.SGMailV3
	resp *rest.Response
	err  error
}

func (f *fakeSender) Send(m *mail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, m)
	return f.resp, f.err
}

func TestSendGridEmailService(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends rental agreement", func(t *testing.T) {
		sender := &fakeSender{resp: &rest.Response{StatusCode: 202}}
		svc := newSendGridEmailService(sender, "noreply@gearshare.test", "GearShare")

		doc := domain.ContractDocument{Title: "Bareboat Charter Agreement", ItemName: "Sea Ray 240"}
		require.NoError(t, svc.SendRentalAgreement(ctx, "rita@test.com", "Rita", doc))

		require.Len(t, sender.sent, 1)
		m := sender.sent[0]
		assert.Equal(t, "Your Bareboat Charter Agreement for Sea Ray 240", m.Subject)
		assert.Equal(t, "noreply@gearshare.test", m.From.Address)
		require.Len(t, m.Personalizations, 1)
		assert.Equal(t, "rita@test.com", m.Personalizations[0].To[0].Address)
	})

	t.Run("Error status is a failure", func(t *testing.T) {
		sender := &fakeSender{resp: &rest.Response{StatusCode: 401, Body: "unauthorized"}}
		svc := newSendGridEmailService(sender, "noreply@gearshare.test", "GearShare")

		err := svc.SendReturnReminder(ctx, "rita@test.com", "Rita", "Kayak", time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
	})

	t.Run("Transport error", func(t *testing.T) {
		sender := &fakeSender{err: errors.New("dial tcp: timeout")}
		svc := newSendGridEmailService(sender, "noreply@gearshare.test", "GearShare")

		err := svc.SendBookingCancelledNotification(ctx, "olive@test.com", "Rita", "Kayak", "weather")
		assert.ErrorContains(t, err, "failed to send email")
	})
}

func TestLogEmailService(t *testing.T) {
	svc := NewLogEmailService()
	assert.NoError(t, svc.SendRentalCompletedNotification(context.Background(), "a@test.com", "A", "Kayak"))
}
