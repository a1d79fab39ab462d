package grpc

import (
	"testing"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/lifecycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func TestParseEvent(t *testing.T) {
	t.Run("Capture with device location", func(t *testing.T) {
		ev, err := parseEvent(fieldsOf(mustStruct(t, map[string]any{
			"event":     "capture_photo",
			"angle_id":  "bow",
			"image_url": "http://localhost:8080/api/v1/images/inspections/11/outbound/bow-1.jpg",
			"location":  map[string]any{"latitude": 47.6, "longitude": -122.3},
		})))
		require.NoError(t, err)
		capture, ok := ev.(lifecycle.CapturePhoto)
		require.True(t, ok)
		assert.Equal(t, "bow", capture.AngleID)
		require.NotNil(t, capture.Location)
		assert.Equal(t, 47.6, capture.Location.Latitude)
	})

	t.Run("Verdict is case-insensitive", func(t *testing.T) {
		ev, err := parseEvent(fieldsOf(mustStruct(t, map[string]any{"event": "DECIDE_VERDICT", "verdict": "Damage"})))
		require.NoError(t, err)
		assert.Equal(t, lifecycle.DecideVerdict{Verdict: domain.VerdictDamage}, ev)
	})

	t.Run("Review ratings", func(t *testing.T) {
		ev, err := parseEvent(fieldsOf(mustStruct(t, map[string]any{
			"event":   "SUBMIT_REVIEW",
			"ratings": map[string]any{"communication": 5, "care": 4},
			"comment": "Returned clean",
		})))
		require.NoError(t, err)
		review := ev.(lifecycle.SubmitReview)
		assert.Equal(t, map[string]int32{"communication": 5, "care": 4}, review.Ratings)
		assert.Equal(t, "Returned clean", review.Comment)
	})

	t.Run("Fractional rating", func(t *testing.T) {
		_, err := parseEvent(fieldsOf(mustStruct(t, map[string]any{
			"event":   "SUBMIT_REVIEW",
			"ratings": map[string]any{"care": 4.5},
		})))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("Unknown event", func(t *testing.T) {
		_, err := parseEvent(fieldsOf(mustStruct(t, map[string]any{"event": "TELEPORT"})))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("Missing event", func(t *testing.T) {
		_, err := parseEvent(fieldsOf(mustStruct(t, map[string]any{"booking_id": 11})))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}
