package grpc

import (
	"math"
	"strings"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/lifecycle"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// parseEvent builds a lifecycle event from an Advance request. The "event"
// field names the kind; the remaining fields depend on it.
func parseEvent(r request) (lifecycle.Event, error) {
	kind := lifecycle.EventKind(strings.ToUpper(r.string("event")))
	switch kind {
	case lifecycle.EventConfirmBalance:
		return lifecycle.ConfirmBalance{}, nil
	case lifecycle.EventProceed:
		return lifecycle.Proceed{}, nil
	case lifecycle.EventSubmitIdentity:
		return lifecycle.SubmitIdentity{
			DocumentURL:  r.string("document_url"),
			ExpectedName: r.string("expected_name"),
		}, nil
	case lifecycle.EventOverrideIdentity:
		return lifecycle.OverrideIdentity{}, nil
	case lifecycle.EventCapturePhoto:
		ev := lifecycle.CapturePhoto{
			AngleID:        r.string("angle_id"),
			ImageURL:       r.string("image_url"),
			DamageDetected: r.bool("damage_detected"),
		}
		if r.has("location") {
			loc := r.object("location")
			lat, err := loc.float("latitude")
			if err != nil {
				return nil, err
			}
			lng, err := loc.float("longitude")
			if err != nil {
				return nil, err
			}
			ev.Location = &domain.GeoPoint{Latitude: lat, Longitude: lng}
		}
		return ev, nil
	case lifecycle.EventNextAngle:
		return lifecycle.NextAngle{}, nil
	case lifecycle.EventSignWaiver:
		return lifecycle.SignWaiver{}, nil
	case lifecycle.EventBeginReturn:
		return lifecycle.BeginReturn{}, nil
	case lifecycle.EventDecideVerdict:
		return lifecycle.DecideVerdict{Verdict: domain.DamageVerdict(strings.ToLower(r.string("verdict")))}, nil
	case lifecycle.EventFileClaim:
		return lifecycle.FileClaim{Notes: r.string("notes")}, nil
	case lifecycle.EventSubmitReview:
		ratings, err := parseRatings(r.fields["ratings"].GetStructValue())
		if err != nil {
			return nil, err
		}
		return lifecycle.SubmitReview{
			Ratings:     ratings,
			Comment:     r.string("comment"),
			PrivateNote: r.string("private_note"),
		}, nil
	case "":
		return nil, status.Error(codes.InvalidArgument, "event is required")
	}
	return nil, status.Errorf(codes.InvalidArgument, "unknown event %q", kind)
}

// parseRatings reads {"category": score}. Range checks happen in the lifecycle.
func parseRatings(s *structpb.Struct) (map[string]int32, error) {
	ratings := make(map[string]int32, len(s.GetFields()))
	for name, v := range s.GetFields() {
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
			return nil, status.Errorf(codes.InvalidArgument, "rating %s must be an integer", name)
		}
		ratings[name] = int32(n.NumberValue)
	}
	return ratings, nil
}
