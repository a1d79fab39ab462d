package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
)

// capturer turns a device capture into an inspection photo. The location
// phase runs on the device; its fix arrives with the image or not at all.
type capturer struct {
	now func() time.Time
}

func (c *capturer) acquire(angle domain.EvidenceAngle, ev CapturePhoto) (domain.InspectionPhoto, error) {
	fix := ev.Location
	if fix == nil {
		logger.Debug("Capturing without GPS", "angle", angle.ID)
	}

	if strings.TrimSpace(ev.ImageURL) == "" {
		return domain.InspectionPhoto{}, fmt.Errorf("%w: photo is required for angle %s", domain.ErrValidation, angle.ID)
	}

	photo := domain.InspectionPhoto{
		AngleID:        angle.ID,
		URL:            ev.ImageURL,
		Timestamp:      c.now(),
		CapturedBy:     ev.CapturedBy,
		DamageDetected: ev.DamageDetected,
	}
	if fix != nil {
		lat, lng := fix.Latitude, fix.Longitude
		photo.Latitude = &lat
		photo.Longitude = &lng
	}
	return photo, nil
}

func currentAngle(set domain.EvidenceSet, angles []domain.EvidenceAngle) (domain.EvidenceAngle, bool) {
	if set.Cursor < 0 || set.Cursor >= len(angles) {
		return domain.EvidenceAngle{}, false
	}
	return angles[set.Cursor], true
}

// recordPhoto stores a photo for the angle under the cursor, replacing an
// earlier take of the same angle.
func recordPhoto(set domain.EvidenceSet, photo domain.InspectionPhoto) domain.EvidenceSet {
	photos := make([]domain.InspectionPhoto, 0, len(set.Photos)+1)
	replaced := false
	for _, p := range set.Photos {
		if p.AngleID == photo.AngleID {
			photos = append(photos, photo)
			replaced = true
			continue
		}
		photos = append(photos, p)
	}
	if !replaced {
		photos = append(photos, photo)
	}
	return domain.EvidenceSet{Photos: photos, Cursor: set.Cursor}
}

func advanceCursor(set domain.EvidenceSet, angles []domain.EvidenceAngle) (domain.EvidenceSet, error) {
	angle, ok := currentAngle(set, angles)
	if !ok {
		return set, fmt.Errorf("%w: all angles have been captured", domain.ErrValidation)
	}
	if _, ok := set.Photo(angle.ID); !ok {
		return set, fmt.Errorf("%w: capture a photo of %s before moving on", domain.ErrValidation, angle.Label)
	}
	set.Cursor++
	return set, nil
}

// missingAngles lists required angles that have no photo yet.
func missingAngles(set domain.EvidenceSet, angles []domain.EvidenceAngle) []string {
	var missing []string
	for _, a := range angles {
		if _, ok := set.Photo(a.ID); !ok {
			missing = append(missing, a.ID)
		}
	}
	return missing
}

// comparisonPairs lines up handover and return photos by angle id.
func comparisonPairs(outbound, inbound domain.EvidenceSet, angles []domain.EvidenceAngle) []domain.PhotoPair {
	pairs := make([]domain.PhotoPair, 0, len(angles))
	for _, a := range angles {
		pair := domain.PhotoPair{Angle: a}
		if p, ok := outbound.Photo(a.ID); ok {
			pair.Outbound = &p
		}
		if p, ok := inbound.Photo(a.ID); ok {
			pair.Inbound = &p
		}
		pairs = append(pairs, pair)
	}
	return pairs
}
