package domain

import "time"

type EvidenceAngle struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type InspectionPhoto struct {
	AngleID        string    `json:"angle_id"`
	URL            string    `json:"url"`
	Timestamp      time.Time `json:"timestamp"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	CapturedBy     int32     `json:"captured_by"`
	DamageDetected bool      `json:"damage_detected,omitempty"` // Return inspection only
}

// EvidenceSet holds the photos of one checkpoint and the capture cursor
// into the required angle list.
type EvidenceSet struct {
	Photos []InspectionPhoto `json:"photos"`
	Cursor int               `json:"cursor"`
}

// Photo looks a photo up by angle id. Position in Photos carries no meaning.
func (e EvidenceSet) Photo(angleID string) (InspectionPhoto, bool) {
	for _, p := range e.Photos {
		if p.AngleID == angleID {
			return p, true
		}
	}
	return InspectionPhoto{}, false
}

// PhotoPair lines up the handover and return photos of one angle.
type PhotoPair struct {
	Angle    EvidenceAngle    `json:"angle"`
	Outbound *InspectionPhoto `json:"outbound,omitempty"`
	Inbound  *InspectionPhoto `json:"inbound,omitempty"`
}
