package grpc

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/service"
	"gearshare-backend/internal/utils"

	"github.com/goccy/go-json"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const dateLayout = utils.DateLayout

// request reads typed fields out of a Struct message.
type request struct {
	fields map[string]*structpb.Value
}

func fieldsOf(s *structpb.Struct) request {
	return request{fields: s.GetFields()}
}

func (r request) has(name string) bool {
	v, ok := r.fields[name]
	if !ok {
		return false
	}
	_, isNull := v.GetKind().(*structpb.Value_NullValue)
	return !isNull
}

func (r request) int32(name string) (int32, error) {
	v, ok := r.fields[name]
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) || n.NumberValue > math.MaxInt32 || n.NumberValue < math.MinInt32 {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer", name)
	}
	return int32(n.NumberValue), nil
}

func (r request) optionalInt32(name string, def int32) (int32, error) {
	if !r.has(name) {
		return def, nil
	}
	return r.int32(name)
}

func (r request) int64(name string) (int64, error) {
	v, ok := r.fields[name]
	if !ok {
		return 0, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer", name)
	}
	return int64(n.NumberValue), nil
}

func (r request) float(name string) (float64, error) {
	v, ok := r.fields[name]
	if !ok {
		return 0, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a number", name)
	}
	return n.NumberValue, nil
}

func (r request) string(name string) string {
	return strings.TrimSpace(r.fields[name].GetStringValue())
}

func (r request) requiredString(name string) (string, error) {
	s := r.string(name)
	if s == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	return s, nil
}

func (r request) bool(name string) bool {
	return r.fields[name].GetBoolValue()
}

// date accepts a calendar date or an RFC 3339 timestamp.
func (r request) date(name string) (time.Time, error) {
	s, err := r.requiredString(name)
	if err != nil {
		return time.Time{}, err
	}
	if t, err := utils.ParseDate(s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "%s must be a date (YYYY-MM-DD)", name)
	}
	return t, nil
}

func (r request) object(name string) request {
	return request{fields: r.fields[name].GetStructValue().GetFields()}
}

func newStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return s, nil
}

// jsonValue converts a json-tagged domain value into the generic form
// structpb accepts.
func jsonValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func MapDomainUser(u *domain.User) map[string]any {
	if u == nil {
		return nil
	}
	return map[string]any{
		"id":          u.ID,
		"name":        u.Name,
		"email":       u.Email,
		"has_license": u.HasLicense,
		"is_admin":    u.IsAdmin,
	}
}

func MapDomainListing(l *domain.Listing) map[string]any {
	if l == nil {
		return nil
	}
	return map[string]any{
		"id":                     l.ID,
		"owner_id":               l.OwnerID,
		"owner_name":             l.OwnerName,
		"title":                  l.Title,
		"item_name":              l.ItemName(),
		"category":               string(l.Category),
		"subcategory":            l.Subcategory,
		"pricing_mode":           string(l.PricingMode),
		"rate_cents":             l.RateCents,
		"security_deposit_cents": l.SecurityDepositCents,
	}
}

func MapDomainPrice(p domain.PriceBreakdown) map[string]any {
	return map[string]any{
		"days":                 p.Days,
		"base_rental_cents":    p.BaseRentalCents,
		"protection_fee_cents": p.ProtectionFeeCents,
		"service_fee_cents":    p.ServiceFeeCents,
		"total_cents":          p.TotalCents,
		"risk_tier":            string(p.RiskTier),
		"protection_label":     p.ProtectionLabel,
		"requires_license":     p.RequiresLicense,
		"fee_config_version":   p.FeeConfigVersion,
	}
}

func MapDomainBooking(b *domain.Booking) map[string]any {
	if b == nil {
		return nil
	}
	m := map[string]any{
		"id":                      b.ID,
		"listing_id":              b.ListingID,
		"renter_id":               b.RenterID,
		"owner_id":                b.OwnerID,
		"start_date":              b.StartDate.Format(dateLayout),
		"end_date":                b.EndDate.Format(dateLayout),
		"price":                   MapDomainPrice(b.Price),
		"contract_type":           string(b.ContractType),
		"protection_acknowledged": b.ProtectionAcknowledged,
		"status":                  string(b.Status),
		"version":                 b.Version,
	}
	if b.CancelReason != "" {
		m["cancel_reason"] = b.CancelReason
	}
	return m
}

func MapDomainAngles(angles []domain.EvidenceAngle) []any {
	out := make([]any, len(angles))
	for i, a := range angles {
		out[i] = MapDomainAngle(a)
	}
	return out
}

func MapDomainAngle(a domain.EvidenceAngle) map[string]any {
	return map[string]any{
		"id":          a.ID,
		"label":       a.Label,
		"description": a.Description,
	}
}

func MapQuote(q *service.Quote) map[string]any {
	return map[string]any{
		"listing":         MapDomainListing(q.Listing),
		"price":           MapDomainPrice(q.Price),
		"contract_type":   string(q.ContractType),
		"required_angles": MapDomainAngles(q.RequiredAngles),
		"eligible":        q.Eligible,
	}
}

func MapDomainFeeConfig(c *domain.FeeConfig) map[string]any {
	return map[string]any{
		"version":                         c.Version,
		"strategy":                        string(c.Strategy),
		"percentage_rate":                 c.PercentageRate,
		"min_fee_cents":                   c.MinFeeCents,
		"tier1_limit_cents":               c.Tier1LimitCents,
		"tier1_fee_cents":                 c.Tier1FeeCents,
		"tier2_limit_cents":               c.Tier2LimitCents,
		"tier2_fee_cents":                 c.Tier2FeeCents,
		"tier3_fee_cents":                 c.Tier3FeeCents,
		"service_fee_threshold_cents":     c.ServiceFeeThresholdCents,
		"service_fee_low_cents":           c.ServiceFeeLowCents,
		"service_fee_high_cents":          c.ServiceFeeHighCents,
		"powersports_daily_premium_cents": c.PowersportsDailyPremiumCents,
		"deductible_cents":                c.DeductibleCents,
		"created_by":                      c.CreatedBy,
		"created_on":                      c.CreatedOn.Format(time.RFC3339),
	}
}

// ParseFeeConfig reads a fee configuration from a request. Validation is left
// to the fee configuration service.
func ParseFeeConfig(r request) (*domain.FeeConfig, error) {
	cfg := &domain.FeeConfig{Strategy: domain.ProtectionStrategy(strings.ToLower(r.string("strategy")))}
	var err error
	if cfg.PercentageRate, err = r.float("percentage_rate"); err != nil {
		return nil, err
	}
	amounts := []struct {
		name string
		dst  *int64
	}{
		{"min_fee_cents", &cfg.MinFeeCents},
		{"tier1_limit_cents", &cfg.Tier1LimitCents},
		{"tier1_fee_cents", &cfg.Tier1FeeCents},
		{"tier2_limit_cents", &cfg.Tier2LimitCents},
		{"tier2_fee_cents", &cfg.Tier2FeeCents},
		{"tier3_fee_cents", &cfg.Tier3FeeCents},
		{"service_fee_threshold_cents", &cfg.ServiceFeeThresholdCents},
		{"service_fee_low_cents", &cfg.ServiceFeeLowCents},
		{"service_fee_high_cents", &cfg.ServiceFeeHighCents},
		{"powersports_daily_premium_cents", &cfg.PowersportsDailyPremiumCents},
		{"deductible_cents", &cfg.DeductibleCents},
	}
	for _, a := range amounts {
		if *a.dst, err = r.int64(a.name); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func MapDomainNotification(n *domain.Notification) map[string]any {
	attrs := make(map[string]any, len(n.Attributes))
	for k, v := range n.Attributes {
		attrs[k] = v
	}
	return map[string]any{
		"id":         n.ID,
		"user_id":    n.UserID,
		"booking_id": n.BookingID,
		"kind":       string(n.Kind),
		"title":      n.Title,
		"message":    n.Message,
		"is_read":    n.IsRead,
		"attributes": attrs,
		"created_on": n.CreatedOn.Format(time.RFC3339),
	}
}

func MapContract(doc *domain.ContractDocument) (map[string]any, error) {
	v, err := jsonValue(doc)
	if err != nil {
		return nil, fmt.Errorf("encode contract: %w", err)
	}
	m := v.(map[string]any)
	m["start_date"] = doc.StartDate.Format(dateLayout)
	m["end_date"] = doc.EndDate.Format(dateLayout)
	return m, nil
}

func MapSessionView(v *service.SessionView) (map[string]any, error) {
	snapshot, err := jsonValue(v.Session)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	pairs, err := jsonValue(v.ComparisonPairs)
	if err != nil {
		return nil, fmt.Errorf("encode comparison pairs: %w", err)
	}
	allowed := make([]any, len(v.Allowed))
	for i, k := range v.Allowed {
		allowed[i] = string(k)
	}

	m := map[string]any{
		"session":           snapshot,
		"state":             v.Session.State.String(),
		"required_angles":   MapDomainAngles(v.RequiredAngles),
		"allowed_events":    allowed,
		"remaining_seconds": int64(v.Remaining / time.Second),
		"comparison_pairs":  pairs,
	}
	if v.CurrentAngle != nil {
		m["current_angle"] = MapDomainAngle(*v.CurrentAngle)
	}
	if v.Transition != nil {
		t, err := jsonValue(v.Transition)
		if err != nil {
			return nil, fmt.Errorf("encode transition: %w", err)
		}
		m["transition"] = t
	}
	return m, nil
}

func MapPhotoUpload(u *service.PhotoUpload) map[string]any {
	return map[string]any{
		"upload_url":   u.UploadURL,
		"download_url": u.DownloadURL,
		"key":          u.Key,
		"expires_at":   u.ExpiresAt.Format(time.RFC3339),
	}
}
