// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic  SecurityLevel = iota // No authentication
	SecurityRefresh                      // Refresh token required
	SecurityAccess                       // Access token required
	SecurityAdmin                        // Access token with the admin role
)

// EndpointSecurityConfig maps methods to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// AuthService
	"/gearshare.v1.AuthService/Login":        SecurityPublic,
	"/gearshare.v1.AuthService/RefreshToken": SecurityRefresh,

	// BookingService - Access Protected
	"/gearshare.v1.BookingService/Quote":          SecurityAccess,
	"/gearshare.v1.BookingService/CreateBooking":  SecurityAccess,
	"/gearshare.v1.BookingService/ConfirmBooking": SecurityAccess,
	"/gearshare.v1.BookingService/CancelBooking":  SecurityAccess,
	"/gearshare.v1.BookingService/GetContract":    SecurityAccess,

	// SessionService
	"/gearshare.v1.SessionService/GetSession":         SecurityAccess,
	"/gearshare.v1.SessionService/Advance":            SecurityAccess,
	"/gearshare.v1.SessionService/RequestPhotoUpload": SecurityAccess,
	"/gearshare.v1.SessionService/OverrideIdentity":   SecurityAdmin,

	// FeeConfigService
	"/gearshare.v1.FeeConfigService/GetActiveFeeConfig": SecurityAccess,
	"/gearshare.v1.FeeConfigService/PublishFeeConfig":   SecurityAdmin,

	// NotificationService - Access Protected
	"/gearshare.v1.NotificationService/GetNotifications":     SecurityAccess,
	"/gearshare.v1.NotificationService/MarkNotificationRead": SecurityAccess,
}

// GetSecurityLevel returns the security level for a given method
func GetSecurityLevel(method string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[method]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAdmin
}
