package webhook

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	Secret          string   // Telegram secret_token; empty disables the header check
	AllowedIPs      []string // IP or CIDR whitelist (optional)
	RateLimitPerMin int      // Max updates per chat per minute; 0 disables limiting
}

const (
	defaultLimiterCapacity = 1000
	minBurst               = 1
)
