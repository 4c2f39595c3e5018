package params

import "time"

const (
	ServerBodyLimit    = 1048576 // 1 MiB
	ServerIdleTimeout  = 30 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 10 * time.Second

	OTPKeyPrefix       = "otp:" // pending OTP codes, keyed by session id
	RateLimitKeyPrefix = "rl:"  // fixed-window counters

	OTPCodeLength      = 6
	OTPCodeExpiration  = 5 * time.Minute // pending code time to live
	OTPSessionIDLength = 32              // base64url chars, ~192 bits of entropy

	SendOTPIPLimit        = 3  // send-otp requests allowed per IP per window
	VerifyOTPIPLimit      = 10 // verify-otp attempts allowed per IP per window
	VerifyOTPSessionLimit = 5  // verify-otp attempts allowed per session per window
	OTPRateLimitWindow    = 5 * time.Minute

	ContactIPLimit         = 5 // contact submissions allowed per IP per window
	ContactRateLimitWindow = 10 * time.Minute

	AdminTokenCookieName = "admin-token"
	AdminTokenExpiration = 24 * time.Hour

	NotifySendTimeout = 10 * time.Second // bound on third-party delivery calls

	HomePropertyCount     = 6 // latest published properties shown on the home page
	HealthCheckServerAddr = ":3001"
)
