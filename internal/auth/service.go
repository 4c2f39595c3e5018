package auth

import (
	"context"

	"github.com/hoanvu/atelier/internal/otp"
	"github.com/hoanvu/atelier/internal/ratelimit"
	"github.com/hoanvu/atelier/internal/token"
	"github.com/hoanvu/atelier/params"
)

// Service drives the two-step admin login: request a code, then trade the
// code for a signed session token. Both steps fail closed when the counter
// store is unreachable.
type Service struct {
	limiters *ratelimit.Factory
	otp      *otp.Service
	tokens   *token.Service
	admin    string
}

// RequestCode issues a fresh OTP after the caller's IP passes the send
// limiter. Each call mints a new session/code pair; the previous pair stays
// valid until it expires or is consumed.
func (s *Service) RequestCode(ctx context.Context, ip string) (*otp.Issued, error) {
	limiter := s.limiters.Limiter(params.SendOTPIPLimit, params.OTPRateLimitWindow)
	res, err := limiter.Check(ctx, "otp_send:"+ip)
	if err != nil {
		return nil, err
	}
	if !res.Allowed {
		return nil, &ThrottledError{RetryAfter: res.RetryAfter}
	}
	return s.otp.Issue(ctx)
}

// VerifyCode checks the IP and session limiters concurrently; if either is
// exhausted the call is rejected with the larger of the two retry-after
// values. On a matching code it returns the minted session token and
// principal.
func (s *Service) VerifyCode(ctx context.Context, ip string, sessionID string, code string) (string, *token.Principal, error) {
	ipLimiter := s.limiters.Limiter(params.VerifyOTPIPLimit, params.OTPRateLimitWindow)
	sessLimiter := s.limiters.Limiter(params.VerifyOTPSessionLimit, params.OTPRateLimitWindow)

	type checkResult struct {
		res ratelimit.Result
		err error
	}
	ipDone := make(chan checkResult, 1)
	go func() {
		res, err := ipLimiter.Check(ctx, "otp_verify:"+ip)
		ipDone <- checkResult{res, err}
	}()
	sessRes, sessErr := sessLimiter.Check(ctx, "otp_verify_session:"+sessionID)
	ipCheck := <-ipDone

	if ipCheck.err != nil {
		return "", nil, ipCheck.err
	}
	if sessErr != nil {
		return "", nil, sessErr
	}
	if !ipCheck.res.Allowed || !sessRes.Allowed {
		retryAfter := ipCheck.res.RetryAfter
		if sessRes.RetryAfter > retryAfter {
			retryAfter = sessRes.RetryAfter
		}
		return "", nil, &ThrottledError{RetryAfter: retryAfter}
	}

	ok, err := s.otp.Verify(ctx, sessionID, code)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, ErrInvalidCode
	}

	signed, err := s.tokens.Issue(s.admin)
	if err != nil {
		return "", nil, err
	}
	return signed, &token.Principal{Username: s.admin, Role: token.RoleAdmin}, nil
}

func NewService(limiters *ratelimit.Factory, otpService *otp.Service, tokens *token.Service, adminUsername string) *Service {
	return &Service{
		limiters: limiters,
		otp:      otpService,
		tokens:   tokens,
		admin:    adminUsername,
	}
}
