package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"time"

	"github.com/hoanvu/atelier/internal/common"
	"github.com/hoanvu/atelier/internal/notify"
	"github.com/hoanvu/atelier/internal/render"
	"github.com/hoanvu/atelier/internal/store"
	"github.com/hoanvu/atelier/params"
)

var (
	ErrDeliveryFailed = errors.New("otp delivery failed")
)

type Issued struct {
	SessionID string
	ExpiresAt time.Time
}

// Service issues and verifies single-use login codes. A pending code lives in
// the store under its session id for OTPCodeExpiration; verification consumes
// it in one atomic compare-and-delete, so the same code can never succeed
// twice.
type Service struct {
	codes    store.Store[string]
	notifier notify.Notifier
	expiry   time.Duration
}

// generateCode returns a uniform random 6-digit code in [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// Issue creates a code and session id, persists the pair with a TTL and
// delivers the code out-of-band. A failed delivery removes the stored entry:
// a code nobody received must not stay verifiable.
func (s *Service) Issue(ctx context.Context) (*Issued, error) {
	code, err := generateCode()
	if err != nil {
		return nil, err
	}
	sessionID, err := common.GenerateSecret(params.OTPSessionIDLength)
	if err != nil {
		return nil, err
	}

	if err := s.codes.Set(ctx, sessionID, code, s.expiry); err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(s.expiry)

	body, err := render.RenderText("notify/otp-code", map[string]interface{}{
		"otpCode":       code,
		"sessionId":     sessionID,
		"expireMinutes": int(s.expiry.Minutes()),
	})
	if err != nil {
		s.discardCode(ctx, sessionID)
		return nil, err
	}

	sendCtx, cancel := context.WithTimeout(ctx, params.NotifySendTimeout)
	defer cancel()
	if err := s.notifier.Send(sendCtx, fmt.Sprintf("%s is your login code", code), body); err != nil {
		s.discardCode(ctx, sessionID)
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	return &Issued{SessionID: sessionID, ExpiresAt: expiresAt}, nil
}

// discardCode removes a code nobody received. A failed removal leaves the
// code verifiable until its TTL reaps it, so it is worth an error log.
func (s *Service) discardCode(ctx context.Context, sessionID string) {
	if err := s.codes.Delete(ctx, sessionID); err != nil {
		slog.Error("Failed to discard undelivered code", "sessionId", sessionID, "error", err)
	}
}

// Verify reports whether code matches the pending entry for sessionID and
// consumes the entry on a match. An absent entry (never issued, expired or
// already used) and a mismatch both report false; a mismatch leaves the entry
// intact so the legitimate holder may retry within the window.
func (s *Service) Verify(ctx context.Context, sessionID string, code string) (bool, error) {
	if sessionID == "" || len(code) != params.OTPCodeLength {
		return false, nil
	}
	return s.codes.CompareAndDelete(ctx, sessionID, code)
}

func NewService(storage store.Storage, notifier notify.Notifier) *Service {
	return &Service{
		codes:    store.New[string](storage, params.OTPKeyPrefix),
		notifier: notifier,
		expiry:   params.OTPCodeExpiration,
	}
}
