package contact

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hoanvu/atelier/internal/notify"
	"github.com/hoanvu/atelier/internal/render"
	"github.com/hoanvu/atelier/model"
	"github.com/hoanvu/atelier/params"
)

type Service struct {
	repo     InquiryRepository
	notifier notify.Notifier
}

// Submit persists an inquiry and forwards it to the studio's channel. A
// failed forward is logged but does not fail the submission; the lead is
// already stored.
func (s *Service) Submit(ctx context.Context, inquiry *model.Inquiry) error {
	inquiry.Reference = uuid.NewString()
	if err := s.repo.Create(ctx, inquiry); err != nil {
		return err
	}

	body, err := render.RenderText("notify/contact-inquiry", map[string]interface{}{
		"reference": inquiry.Reference,
		"name":      inquiry.Name,
		"email":     inquiry.Email,
		"phone":     inquiry.Phone,
		"message":   inquiry.Message,
	})
	if err == nil {
		sendCtx, cancel := context.WithTimeout(ctx, params.NotifySendTimeout)
		defer cancel()
		err = s.notifier.Send(sendCtx, "New consultation inquiry", body)
	}
	if err != nil {
		slog.Warn("Failed to forward inquiry", "reference", inquiry.Reference, "error", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]model.Inquiry, error) {
	return s.repo.List(ctx)
}

func NewService(repo InquiryRepository, notifier notify.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}
