package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/capsule/retail-inventory/internal/core/domain"
	"github.com/capsule/retail-inventory/internal/core/ports"
)

// SupportService forwards contact-page requests to the support mailbox.
type SupportService struct {
	mailer ports.Mailer
	to     string
	log    zerolog.Logger
}

func NewSupportService(mailer ports.Mailer, supportAddress string, log zerolog.Logger) *SupportService {
	return &SupportService{
		mailer: mailer,
		to:     supportAddress,
		log:    log,
	}
}

func (s *SupportService) Submit(ctx context.Context, req ports.SupportRequest) error {
	if req.Email == "" {
		return domain.ErrValidation
	}
	if s.mailer == nil || s.to == "" {
		return domain.ErrMailUnavailable
	}

	msg := domain.Mail{
		From:    req.Email,
		To:      s.to,
		Subject: "Support Request: " + req.Issue,
		Body: fmt.Sprintf("Username: %s\nEmail: %s\nIssue: %s\nMessage: %s",
			req.Username, req.Email, req.Issue, req.Message),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send support mail: %w", err)
	}
	s.log.Info().Str("from", req.Email).Str("issue", req.Issue).Msg("support request sent")
	return nil
}
