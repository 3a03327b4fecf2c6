package ports

import (
	"context"

	"github.com/capsule/retail-inventory/internal/core/domain"
)

type Mailer interface {
	Send(ctx context.Context, msg domain.Mail) error
}

// SupportRequest is what a visitor submits from the contact page.
type SupportRequest struct {
	Username string
	Email    string
	Issue    string
	Message  string
}

type SupportService interface {
	Submit(ctx context.Context, req SupportRequest) error
}
