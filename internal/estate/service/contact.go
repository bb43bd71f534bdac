package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/estate/pkg/slogx"
)

type ContactMessage struct {
	Name    string
	Email   string
	Phone   string // optional
	Message string
}

// ContactService accepts enquiries from the contact form. Submissions are
// only logged; nothing is stored or mailed.
type ContactService struct {
	Logger *slog.Logger
}

// Submit validates msg and records it. Name, email and message are required.
func (s *ContactService) Submit(ctx context.Context, msg ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Phone = strings.TrimSpace(msg.Phone)
	msg.Message = strings.TrimSpace(msg.Message)
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return ErrValidation
	}

	log := s.Logger
	if log == nil {
		log = slogx.FromContext(ctx)
	}
	log.InfoContext(ctx, "contact form submission",
		"name", msg.Name,
		"email", msg.Email,
		"phone", msg.Phone,
		"message", msg.Message,
	)
	return nil
}
