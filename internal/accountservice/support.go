package accountservice

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-petr/edupay/internal/domain"
)

// SendSupportMessage leaves message for the admins on behalf of username.
func (s *Service) SendSupportMessage(ctx context.Context, username, message string) (domain.SupportMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.SupportMessage{}, domain.ErrInvalidMessage
	}

	if r := []rune(message); len(r) > domain.MaxMessageLen {
		message = string(r[:domain.MaxMessageLen])
	}

	a, err := s.repo.Get(ctx, username)
	if err != nil {
		return domain.SupportMessage{}, err
	}

	m, err := s.inbox.Add(ctx, domain.SupportMessage{
		Username:  a.Username,
		Name:      a.FullName,
		Role:      a.Role,
		Message:   html.EscapeString(message),
		CreatedAt: time.Now(),
	})
	if err != nil {
		return domain.SupportMessage{}, err
	}

	l := zerolog.Ctx(ctx)
	l.Info().Str("username", a.Username).Int64("message_id", m.ID).Msg("support message received")

	return m, nil
}

// SupportMessages returns every support message, newest first, and marks them read.
func (s *Service) SupportMessages(ctx context.Context) ([]domain.SupportMessage, error) {
	return s.inbox.ReadAll(ctx)
}
