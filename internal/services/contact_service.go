package services

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/mail"
	"storefront/internal/repos"
)

type ContactService struct {
	Mail      mail.Sender
	Recipient string
	Messages  *repos.MessageRepo

	now func() time.Time
}

func NewContactService(sender mail.Sender, recipient string, msgs *repos.MessageRepo) *ContactService {
	return &ContactService{
		Mail:      sender,
		Recipient: recipient,
		Messages:  msgs,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Send forwards a contact form to the shop mailbox.
func (s *ContactService) Send(ctx context.Context, m domain.ContactMessage) error {
	subject := fmt.Sprintf("[Contact] %s <%s>", m.Name, m.Email)
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", m.Name, m.Email, m.Message)
	if err := s.Mail.Send(ctx, s.Recipient, subject, body); err != nil {
		return fmt.Errorf("send contact mail: %w", err)
	}
	return nil
}

func (s *ContactService) PostPublic(m domain.ContactMessage) domain.PublicMessage {
	pm := domain.PublicMessage{Name: m.Name, Email: m.Email, Message: m.Message, CreatedAt: s.now()}
	s.Messages.Append(pm)
	return pm
}

func (s *ContactService) ListPublic() []domain.PublicMessage {
	return s.Messages.List()
}
