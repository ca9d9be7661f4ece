package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/services"
)

type sentMail struct{ to, subject, body string }

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, body})
	return nil
}

func TestContactSendComposesMail(t *testing.T) {
	sender := &fakeSender{}
	svc := services.NewContactService(sender, "owner@shop.test", repos.NewMessageRepo())

	err := svc.Send(context.Background(), domain.ContactMessage{Name: "Ada", Email: "ada@example.com", Message: "Hello!"})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "owner@shop.test", sender.sent[0].to)
	assert.Equal(t, "[Contact] Ada <ada@example.com>", sender.sent[0].subject)
	assert.Equal(t, "Name: Ada\nEmail: ada@example.com\n\nMessage:\nHello!", sender.sent[0].body)
}

func TestContactSendFailure(t *testing.T) {
	svc := services.NewContactService(&fakeSender{err: errors.New("smtp down")}, "owner@shop.test", repos.NewMessageRepo())
	err := svc.Send(context.Background(), domain.ContactMessage{Name: "Ada", Email: "ada@example.com", Message: "Hi"})
	assert.ErrorContains(t, err, "smtp down")
}

func TestPublicMessages(t *testing.T) {
	svc := services.NewContactService(&fakeSender{}, "", repos.NewMessageRepo())
	assert.NotNil(t, svc.ListPublic())
	assert.Empty(t, svc.ListPublic())

	svc.PostPublic(domain.ContactMessage{Name: "A", Email: "a@x.test", Message: "first"})
	svc.PostPublic(domain.ContactMessage{Name: "B", Email: "b@x.test", Message: "second"})

	got := svc.ListPublic()
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Message)
	assert.Equal(t, "second", got[1].Message)
	assert.False(t, got[0].CreatedAt.IsZero())
}
