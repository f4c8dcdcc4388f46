package sendgrid

import (
	"context"
	"fmt"
	"strings"

	sgclient "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/savedate/save-date/internal/models"
)

type EmailService interface {
	Send(ctx context.Context, req *models.EmailNotificationRequest) error
}

const sendEndpoint = "/v3/mail/send"

type emailService struct {
	client    *sgclient.Client
	fromEmail string
	fromName  string
}

type Option func(*emailService)

// WithBaseURL points the client at another API host, such as the EU
// region (https://api.eu.sendgrid.com). An empty host keeps the default.
func WithBaseURL(host string) Option {
	return func(e *emailService) {
		if host == "" {
			return
		}
		e.client.Request.BaseURL = strings.TrimRight(host, "/") + sendEndpoint
	}
}

func NewEmailService(apiKey string, fromEmail string, fromName string, opts ...Option) EmailService {
	e := &emailService{client: sgclient.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *emailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(e.fromName, e.fromEmail))

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", req.To))
	personalization.Subject = req.Subject
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", req.Content))

	// SendGrid rejects empty content blocks
	if req.HTMLContent != "" {
		message.AddContent(mail.NewContent("text/html", req.HTMLContent))
	}

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}
