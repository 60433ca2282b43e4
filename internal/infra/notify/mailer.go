package notify

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"flight-booking/internal/pkg/errs"

	brevo "github.com/getbrevo/brevo-go/lib"
	"github.com/google/uuid"
)

//go:generate mockgen -source=mailer.go -destination=../../../tests/mock/notify/mailer_mock.go -package=notifymock

// Mailer sends a rendered message and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

type Sender struct {
	Name  string
	Email string
}

// BrevoMailer uses the Brevo transactional e-mail API.
type BrevoMailer struct {
	api    *brevo.APIClient
	sender Sender
}

func NewBrevoMailer(baseURL, apiKey string, sender Sender, client *http.Client) *BrevoMailer {
	cfg := brevo.NewConfiguration()
	cfg.AddDefaultHeader("api-key", apiKey)
	if baseURL != "" {
		cfg.BasePath = strings.TrimRight(baseURL, "/") + "/v3"
	}
	if client != nil {
		cfg.HTTPClient = client
	}
	return &BrevoMailer{
		api:    brevo.NewAPIClient(cfg),
		sender: sender,
	}
}

func (m *BrevoMailer) Send(ctx context.Context, msg Message) (string, error) {
	out, resp, err := m.api.TransactionalEmailsApi.SendTransacEmail(ctx, brevo.SendSmtpEmail{
		Sender:      &brevo.SendSmtpEmailSender{Name: m.sender.Name, Email: m.sender.Email},
		To:          []brevo.SendSmtpEmailTo{{Email: msg.To, Name: msg.ToName}},
		Subject:     msg.Subject,
		HtmlContent: msg.HTML,
	})
	if err != nil {
		if resp != nil {
			return "", errs.Wrapf(err, "brevo responded %d", resp.StatusCode)
		}
		return "", errs.Wrap(err, "brevo request failed")
	}
	return out.MessageId, nil
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) (string, error) {
	id := "log-" + uuid.NewString()
	slog.InfoContext(ctx, "email not sent, no provider configured",
		"to", msg.To,
		"subject", msg.Subject,
		"message_id", id)
	return id, nil
}
