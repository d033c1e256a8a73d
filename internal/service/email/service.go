package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/resend/resend-go/v3"

	"devsa-jobs/internal/config"
	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/pkg/i18n"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Service interface {
	SendNotificationEmail(ctx context.Context, toEmail, recipientName string, notif *domain.Notification) error
}

type sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type service struct {
	sender    sender
	config    *config.Config
	templates *template.Template
}

func NewService(cfg *config.Config) Service {
	var s sender
	if cfg.ResendAPIKey != "" {
		s = resend.NewClient(cfg.ResendAPIKey).Emails
	}
	return newService(s, cfg)
}

func newService(s sender, cfg *config.Config) *service {
	return &service{
		sender:    s,
		config:    cfg,
		templates: template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
}

func (s *service) render(data interface{}) (string, error) {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "layout.html", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) SendNotificationEmail(ctx context.Context, toEmail, recipientName string, notif *domain.Notification) error {
	data := struct {
		Title      string
		Greeting   string
		Body       string
		SourceName string
		Link       string
		CTA        string
	}{
		Title:      notif.Title,
		Greeting:   i18n.T("email.greeting", recipientName),
		Body:       notif.Body,
		SourceName: notif.SourceName,
		Link:       fmt.Sprintf("https://%s%s", s.config.Domain, notif.Link),
		CTA:        i18n.T("email.cta"),
	}

	html, err := s.render(data)
	if err != nil {
		return err
	}

	if s.sender == nil {
		slog.Debug("email disabled, skipping send", slog.String("to", toEmail), slog.String("subject", notif.Title))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("DEVSA Jobs <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: notif.Title + " - " + i18n.T("email.subject_suffix"),
	}

	_, err = s.sender.Send(params)
	return err
}
