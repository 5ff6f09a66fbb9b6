package email

import (
	"bytes"
	"html/template"
	"path/filepath"
	"time"

	"github.com/oussamai/oussamai-backend/internal/config"
	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client       *resend.Client
	from         string
	fromName     string
	templatesDir string
	log          *zap.Logger
}

func NewEmailService(cfg *config.Config, log *zap.Logger) *EmailService {
	return &EmailService{
		client:       resend.NewClient(cfg.Resend.APIKey),
		from:         cfg.Resend.FromAddress,
		fromName:     cfg.Resend.FromName,
		templatesDir: "pkg/email/templates",
		log:          log,
	}
}

func (s *EmailService) SendWelcomeEmail(email, name string) error {
	html, err := s.parseTemplate("welcome.html", map[string]interface{}{
		"Name":  name,
		"Email": email,
		"Year":  time.Now().Year(),
	})
	if err != nil {
		s.log.Error("failed to parse welcome template", zap.String("email", email), zap.Error(err))
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Bienvenue sur OussamAI !",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.log.Error("failed to send welcome email", zap.String("email", email), zap.Error(err))
		return err
	}

	s.log.Info("welcome email sent", zap.String("email", email), zap.String("id", resp.Id))
	return nil
}

// SendRSVPConfirmationEmail confirms a guest's RSVP response for a wedding.
func (s *EmailService) SendRSVPConfirmationEmail(email, guestName, weddingName string, weddingDate time.Time, status string) error {
	html, err := s.parseTemplate("rsvp-confirmation.html", map[string]interface{}{
		"GuestName":   guestName,
		"WeddingName": weddingName,
		"WeddingDate": weddingDate.Format("02/01/2006"),
		"Status":      status,
		"Year":        time.Now().Year(),
	})
	if err != nil {
		s.log.Error("failed to parse rsvp template", zap.String("email", email), zap.Error(err))
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Votre réponse a bien été enregistrée - " + weddingName,
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.log.Error("failed to send rsvp confirmation", zap.String("email", email), zap.Error(err))
		return err
	}

	s.log.Info("rsvp confirmation sent", zap.String("email", email), zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) parseTemplate(templateName string, data interface{}) (string, error) {
	tmpl, err := template.ParseFiles(filepath.Join(s.templatesDir, templateName))
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", err
	}

	return body.String(), nil
}
