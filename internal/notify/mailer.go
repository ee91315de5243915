package notify

import (
	"fmt"

	"spendtrack-backend/internal/config"
	"spendtrack-backend/internal/models"

	"gopkg.in/gomail.v2"
)

// Mailer sends plain-text mail over SMTP. A dialer is cheap to keep around;
// gomail opens a connection per send.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPFrom,
	}
}

func (m *Mailer) Notify(user *models.User, subject, body string) error {
	if user.Email == "" {
		return fmt.Errorf("user %d has no email address", user.ID)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", user.Email, err)
	}
	return nil
}
