package services

import (
	"crypto/tls"
	"fmt"
	"html"

	"github.com/princeprakhar/gold-marketplace/internal/config"
	"gopkg.in/gomail.v2"
)

type EmailService struct {
	config *config.Config
}

func NewEmailService(config *config.Config) *EmailService {
	return &EmailService{config: config}
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	d.TLSConfig = &tls.Config{ServerName: s.config.SMTPHost}

	return d.DialAndSend(m)
}

// SendSellerDecision tells an applicant whether their shop was approved.
func (s *EmailService) SendSellerDecision(to, shopName string, approved bool) error {
	subject, body := sellerDecisionMessage(shopName, approved)
	return s.SendEmail(to, subject, body)
}

func sellerDecisionMessage(shopName string, approved bool) (string, string) {
	shop := html.EscapeString(shopName)
	if approved {
		return "Your shop has been approved", fmt.Sprintf(`
		<h2>Welcome aboard</h2>
		<p>Your shop <strong>%s</strong> has been approved. You can now list products.</p>
	`, shop)
	}
	return "Your seller application was declined", fmt.Sprintf(`
		<h2>Seller application update</h2>
		<p>Your application for <strong>%s</strong> was not approved. You can apply again at any time.</p>
	`, shop)
}
