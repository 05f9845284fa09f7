package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendVerificationCode(email, code string) error
	SendCardStatusEmail(email, cardType, status string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendVerificationCode(email, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Votre code de vérification")

	body := fmt.Sprintf(`
		<h3>Vérification de votre adresse e-mail</h3>
		<p>Votre code de vérification est : <strong>%s</strong></p>
		<p>Ce code expire dans 15 minutes.</p>
		<p>Si vous n'êtes pas à l'origine de cette demande, ignorez ce message.</p>
	`, code)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}

func (s *emailService) SendCardStatusEmail(email, cardType, status string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Mise à jour de votre demande de carte")

	body := fmt.Sprintf(`
		<h3>Demande de carte %s</h3>
		<p>Le statut de votre demande est maintenant : <strong>%s</strong></p>
		<p>Connectez-vous à votre espace client pour plus de détails.</p>
	`, cardType, status)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send card status email: %w", err)
	}

	return nil
}
