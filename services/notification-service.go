package services

import (
	"fmt"
	"net/smtp"
	"os"
	"time"

	"github.com/sony/gobreaker"

	"github.com/SamarthKasar123/Primewave/logging"
)

// SendFunc delivers one email.
type SendFunc func(to, subject, body string) error

// NotificationService emails clients about lifecycle events. Deliveries
// run through a circuit breaker so a dead relay stops being dialed after
// repeated failures instead of slowing every request down.
type NotificationService struct {
	send    SendFunc
	breaker *gobreaker.CircuitBreaker
}

func NewNotificationService(send SendFunc) *NotificationService {
	if send == nil {
		send = SendSMTPEmail
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "EmailNotifications",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Warnf("Circuit breaker %s changed from %s to %s", name, from.String(), to.String())
		},
	})
	return &NotificationService{send: send, breaker: breaker}
}

func (s *NotificationService) Send(to, subject, body string) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.send(to, subject, body)
	})
	return err
}

// SendSMTPEmail sends an email through the relay configured in the
// environment. An unset EMAIL_PASSWORD disables delivery.
func SendSMTPEmail(to, subject, body string) error {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("EMAIL_PASSWORD")

	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		smtpHost = "smtp.gmail.com"
	}
	smtpPort := os.Getenv("SMTP_PORT")
	if smtpPort == "" {
		smtpPort = "587"
	}

	if password == "" {
		return fmt.Errorf("EMAIL_PASSWORD is not set")
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
