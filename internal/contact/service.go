package contact

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"

	"gallery-shop/internal/logger"
	"gallery-shop/internal/models"
)

var (
	ErrMissingFields   = errors.New("name, email, and message are required")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrMailUnavailable = errors.New("email service unavailable")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Mail interface {
	Configured() bool
	SendContactNotification(to string, contact models.ContactMessage) error
	SendContactAutoReply(contact models.ContactMessage) error
}

// Service handles contact-form submissions: an artist notification and a
// customer auto-reply, sent concurrently. Unlike fulfillment mail, a failure
// here is surfaced to the caller so the visitor knows their message was lost.
type Service struct {
	mail        Mail
	artistEmail string
	log         *logger.Logger
}

func NewService(mail Mail, artistEmail string, log *logger.Logger) *Service {
	return &Service{mail: mail, artistEmail: artistEmail, log: log}
}

func (s *Service) Submit(req models.ContactRequest) error {
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return ErrMissingFields
	}
	if !emailPattern.MatchString(req.Email) {
		return ErrInvalidEmail
	}
	if s.mail == nil || !s.mail.Configured() || s.artistEmail == "" {
		s.log.Error("CONTACT", "Email configuration missing")
		return ErrMailUnavailable
	}

	msg := models.ContactMessage{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Subject:    req.Subject,
		Message:    req.Message,
		ReceivedAt: time.Now(),
	}

	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		errs[0] = s.mail.SendContactNotification(s.artistEmail, msg)
	}()
	go func() {
		defer wg.Done()
		errs[1] = s.mail.SendContactAutoReply(msg)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			s.log.Error("CONTACT", fmt.Sprintf("Failed to send contact emails for message %s: %v", msg.ID, err))
			return fmt.Errorf("failed to send contact emails: %w", err)
		}
	}

	s.log.Info("CONTACT", fmt.Sprintf("Contact form emails sent for message %s", msg.ID))
	return nil
}
