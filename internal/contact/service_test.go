package contact_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gallery-shop/internal/contact"
	"gallery-shop/internal/logger"
	"gallery-shop/internal/models"
)

type MockMail struct {
	mock.Mock
}

func (m *MockMail) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockMail) SendContactNotification(to string, msg models.ContactMessage) error {
	args := m.Called(to, msg)
	return args.Error(0)
}

func (m *MockMail) SendContactAutoReply(msg models.ContactMessage) error {
	args := m.Called(msg)
	return args.Error(0)
}

func validRequest() models.ContactRequest {
	return models.ContactRequest{
		Name:    "Jordan",
		Email:   "jordan@example.com",
		Subject: "Commission inquiry",
		Message: "Do you take commissions?",
	}
}

func TestSubmit_MissingFields(t *testing.T) {
	mail := new(MockMail)
	svc := contact.NewService(mail, "artist@example.com", logger.New("test"))

	cases := []models.ContactRequest{
		{Email: "jordan@example.com", Message: "hi"},
		{Name: "Jordan", Message: "hi"},
		{Name: "Jordan", Email: "jordan@example.com"},
	}
	for _, req := range cases {
		assert.ErrorIs(t, svc.Submit(req), contact.ErrMissingFields)
	}
	mail.AssertNotCalled(t, "SendContactNotification")
}

func TestSubmit_InvalidEmail(t *testing.T) {
	mail := new(MockMail)
	svc := contact.NewService(mail, "artist@example.com", logger.New("test"))

	for _, email := range []string{"not-an-email", "missing@tld", "spaces in@example.com", "@example.com"} {
		req := validRequest()
		req.Email = email
		assert.ErrorIs(t, svc.Submit(req), contact.ErrInvalidEmail)
	}
	mail.AssertNotCalled(t, "SendContactNotification")
}

func TestSubmit_MailUnavailable(t *testing.T) {
	mail := new(MockMail)
	mail.On("Configured").Return(false)
	svc := contact.NewService(mail, "artist@example.com", logger.New("test"))

	assert.ErrorIs(t, svc.Submit(validRequest()), contact.ErrMailUnavailable)

	mail = new(MockMail)
	mail.On("Configured").Return(true)
	svc = contact.NewService(mail, "", logger.New("test"))

	assert.ErrorIs(t, svc.Submit(validRequest()), contact.ErrMailUnavailable)
}

func TestSubmit_SendsBothEmails(t *testing.T) {
	mail := new(MockMail)
	svc := contact.NewService(mail, "artist@example.com", logger.New("test"))

	mail.On("Configured").Return(true)
	var notified models.ContactMessage
	mail.On("SendContactNotification", "artist@example.com", mock.Anything).Run(func(args mock.Arguments) {
		notified = args.Get(1).(models.ContactMessage)
	}).Return(nil)
	mail.On("SendContactAutoReply", mock.Anything).Return(nil)

	err := svc.Submit(validRequest())

	assert.NoError(t, err)
	assert.NotEmpty(t, notified.ID)
	assert.Equal(t, "Jordan", notified.Name)
	assert.False(t, notified.ReceivedAt.IsZero())
	mail.AssertCalled(t, "SendContactAutoReply", mock.Anything)
}

func TestSubmit_AnySendFailureSurfaces(t *testing.T) {
	mail := new(MockMail)
	svc := contact.NewService(mail, "artist@example.com", logger.New("test"))

	mail.On("Configured").Return(true)
	mail.On("SendContactNotification", "artist@example.com", mock.Anything).Return(nil)
	mail.On("SendContactAutoReply", mock.Anything).Return(errors.New("smtp rejected recipient"))

	assert.Error(t, svc.Submit(validRequest()))
}
