package mailer

import (
	"fmt"
	"io"

	"github.com/skip2/go-qrcode"
	"gopkg.in/gomail.v2"

	"gallery-shop/internal/config"
	"gallery-shop/internal/logger"
	"gallery-shop/internal/models"
)

// Mailer sends transactional email over SMTP. When the transport is not
// configured it stays inert and callers are expected to check Configured()
// and skip silently.
type Mailer struct {
	dialer     *gomail.Dialer
	from       string
	baseURL    string
	artistName string
	log        *logger.Logger
}

func New(cfg config.SMTPConfig, site config.SiteConfig, log *logger.Logger) *Mailer {
	m := &Mailer{
		from:       cfg.User,
		baseURL:    site.BaseURL,
		artistName: site.ArtistName,
		log:        log,
	}

	if cfg.Host == "" || cfg.User == "" || cfg.Password == "" {
		log.Warn("MAIL", "SMTP transport not configured, outbound email disabled")
		return m
	}

	m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return m
}

func (m *Mailer) Configured() bool {
	return m.dialer != nil
}

// SendPurchaseConfirmation emails the buyer after a completed checkout.
// When the sale carries a slug, a QR code pointing at the artwork page is
// attached so the buyer can pull it up from the printed receipt.
func (m *Mailer) SendPurchaseConfirmation(sale models.Sale) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, fmt.Sprintf("%s Art", m.artistName))
	msg.SetHeader("To", sale.CustomerEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Thank you for your purchase: %s", sale.ArtworkTitle))
	msg.SetBody("text/html", purchaseConfirmationBody(m.artistName, m.baseURL, sale))

	if sale.ArtworkSlug != "" {
		png, err := qrcode.Encode(artworkURL(m.baseURL, sale.ArtworkSlug), qrcode.Medium, 256)
		if err != nil {
			m.log.Warn("MAIL", fmt.Sprintf("Failed to generate artwork QR code: %v", err))
		} else {
			msg.Attach("artwork-qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(png)
				return err
			}))
		}
	}

	return m.dialer.DialAndSend(msg)
}

// SendSaleNotification emails the artist that an artwork sold.
func (m *Mailer) SendSaleNotification(to string, sale models.Sale) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, fmt.Sprintf("%s Art Website", m.artistName))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Artwork sold: %s", sale.ArtworkTitle))
	msg.SetBody("text/html", saleNotificationBody(m.baseURL, sale))

	return m.dialer.DialAndSend(msg)
}

// SendContactNotification forwards a contact-form submission to the artist.
func (m *Mailer) SendContactNotification(to string, contact models.ContactMessage) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, fmt.Sprintf("%s Art Website", m.artistName))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("New Contact Form Submission: %s", subjectOrDefault(contact)))
	msg.SetBody("text/html", contactNotificationBody(contact))

	return m.dialer.DialAndSend(msg)
}

// SendContactAutoReply sends the automated acknowledgement back to whoever
// submitted the contact form.
func (m *Mailer) SendContactAutoReply(contact models.ContactMessage) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, fmt.Sprintf("%s Art", m.artistName))
	msg.SetHeader("To", contact.Email)
	msg.SetHeader("Subject", "Thank you for contacting me!")
	msg.SetBody("text/html", contactAutoReplyBody(m.artistName, contact))

	return m.dialer.DialAndSend(msg)
}
