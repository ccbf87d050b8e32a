package mailer

import (
	"fmt"
	"html"

	"github.com/shopspring/decimal"

	"gallery-shop/internal/models"
)

func artworkURL(baseURL, slug string) string {
	return baseURL + "/art/" + slug
}

func formatAmount(minor int64) string {
	return "$" + decimal.NewFromInt(minor).Div(decimal.NewFromInt(100)).StringFixed(2)
}

func subjectOrDefault(contact models.ContactMessage) string {
	if contact.Subject == "" {
		return "General Inquiry"
	}
	return contact.Subject
}

func purchaseConfirmationBody(artistName, baseURL string, sale models.Sale) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #333;">Thank you for your purchase!</h1>

  <p>Your payment for <strong>%s</strong> (%s) has been received.</p>

  <div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Artwork:</strong> <a href="%s">%s</a></p>
    <p><strong>Order reference:</strong> %s</p>
  </div>

  <p>I will be in touch shortly with shipping details.</p>

  <p>Best regards,<br>%s</p>

  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 14px;">
    <p>This is an automated confirmation. Please do not reply to this email.</p>
  </div>
</div>`,
		html.EscapeString(sale.ArtworkTitle),
		formatAmount(sale.AmountTotal),
		artworkURL(baseURL, sale.ArtworkSlug),
		html.EscapeString(sale.ArtworkTitle),
		html.EscapeString(sale.SessionID),
		html.EscapeString(artistName),
	)
}

func saleNotificationBody(baseURL string, sale models.Sale) string {
	buyer := sale.CustomerEmail
	if buyer == "" {
		buyer = "unknown"
	}

	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #333; border-bottom: 2px solid #eee; padding-bottom: 10px;">Artwork Sold</h1>

  <div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Artwork:</strong> <a href="%s">%s</a></p>
    <p><strong>Amount:</strong> %s</p>
    <p><strong>Buyer:</strong> %s</p>
    <p><strong>Session:</strong> %s</p>
  </div>

  <p>Remember to arrange shipping and mark any related listings.</p>
</div>`,
		artworkURL(baseURL, sale.ArtworkSlug),
		html.EscapeString(sale.ArtworkTitle),
		formatAmount(sale.AmountTotal),
		html.EscapeString(buyer),
		html.EscapeString(sale.SessionID),
	)
}

func contactNotificationBody(contact models.ContactMessage) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #333; border-bottom: 2px solid #eee; padding-bottom: 10px;">New Contact Form Submission</h1>

  <div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="margin-top: 0;">Contact Details:</h3>
    <p><strong>Name:</strong> %s</p>
    <p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
    <p><strong>Subject:</strong> %s</p>
  </div>

  <div style="background: #fff; padding: 20px; border-left: 4px solid #007cba; margin: 20px 0;">
    <h3 style="margin-top: 0; color: #007cba;">Message:</h3>
    <p style="white-space: pre-wrap; line-height: 1.6;">%s</p>
  </div>

  <div style="background: #fff3cd; padding: 15px; border-radius: 4px; border-left: 4px solid #ffc107; margin-top: 20px;">
    <p style="margin: 0;"><strong>Reply to:</strong> <a href="mailto:%s">%s</a></p>
  </div>
</div>`,
		html.EscapeString(contact.Name),
		html.EscapeString(contact.Email),
		html.EscapeString(contact.Email),
		html.EscapeString(subjectOrDefault(contact)),
		html.EscapeString(contact.Message),
		html.EscapeString(contact.Email),
		html.EscapeString(contact.Email),
	)
}

func contactAutoReplyBody(artistName string, contact models.ContactMessage) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #333;">Thank you for reaching out!</h1>

  <p>Dear %s,</p>

  <p>Thank you for contacting %s Art. I have received your message and appreciate your interest in my work.</p>

  <div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3>Your Message:</h3>
    <p><strong>Subject:</strong> %s</p>
    <p style="white-space: pre-wrap; line-height: 1.6;">%s</p>
  </div>

  <p>I typically respond to all inquiries within 24-48 hours during business days.</p>

  <p>Best regards,<br>%s</p>

  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 14px;">
    <p>This is an automated confirmation. Please do not reply to this email.</p>
  </div>
</div>`,
		html.EscapeString(contact.Name),
		html.EscapeString(artistName),
		html.EscapeString(subjectOrDefault(contact)),
		html.EscapeString(contact.Message),
		html.EscapeString(artistName),
	)
}
