package utils

import (
	"fmt"

	"github.com/keighl/postmark"
)

// EmailService sends transactional mail through Postmark. With no API token
// configured it becomes a no-op, so local runs and tests need no mail setup.
type EmailService struct {
	client *postmark.Client
	sender string
}

func NewEmailService(apiToken, sender string) *EmailService {
	if apiToken == "" {
		return &EmailService{}
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: sender,
	}
}

// SendEmail sends a basic email to the specified recipient.
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es.client == nil {
		return nil
	}
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendSellerVerifiedEmail tells a seller their account verification changed.
func (es *EmailService) SendSellerVerifiedEmail(toEmail string, verified bool) error {
	subject := "Your seller account has been verified"
	htmlContent := "<strong>Congratulations!</strong> Your seller account is now verified. " +
		"Your listings will show a verified badge to buyers."
	if !verified {
		subject = "Your seller verification was removed"
		htmlContent = "Your seller account is no longer verified. " +
			"Contact support if you believe this is a mistake."
	}
	return es.SendEmail(toEmail, subject, htmlContent)
}
