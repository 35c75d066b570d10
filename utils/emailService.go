package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email through SendGrid
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	apiKey := config.AppConfig.SendgridApiKey
	if apiKey == "" {
		log.Printf("SendGrid key not configured; skipping email to %s", toEmail)
		return nil
	}

	from := mail.NewEmail("Learning Platform", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(apiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid responded %d", resp.StatusCode)
	}
	return nil
}

// SendEnrollmentReceipt emails a payment receipt after a paid transition.
// Failures are logged by the caller and never block the webhook response.
func SendEnrollmentReceipt(toName, toEmail, courseTitle, reference string, amountKobo int64) error {
	subject := "Payment received - " + courseTitle
	body := getEmailTemplate("Payment Received", fmt.Sprintf(`
		<h2>Thank you, %s!</h2>
		<p>Your payment for <strong>%s</strong> has been confirmed.</p>
		<div class="info-box">
			<p>Amount: NGN %.2f<br/>Reference: %s</p>
		</div>
		<p>You now have full access to the course content from your dashboard.</p>`,
		toName, courseTitle, float64(amountKobo)/100, reference))
	return SendEmail(toName, toEmail, subject, body)
}

// getEmailTemplate wraps content in the platform's email layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
			.content h2 { color: #00004D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">%s</div>
			<div class="footer">This is an automated message; please do not reply.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}
