package utils

import (
	"fmt"
	"log"

	"scl/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one HTML mail through SendGrid. Failures are returned
// to the caller; the fire-and-forget triggers below just log them.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	cfg := config.AppConfig
	if cfg.SendGridKey == "" {
		log.Printf("Mail disabled, skipping %q to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail(cfg.SenderName, cfg.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(cfg.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected mail to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid status %d", resp.StatusCode)
	}
	return nil
}

// HTML wrapper shared by all outgoing mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #2B5A9E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1F2D3D; line-height: 1.6; }
			.content h2 { color: #2B5A9E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #2B5A9E; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #2B5A9E; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>CAREER LADDER</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Career Ladder. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendCertificateMail tells a user their course certificate is ready
func SendCertificateMail(email, name, courseTitle, certURL, certID string) {
	subject := "Your Certificate: " + courseTitle
	body := fmt.Sprintf(`
		<p>Congratulations %s!</p>
		<p>You have successfully completed the <strong>%s</strong> course.</p>
		<div class="info-box">
			Certificate ID: <strong>%s</strong>
		</div>
		<p>Your certificate is ready. Click the button below to download it:</p>
		<a href="%s" class="btn">View Your Certificate</a>
		<p style="margin-top: 20px;">Thank you for learning with <strong>Career Ladder</strong>!</p>
	`, name, courseTitle, certID, certURL)

	go func() {
		if err := SendEmail(name, email, subject, getEmailTemplate("Course Completed!", body)); err != nil {
			log.Printf("Certificate mail to %s failed: %v", email, err)
		}
	}()
}

// SendAdminBatchCompletionReminder alerts the admin that a batch finished
// its course and certificates are pending. Sent once per batch completion,
// never per user.
func SendAdminBatchCompletionReminder(batchName, courseTitle string, userCount int) {
	cfg := config.AppConfig
	if cfg.AdminEmail == "" {
		log.Printf("ADMIN_EMAIL not set, skipping completion reminder for batch %q", batchName)
		return
	}

	subject := "Certificates Pending: " + batchName
	body := fmt.Sprintf(`
		<p>Hey Admin,</p>
		<p><strong>%s</strong> has completed the course <strong>%s</strong>.</p>
		<p>It's time to generate certificates for <strong>%d learners</strong>.</p>
		<a href="%s" class="btn">Generate Certificates Now</a>
	`, batchName, courseTitle, userCount, cfg.AdminDashboardURL)

	go func() {
		if err := SendEmail("Admin", cfg.AdminEmail, subject, getEmailTemplate("Course Completion Alert", body)); err != nil {
			log.Printf("Admin reminder for batch %q failed: %v", batchName, err)
		}
	}()
}
