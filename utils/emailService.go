package utils

import (
	"certchain/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Generic Send Email
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridApiKey == "" {
		log.Printf("SENDGRID_API_KEY not set, skipping email to %s (%s)", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("CertChain", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 300 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	return nil
}

// HTML wrapper shared by all notification mails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A1A40; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A40; line-height: 1.6; }
			.content h2 { color: #1A1A40; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #E84545; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #E84545; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>CERTCHAIN</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 CertChain. All rights reserved.<br>
				Certificates are anchored on chain and verifiable forever.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendInstitutionApprovalEmail notifies an institution contact that
// onboarding was approved.
func SendInstitutionApprovalEmail(email, institutionName string) {
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Your institution has been <strong>approved</strong> on CertChain. You can now issue
		blockchain-anchored certificates to your students.</p>
		<div class="info-box">Log in with your institution account to get started.</div>
	`, institutionName)

	if err := SendEmail(email, institutionName, "Your institution is approved on CertChain", getEmailTemplate("Institution Approved", body)); err != nil {
		log.Printf("Failed to send approval email to %s: %v", email, err)
	}
}

// SendInstitutionRejectionEmail notifies an institution contact that
// onboarding was rejected, with the reviewer's reason.
func SendInstitutionRejectionEmail(email, institutionName, reason string) {
	if reason == "" {
		reason = "The submitted details could not be verified."
	}
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Unfortunately your institution onboarding request was <strong>rejected</strong>.</p>
		<div class="info-box">Reason: %s</div>
		<p>You may register again with corrected details.</p>
	`, institutionName, reason)

	if err := SendEmail(email, institutionName, "Your CertChain onboarding was rejected", getEmailTemplate("Onboarding Rejected", body)); err != nil {
		log.Printf("Failed to send rejection email to %s: %v", email, err)
	}
}

// SendInstitutionCredentialsEmail delivers the provisioned issuer
// account credentials after approval.
func SendInstitutionCredentialsEmail(email, institutionName, password string) {
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>An issuer account was created for your institution.</p>
		<div class="info-box">Login: %s<br>Temporary password: %s</div>
		<p>Please change the password after your first login.</p>
	`, institutionName, email, password)

	if err := SendEmail(email, institutionName, "Your CertChain issuer account", getEmailTemplate("Issuer Account Created", body)); err != nil {
		log.Printf("Failed to send credentials email to %s: %v", email, err)
	}
}

// SendUserApprovalEmail notifies a user their account is active.
func SendUserApprovalEmail(email, name string) {
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Your CertChain account has been <strong>approved</strong>. You can now log in and
		view certificates issued to you.</p>
	`, name)

	if err := SendEmail(email, name, "Your CertChain account is approved", getEmailTemplate("Account Approved", body)); err != nil {
		log.Printf("Failed to send approval email to %s: %v", email, err)
	}
}

// SendUserRejectionEmail notifies a user their registration was rejected.
func SendUserRejectionEmail(email, name, reason string) {
	if reason == "" {
		reason = "Your details could not be matched to an onboarded institution."
	}
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Your CertChain registration was <strong>rejected</strong>.</p>
		<div class="info-box">Reason: %s</div>
	`, name, reason)

	if err := SendEmail(email, name, "Your CertChain registration was rejected", getEmailTemplate("Registration Rejected", body)); err != nil {
		log.Printf("Failed to send rejection email to %s: %v", email, err)
	}
}

// SendWelcomeEmail confirms a new registration is pending review.
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Thanks for registering on CertChain. Your account is <strong>pending review</strong>;
		we will email you once an administrator approves it.</p>
	`, name)

	if err := SendEmail(email, name, "Welcome to CertChain", getEmailTemplate("Welcome", body)); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", email, err)
	}
}
