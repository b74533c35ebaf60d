package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"academy/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" {
		// No sender configured; notifications are disabled.
		return nil
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Shamanth Academy <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
}

// SendUnlockNotification tells the admin that a user claims to have
// paid for a course and is waiting for an unlock approval.
func SendUnlockNotification(adminEmail, userID, courseID string) error {
	subject := "Unlock request awaiting approval"
	body := fmt.Sprintf(`
	<h2>New unlock request</h2>
	<p>User <b>%s</b> has requested access to course <b>%s</b> and
	claims to have completed the payment.</p>
	<p>Open the admin console to verify the payment screenshot and
	approve or reject the request.</p>`, userID, courseID)

	return SendEmail([]string{adminEmail}, subject, body)
}
