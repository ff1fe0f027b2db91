package service

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Moraarn/sistercheck/config"

	"github.com/sirupsen/logrus"
)

type Mail struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// MailResult reports delivery without raising: a failed send becomes
// {success:false} so callers never abort on mail errors.
type MailResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Mailer interface {
	Send(mail Mail) MailResult
}

type smtpMailer struct {
	cfg config.EmailConfig
}

func NewMailer(cfg config.EmailConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(mail Mail) MailResult {
	from := mail.From
	if from == "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.Name, m.cfg.User)
	}

	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(mail.To, ", "),
		"Subject: " + mail.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		mail.HTML,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.User, mail.To, []byte(msg)); err != nil {
		logrus.Errorf("Error sending email: %v", err)
		return MailResult{Success: false, Message: "Failed to send email"}
	}
	return MailResult{Success: true, Message: "Email sent successfully"}
}
