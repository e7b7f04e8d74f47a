package mail

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
)

// Mailer is the notification capability used by the auth workflows. All
// call sites treat a send failure as non-fatal.
type Mailer interface {
	Send(to, subject, textBody, htmlBody string) error
}

// SMTPMailer sends mail over implicit TLS.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
}

// NewSMTPMailer builds a mailer for the given transport credentials.
func NewSMTPMailer(host, port, user, pass string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: user,
		password: pass,
	}
}

// Verify performs a startup self-check against the SMTP server. A failure
// here must not prevent the service from starting; callers log the error
// and continue.
func (m *SMTPMailer) Verify() error {
	conn, err := tls.Dial("tcp", m.host+":"+m.port, &tls.Config{ServerName: m.host})
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	return nil
}

// Send delivers a multipart message with plain-text and HTML bodies.
func (m *SMTPMailer) Send(to, subject, textBody, htmlBody string) error {
	const boundary = "orphancare-alt-boundary"

	msg := []byte(
		fmt.Sprintf("From: %s\r\n", m.username) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary) +
			"\r\n" +
			fmt.Sprintf("--%s\r\n", boundary) +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			textBody + "\r\n" +
			fmt.Sprintf("--%s\r\n", boundary) +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			htmlBody + "\r\n" +
			fmt.Sprintf("--%s--\r\n", boundary),
	)

	conn, err := tls.Dial("tcp", m.host+":"+m.port, &tls.Config{ServerName: m.host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return err
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return err
	}

	if err := client.Mail(m.username); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
