package utils

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"civilregistry/internal/config"

	"github.com/sirupsen/logrus"
)

var (
	ErrMailNotConfigured = errors.New("smtp is not configured")
	ErrInvalidRecipient  = errors.New("recipient must be a single address")
)

var headerBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

type MailConfig struct {
	SMTPHost string
	SMTPPort string
	Username string
	Password string
	Sender   string
}

func MailConfigFrom(cfg config.Config) MailConfig {
	return MailConfig{
		SMTPHost: cfg.SMTPHost,
		SMTPPort: cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		Sender:   cfg.SMTPSender,
	}
}

func (mc MailConfig) configured() bool {
	return mc.SMTPHost != "" && mc.SMTPPort != "" && mc.Sender != ""
}

// SMTPNotifier delivers plain-text mail over STARTTLS.
type SMTPNotifier struct {
	config MailConfig
	log    logrus.FieldLogger
}

func NewSMTPNotifier(config MailConfig, log logrus.FieldLogger) *SMTPNotifier {
	return &SMTPNotifier{config: config, log: log}
}

// BuildMessage renders the RFC 5322 message sent for a notification. Line
// breaks inside header values are flattened to spaces.
func BuildMessage(sender, recipient, subject, body string) string {
	return fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		headerBreaks.Replace(sender), headerBreaks.Replace(recipient), headerBreaks.Replace(subject), body)
}

func (n *SMTPNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	if !n.config.configured() {
		return ErrMailNotConfigured
	}
	if recipient == "" {
		return errors.New("recipient is required")
	}
	if strings.ContainsAny(recipient, "\r\n") {
		return ErrInvalidRecipient
	}

	smtpAddr := net.JoinHostPort(n.config.SMTPHost, n.config.SMTPPort)
	logEntry := n.log.WithFields(logrus.Fields{"smtp_addr": smtpAddr, "recipient": recipient})

	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", smtpAddr)
	if err != nil {
		logEntry.WithError(err).Warn("failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, n.config.SMTPHost)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to start SMTP session: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName: n.config.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		logEntry.WithError(err).Warn("failed to start TLS")
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if n.config.Username != "" {
		auth := smtp.PlainAuth("", n.config.Username, n.config.Password, n.config.SMTPHost)
		if err = client.Auth(auth); err != nil {
			logEntry.WithError(err).Warn("failed to authenticate")
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(n.config.Sender); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(recipient); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to create mail writer: %w", err)
	}
	if _, err = writer.Write([]byte(BuildMessage(n.config.Sender, recipient, subject, body))); err != nil {
		return fmt.Errorf("failed to write email body: %w", err)
	}
	if err = writer.Close(); err != nil {
		return fmt.Errorf("failed to close mail writer: %w", err)
	}

	if err = client.Quit(); err != nil {
		logEntry.WithError(err).Debug("failed to close SMTP connection properly")
	}

	logEntry.Info("email sent")
	return nil
}
