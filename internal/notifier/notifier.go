// Package notifier is the delivery boundary: it accepts a built settlement
// and an address and reports success or failure. Nothing here retries;
// callers decide what a failure means.
package notifier

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"

	"go.uber.org/zap"

	"go-paytrack/internal/settlement"
)

// ErrNotConfigured is returned when no SMTP host is set. Delivery did not
// happen; the caller decides whether that is fatal.
var ErrNotConfigured = errors.New("smtp is not configured")

//go:embed templates/*.html
var templateFS embed.FS

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock
type Notifier interface {
	SendSettlement(to string, data settlement.SettlementResponse) error
}

type emailNotifier struct {
	cfg       SMTPConfig
	templates *template.Template
	logger    *zap.Logger
}

func NewEmailNotifier(cfg SMTPConfig, logger ...*zap.Logger) (Notifier, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse notifier templates: %w", err)
	}

	l := zap.L().Named("notifier.email")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notifier.email")
	}
	return &emailNotifier{cfg: cfg, templates: tmpl, logger: l}, nil
}

func (n *emailNotifier) SendSettlement(to string, data settlement.SettlementResponse) error {
	var body bytes.Buffer
	if err := n.templates.ExecuteTemplate(&body, "settlement.html", data); err != nil {
		return fmt.Errorf("execute settlement template: %w", err)
	}

	subject := fmt.Sprintf("Payroll settlement summary %d", data.Year)
	return n.sendHTML(to, subject, body.String())
}

func (n *emailNotifier) sendHTML(to, subject, htmlBody string) error {
	if n.cfg.Host == "" {
		n.logger.Warn("smtp not configured, message not sent",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return ErrNotConfigured
	}

	headers := fmt.Sprintf("From: %s <%s>\r\n", n.cfg.FromName, n.cfg.From)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)
	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)

	if err := smtp.SendMail(addr, auth, n.cfg.From, []string{to}, message); err != nil {
		n.logger.Error("send settlement email failed",
			zap.String("to", to),
			zap.Error(err),
		)
		return err
	}

	n.logger.Info("settlement email sent", zap.String("to", to))
	return nil
}
