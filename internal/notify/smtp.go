package notify

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/deepinsight/backend/internal/model"
)

// SMTPConfig holds the mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Enabled reports whether enough is configured to send mail.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != "" && c.To != ""
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier mails the operator a summary of each new inquiry.
type SMTPNotifier struct {
	cfg  SMTPConfig
	send sendFunc
}

// NewSMTPNotifier creates an SMTPNotifier using net/smtp.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPNotifier{cfg: cfg, send: smtp.SendMail}
}

func (n *SMTPNotifier) InquiryReceived(ctx context.Context, inq *model.Inquiry) error {
	if !n.cfg.Enabled() {
		return errors.New("smtp not configured")
	}
	var a smtp.Auth
	if n.cfg.Username != "" {
		a = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}
	addr := net.JoinHostPort(n.cfg.Host, fmt.Sprint(n.cfg.Port))
	msg := buildMessage(n.cfg.From, n.cfg.To, inq)

	// net/smtp has no context support; run it aside and stop waiting on cancel.
	done := make(chan error, 1)
	go func() { done <- n.send(addr, a, n.cfg.From, []string{n.cfg.To}, msg) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send inquiry mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func buildMessage(from, to string, inq *model.Inquiry) []byte {
	labels := make([]string, 0, len(inq.ServiceType))
	for _, t := range inq.ServiceType {
		labels = append(labels, model.ServiceTypeLabel(t))
	}

	var body strings.Builder
	fmt.Fprintf(&body, "새로운 문의가 접수되었습니다.\r\n\r\n")
	fmt.Fprintf(&body, "이름: %s\r\n", inq.Name)
	fmt.Fprintf(&body, "이메일: %s\r\n", inq.Email)
	fmt.Fprintf(&body, "회사: %s\r\n", orDash(inq.Company))
	fmt.Fprintf(&body, "연락처: %s\r\n", orDash(inq.Phone))
	fmt.Fprintf(&body, "서비스: %s\r\n", strings.Join(labels, ", "))
	fmt.Fprintf(&body, "접수 시각: %s\r\n\r\n", inq.CreatedAt.Format(time.RFC3339))
	body.WriteString(inq.Message)
	body.WriteString("\r\n")

	subject := mime.QEncoding.Encode("utf-8", "[DeepInsight] 새 문의: "+inq.Name)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	msg.WriteString(body.String())
	return []byte(msg.String())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
