// Package mail delivers outbound messages over SMTP.
package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/capsule/retail-inventory/internal/core/domain"
)

const defaultPort = 587

// wellKnown maps provider names to their submission endpoints.
var wellKnown = map[string]string{
	"gmail":   "smtp.gmail.com",
	"outlook": "smtp-mail.outlook.com",
	"hotmail": "smtp-mail.outlook.com",
	"yahoo":   "smtp.mail.yahoo.com",
}

// Config describes the SMTP account. Host overrides the host derived from
// Service.
type Config struct {
	Service  string
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// Endpoint returns host:port for the configured account.
func (c Config) Endpoint() (string, error) {
	host := c.Host
	if host == "" {
		host = wellKnown[strings.ToLower(c.Service)]
	}
	if host == "" {
		return "", fmt.Errorf("unknown email service %q and no host configured", c.Service)
	}
	port := c.Port
	if port <= 0 {
		port = defaultPort
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer implements ports.Mailer.
type SMTPMailer struct {
	addr    string
	auth    smtp.Auth
	from    string
	timeout time.Duration
	send    sendFunc
	log     zerolog.Logger
}

func NewSMTPMailer(cfg Config, log zerolog.Logger) (*SMTPMailer, error) {
	addr, err := cfg.Endpoint()
	if err != nil {
		return nil, err
	}
	host, _, _ := net.SplitHostPort(addr)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SMTPMailer{
		addr:    addr,
		auth:    smtp.PlainAuth("", cfg.Username, cfg.Password, host),
		from:    cfg.Username,
		timeout: timeout,
		send:    smtp.SendMail,
		log:     log,
	}, nil
}

// Send delivers m. An empty m.From falls back to the account username.
// smtp.SendMail has no context support, so ctx only bounds the wait.
func (s *SMTPMailer) Send(ctx context.Context, m domain.Mail) error {
	from := m.From
	if from == "" {
		from = s.from
	}
	msg := buildMessage(from, m.To, m.Subject, m.Body)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- s.send(s.addr, s.auth, s.from, []string{m.To}, msg) }()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		s.log.Info().Str("to", m.To).Msg("mail sent")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send: %w", ctx.Err())
	}
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + sanitizeHeader(from) + "\r\n")
	b.WriteString("To: " + sanitizeHeader(to) + "\r\n")
	b.WriteString("Subject: " + sanitizeHeader(subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

// sanitizeHeader strips CR and LF so user input cannot inject headers.
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
