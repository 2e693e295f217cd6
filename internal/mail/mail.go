package mail

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"qa_service/internal/config"

	"gopkg.in/gomail.v2"
)

type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.SMTP) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	const op = "mail.Send"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	from := msg.From
	if from == "" {
		from = s.from
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

var resetPasswordTmpl = template.Must(template.New("reset").Parse(
	`<h3>Reset Your Password</h3>
<p>This <a href="{{.}}" target="_blank">link</a> will expire in 1 hour</p>
`))

// ResetPasswordEmail renders the body of the password-reset email for link.
func ResetPasswordEmail(link string) (string, error) {
	var b strings.Builder
	if err := resetPasswordTmpl.Execute(&b, link); err != nil {
		return "", err
	}
	return b.String(), nil
}
