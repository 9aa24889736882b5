package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"wantlist/pkg/rabbitmq"
)

// Config holds SMTP connection and sender details.
type Config struct {
	Host          string
	Port          int
	Username      string
	Password      string
	Sender        string
	SubjectPrefix string
}

// Mailer sends wishlist emails over SMTP. Delivery is best-effort and
// unobserved: callers run it off the request path and only log failures.
type Mailer struct {
	cfg    Config
	dialer *gomail.Dialer
}

var bodyTemplate = template.Must(template.New("wishlist").Parse(`<html>
<body>
<p>Hi {{.Username}},</p>
<p>Here is your record wishlist:</p>
<ul>
{{range .Items}}<li>#{{.CatalogNo}} &mdash; {{.Artist}}: {{.Title}}</li>
{{else}}<li>Your wishlist is empty.</li>
{{end}}</ul>
</body>
</html>`))

// New creates a Mailer from SMTP configuration.
func New(cfg Config) *Mailer {
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// SendWishlist renders and delivers one wishlist email event.
func (m *Mailer) SendWishlist(event rabbitmq.EmailEvent) error {
	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, event); err != nil {
		return fmt.Errorf("failed to render wishlist email body: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.Sender)
	msg.SetHeader("To", event.Recipient)
	msg.SetHeader("Subject", fmt.Sprintf("%s Your record wishlist", m.cfg.SubjectPrefix))
	msg.SetBody("text/html", body.String())

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send wishlist email to %s: %w", event.Recipient, err)
	}
	return nil
}
