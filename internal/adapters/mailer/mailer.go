// Package mailer sends rendered quotes to beneficiaries over SMTP.
package mailer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	gomail "gopkg.in/gomail.v2"

	"github.com/ofertare/mobila/internal/domain"
)

type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func New(host string, port int, user, pass, from string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from}
}

// Enabled reports whether SMTP is configured.
func (m *Mailer) Enabled() bool {
	return m != nil && m.host != "" && m.from != ""
}

// SendQuote emails the quote summary with the XLSX export attached.
func (m *Mailer) SendQuote(to string, q domain.Quote, xlsx []byte) error {
	if !m.Enabled() {
		return fmt.Errorf("mailer is not configured")
	}

	title := q.Title
	if title == "" {
		title = "Oferta de pret"
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", title)
	msg.SetBody("text/plain", fmt.Sprintf(
		"Buna ziua,\n\nAtasat regasiti oferta %q.\nSubtotal: %.2f RON\nManopera (%.0f%%): %.2f RON\nTotal: %.2f RON\n",
		title, q.Subtotal, q.LaborPercentage, q.LaborCost, q.Total,
	))
	msg.Attach("oferta.xlsx", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(xlsx))
		return err
	}))

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send quote email: %w", err)
	}
	log.Info().Str("to", to).Str("title", title).Msg("quote emailed")
	return nil
}
