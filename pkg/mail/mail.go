// Package mail is the verification-mail collaborator. Delivery failure is
// never fatal to the caller: registration succeeds and verification is
// simply deferred.
package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"

	"github.com/sirupsen/logrus"
)

type Mailer interface {
	SendVerification(ctx context.Context, to, name, verifyURL string) error
}

type smtpMailer struct {
	addr     string
	from     string
	username string
	password string
}

// NewSMTPMailer sends through a plain SMTP relay. addr is host:port.
func NewSMTPMailer(addr, from, username, password string) Mailer {
	return &smtpMailer{
		addr:     addr,
		from:     from,
		username: username,
		password: password,
	}
}

func (m *smtpMailer) SendVerification(ctx context.Context, to, name, verifyURL string) error {
	host, _, err := net.SplitHostPort(m.addr)
	if err != nil {
		return fmt.Errorf("invalid smtp address %q: %w", m.addr, err)
	}

	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Kavun - E-posta Dogrulama\r\n\r\n"+
			"Merhaba %s,\r\n\r\nKavun hesabinizi dogrulamak icin baglantiya tiklayin:\r\n%s\r\n",
		m.from, to, name, verifyURL,
	)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, host)
	}

	return smtp.SendMail(m.addr, auth, m.from, []string{to}, []byte(body))
}

type noopMailer struct{}

// NewNoopMailer is used when no SMTP relay is configured; it only logs.
func NewNoopMailer() Mailer {
	return noopMailer{}
}

func (noopMailer) SendVerification(_ context.Context, to, _, _ string) error {
	logrus.WithField("to", to).Info("mail: no relay configured, skipping verification mail")
	return nil
}
