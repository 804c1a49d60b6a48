package notify

import (
	"fmt"
	"net"
	"net/smtp"
	"time"

	"mintwrap/config"
	"mintwrap/gl"
	"mintwrap/server"

	"github.com/jordan-wright/email"
)

// Mailer mails the operator when a sequence ends, wrapped or failed.
type Mailer struct {
	conf config.EmailConfig
	send func(e *email.Email) error
}

func NewMailer(conf config.EmailConfig) *Mailer {
	m := &Mailer{conf: conf}
	m.send = func(e *email.Email) error {
		auth := smtp.PlainAuth("", conf.Usr, conf.Pwd, conf.Host)
		return e.Send(net.JoinHostPort(conf.Host, conf.Port), auth)
	}
	return m
}

func (m *Mailer) Report(p server.Phase, msg string) {
	if p != server.Wrapped && p != server.Failed {
		return
	}
	if len(m.conf.To) == 0 {
		return
	}
	e := email.NewEmail()
	e.From = m.conf.From
	e.To = m.conf.To
	e.Subject = fmt.Sprintf("[mintwrap] %s", p)
	e.Text = []byte(fmt.Sprintf("%s\n\n%s\n", msg, time.Now().Format(time.RFC3339)))
	go func() {
		if err := m.send(e); err != nil {
			gl.Error("Send email error. %s : %v", e.Subject, err)
		}
	}()
}
