package notifier

import (
	gomail "gopkg.in/gomail.v2"
)

// Message is the transport-agnostic outgoing mail, kept separate from
// gomail's type so the Sender seam stays mockable.
type Message struct {
	From     string
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

type smtpSender struct {
	dialer *gomail.Dialer
}

func newSMTPSender(host string, port int, username string, passwd string) *smtpSender {
	return &smtpSender{dialer: gomail.NewDialer(host, port, username, passwd)}
}

func (s *smtpSender) DialAndSend(msgs ...*Message) error {
	out := make([]*gomail.Message, 0, len(msgs))
	for _, m := range msgs {
		gm := gomail.NewMessage()
		gm.SetHeader("From", m.From)
		gm.SetHeader("To", m.To)
		gm.SetHeader("Subject", m.Subject)
		gm.SetBody("text/plain", m.TextBody)
		gm.AddAlternative("text/html", m.HTMLBody)
		out = append(out, gm)
	}
	return s.dialer.DialAndSend(out...)
}
