package notifier

import (
	"bytes"
	"context"
	htmltemplate "html/template"
	"os"
	"strconv"
	texttemplate "text/template"

	"github.com/Luismorlan/dramachaser/cache"
	"github.com/Luismorlan/dramachaser/model"
)

const emailSubject = "[DramaChaser] Drama updates"

const textDigestTemplate = `New shows are out for the dramas you chase:
{{range .}}
{{.DramaName}} ({{.DramaURL}})
{{- range .ShowURLs}}
  - {{.}}
{{- end}}
{{end}}`

const htmlDigestTemplate = `<html>
<body>
<p>New shows are out for the dramas you chase:</p>
{{range .}}
<p><a href="{{.DramaURL}}"><b>{{.DramaName}}</b></a></p>
<ul>
{{- range .ShowURLs}}
<li><a href="{{.}}">{{.}}</a></li>
{{- end}}
</ul>
{{end}}
</body>
</html>`

var (
	textDigest = texttemplate.Must(texttemplate.New("digest.txt").Parse(textDigestTemplate))
	htmlDigest = htmltemplate.Must(htmltemplate.New("digest.html").Parse(htmlDigestTemplate))
)

// Sender abstracts the SMTP dial-and-send so tests can intercept outgoing
// mail. gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*Message) error
}

// EmailNotifier delivers digests over SMTP. The user id doubles as the
// recipient address.
type EmailNotifier struct {
	sender   Sender
	from     string
	vod      model.VOD
	metadata *cache.MetadataCache
}

// NewEmailNotifier builds a notifier from SMTP_HOST / SMTP_PORT /
// SMTP_USERNAME / SMTP_PASSWD / MAIL_SENDER. Missing host or sender is a
// ConfigurationError, fatal to the sweep invocation.
func NewEmailNotifier(metadata *cache.MetadataCache, vod model.VOD) (*EmailNotifier, error) {
	host := os.Getenv("SMTP_HOST")
	from := os.Getenv("MAIL_SENDER")
	if host == "" || from == "" {
		return nil, &model.ConfigurationError{Reason: "SMTP_HOST and MAIL_SENDER must be set"}
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		return nil, &model.ConfigurationError{Reason: "SMTP_PORT must be a number"}
	}

	return &EmailNotifier{
		sender:   newSMTPSender(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWD")),
		from:     from,
		vod:      vod,
		metadata: metadata,
	}, nil
}

func (n *EmailNotifier) Notify(ctx context.Context, userID string, report model.Report) error {
	entries := buildDigest(ctx, n.metadata, n.vod, report)

	textBody := bytes.Buffer{}
	if err := textDigest.Execute(&textBody, entries); err != nil {
		return &model.NotifyError{UserID: userID, Err: err}
	}
	htmlBody := bytes.Buffer{}
	if err := htmlDigest.Execute(&htmlBody, entries); err != nil {
		return &model.NotifyError{UserID: userID, Err: err}
	}

	msg := &Message{
		From:     n.from,
		To:       userID,
		Subject:  emailSubject,
		TextBody: textBody.String(),
		HTMLBody: htmlBody.String(),
	}
	if err := n.sender.DialAndSend(msg); err != nil {
		return &model.NotifyError{UserID: userID, Err: err}
	}
	return nil
}
