package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
	"github.com/wadjakorntonsri/committee-site/pkg/metrics"
	"github.com/wadjakorntonsri/committee-site/pkg/ports"
)

var emailTemplates = template.Must(template.New("email").Funcs(template.FuncMap{
	"lines": func(s string) template.HTML {
		return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
	},
}).Parse(`
{{define "owner"}}<h2>New message from the website</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Message:</strong></p>
<p>{{lines .Message}}</p>{{end}}
{{define "confirmation"}}<h2>Thank you for reaching out, {{.Name}}!</h2>
<p>We have received your message and will get back to you shortly.</p>
<p>Kind regards,<br>{{.Signature}}</p>{{end}}
`))

// ContactService relays a contact form to the owner and acknowledges the submitter.
type ContactService struct {
	notifier  ports.Notifier
	from      string
	owner     []string
	signature string
	log       *zap.Logger
	metrics   *metrics.Metrics
}

// ContactConfig holds the addresses used by the relay.
type ContactConfig struct {
	From      string
	Owner     []string
	Signature string
}

func NewContactService(notifier ports.Notifier, cfg ContactConfig, log *zap.Logger, m *metrics.Metrics) *ContactService {
	return &ContactService{
		notifier:  notifier,
		from:      cfg.From,
		owner:     cfg.Owner,
		signature: cfg.Signature,
		log:       log,
		metrics:   m,
	}
}

// Submit validates the request, sends the owner notification and then, best
// effort, the confirmation. Only a failed owner notification is an error.
func (s *ContactService) Submit(ctx context.Context, req domain.ContactRequest) error {
	if err := req.Validate(); err != nil {
		s.log.Info("Rejected contact submission", zap.Error(err))
		s.metrics.ObserveContact(metrics.ResultInvalid)
		return err
	}

	owner, err := s.render("owner", req)
	if err != nil {
		s.metrics.ObserveContact(metrics.ResultError)
		return err
	}
	err = s.notifier.Send(ctx, domain.Email{
		From:    s.from,
		To:      s.owner,
		Subject: "New message from " + req.Name,
		HTML:    owner,
	})
	if err != nil {
		s.log.Error("Failed to send owner notification", zap.Error(err))
		s.metrics.ObserveNotification("owner", metrics.ResultError)
		s.metrics.ObserveContact(metrics.ResultError)
		return fmt.Errorf("send notification: %w", err)
	}
	s.metrics.ObserveNotification("owner", metrics.ResultOK)

	s.confirm(ctx, req)
	s.metrics.ObserveContact(metrics.ResultOK)
	return nil
}

func (s *ContactService) confirm(ctx context.Context, req domain.ContactRequest) {
	body, err := s.render("confirmation", req)
	if err == nil {
		err = s.notifier.Send(ctx, domain.Email{
			From:    s.from,
			To:      []string{req.Email},
			Subject: "We have received your message!",
			HTML:    body,
		})
	}
	if err != nil {
		s.log.Warn("Failed to send confirmation", zap.Error(err))
		s.metrics.ObserveNotification("submitter", metrics.ResultError)
		return
	}
	s.metrics.ObserveNotification("submitter", metrics.ResultOK)
}

func (s *ContactService) render(name string, req domain.ContactRequest) (string, error) {
	data := struct {
		domain.ContactRequest
		Signature string
	}{req, s.signature}

	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

var _ ports.ContactService = (*ContactService)(nil)
