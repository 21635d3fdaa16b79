package services

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
	"github.com/wadjakorntonsri/committee-site/pkg/metrics"
)

func newTestContactService(n *recordingNotifier) (*ContactService, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	svc := NewContactService(n, ContactConfig{
		From:      "Committee <noreply@example.org>",
		Owner:     []string{"owner@example.org"},
		Signature: "The Committee",
	}, zap.NewNop(), m)
	return svc, m
}

func TestContactService_Submit(t *testing.T) {
	n := &recordingNotifier{}
	svc, m := newTestContactService(n)

	err := svc.Submit(context.Background(), domain.ContactRequest{
		Name:    "Ann <b>",
		Email:   "ann@example.org",
		Message: "line one\nline <two>",
	})
	require.NoError(t, err)
	require.Len(t, n.sent, 2)

	owner := n.sent[0]
	assert.Equal(t, []string{"owner@example.org"}, owner.To)
	assert.Equal(t, "New message from Ann <b>", owner.Subject)
	assert.Contains(t, owner.HTML, "Ann &lt;b&gt;")
	assert.Contains(t, owner.HTML, "line one<br>line &lt;two&gt;")
	assert.NotContains(t, owner.HTML, "<two>")

	confirm := n.sent[1]
	assert.Equal(t, []string{"ann@example.org"}, confirm.To)
	assert.Contains(t, confirm.HTML, "The Committee")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ContactSubmissions.WithLabelValues(metrics.ResultOK)))
}

func TestContactService_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  domain.ContactRequest
	}{
		{"empty name", domain.ContactRequest{Email: "a@b.c", Message: "hi"}},
		{"empty email", domain.ContactRequest{Name: "A", Message: "hi"}},
		{"blank message", domain.ContactRequest{Name: "A", Email: "a@b.c", Message: "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &recordingNotifier{}
			svc, _ := newTestContactService(n)

			err := svc.Submit(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, n.sent)
		})
	}
}

func TestContactService_OwnerFailureIsAnError(t *testing.T) {
	n := &recordingNotifier{fail: func(int) bool { return true }}
	svc, _ := newTestContactService(n)

	err := svc.Submit(context.Background(), domain.ContactRequest{Name: "A", Email: "a@b.c", Message: "hi"})
	assert.ErrorIs(t, err, errRemote)
	assert.Empty(t, n.sent)
}

func TestContactService_ConfirmationIsBestEffort(t *testing.T) {
	n := &recordingNotifier{fail: func(i int) bool { return i == 1 }}
	svc, m := newTestContactService(n)

	err := svc.Submit(context.Background(), domain.ContactRequest{Name: "A", Email: "a@b.c", Message: "hi"})
	require.NoError(t, err)
	assert.Len(t, n.sent, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("submitter", metrics.ResultError)))
}
