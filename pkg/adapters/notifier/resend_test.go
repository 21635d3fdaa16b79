package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
)

var testEmail = domain.Email{
	From:    "Committee <noreply@example.org>",
	To:      []string{"owner@example.org"},
	Subject: "New message from Ann",
	HTML:    "<p>hi</p>",
}

func TestResend_Send(t *testing.T) {
	var got domain.Email
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	err := NewResend("re_test", srv.URL, srv.Client()).Send(context.Background(), testEmail)
	require.NoError(t, err)
	assert.Equal(t, testEmail, got)
}

func TestResend_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	err := NewResend("re_test", srv.URL, nil).Send(context.Background(), testEmail)
	assert.EqualError(t, err, `resend: status 422: {"message":"invalid from"}`)

	err = NewResend("", srv.URL, nil).Send(context.Background(), testEmail)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestLog_Send(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	require.NoError(t, NewLog(zap.New(core)).Send(context.Background(), testEmail))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "New message from Ann", entry.ContextMap()["subject"])
}
