package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wadjakorntonsri/committee-site/pkg/adapters/guard"
	"github.com/wadjakorntonsri/committee-site/pkg/adapters/repository/jsonstore"
	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
	"github.com/wadjakorntonsri/committee-site/pkg/core/services"
	"github.com/wadjakorntonsri/committee-site/pkg/metrics"
)

type memoryRepo struct {
	mu   sync.Mutex
	rows map[string]*domain.Stats
}

func (m *memoryRepo) Fetch(_ context.Context, id string) (*domain.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.rows[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (m *memoryRepo) add(id string, kind domain.StatKind, delta int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		s = &domain.Stats{RecordID: id}
		m.rows[id] = s
	}
	s.Add(kind, delta)
}

func (m *memoryRepo) Increment(_ context.Context, id string, kind domain.StatKind) error {
	m.add(id, kind, 1)
	return nil
}

func (m *memoryRepo) Decrement(_ context.Context, id string, kind domain.StatKind) error {
	if kind != domain.StatLikes {
		return domain.ErrUnsupportedStat
	}
	m.add(id, kind, -1)
	return nil
}

func (m *memoryRepo) Top(_ context.Context, kind domain.StatKind, limit int) ([]domain.Stats, error) {
	var out []domain.Stats
	for _, s := range m.rows {
		out = append(out, *s)
	}
	return out, nil
}

func (m *memoryRepo) Dump(ctx context.Context) ([]domain.Stats, error) { return m.Top(ctx, "", 0) }

func (m *memoryRepo) Upsert(_ context.Context, s *domain.Stats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.rows[s.RecordID] = &cp
	return nil
}

type stubContact struct{ err error }

func (s stubContact) Submit(_ context.Context, req domain.ContactRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.err
}

type testServer struct {
	*httptest.Server
	repo    *memoryRepo
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T, contactErr error) *testServer {
	t.Helper()
	store, err := jsonstore.Open("")
	require.NoError(t, err)

	cfg := testConfig()
	cfg.BaseURL = "http://committee.example" // the jar only returns secure cookies over https
	log := zap.NewNop()
	m := metrics.New(prometheus.NewRegistry())
	repo := &memoryRepo{rows: map[string]*domain.Stats{}}
	content := services.NewContentService(store, cfg.PageSize, time.UTC)

	router := NewRouter(cfg, Deps{
		Content: content,
		Stats:   services.NewStatsService(repo, guard.NewMemoryStore(cfg.SessionTTL, 0), content.Exists, log, m),
		Repo:    repo,
		Contact: stubContact{err: contactErr},
		Log:     log,
		Metrics: m,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, repo: repo, metrics: m}
}

// client keeps the visitor cookies between requests.
func (s *testServer) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Transport: s.Client().Transport, Jar: jar}
}

func getJSON(t *testing.T, c *http.Client, url string, out any) int {
	t.Helper()
	resp, err := c.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, c *http.Client, url, body string, out any) int {
	t.Helper()
	resp, err := c.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestRouter_Healthz(t *testing.T) {
	srv := newTestServer(t, nil)

	var body map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, srv.Client(), srv.URL+"/healthz", &body))
	assert.Equal(t, "ok", body["message"])
}

func TestRouter_Events(t *testing.T) {
	srv := newTestServer(t, nil)

	var page struct {
		Data     []domain.ContentRecord `json:"data"`
		Total    int                    `json:"total"`
		Visible  int                    `json:"visible"`
		HasMore  bool                   `json:"has_more"`
		PageSize int                    `json:"page_size"`
		Selected *domain.ContentRecord  `json:"selected"`
		Tabs     []domain.TabOption     `json:"tabs"`
	}
	status := getJSON(t, srv.Client(), srv.URL+"/api/v1/events?tab=all&id=3", &page)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 8, page.Total)
	assert.Len(t, page.Data, 6)
	assert.True(t, page.HasMore)
	assert.Equal(t, 6, page.PageSize)
	require.NotNil(t, page.Selected)
	assert.Equal(t, "3", page.Selected.ID)
	require.Len(t, page.Tabs, 4)
	assert.Equal(t, domain.TabOption{ID: "meeting", Label: "Meeting"}, page.Tabs[2])
	for i := 1; i < len(page.Data); i++ {
		assert.False(t, page.Data[i].Date.After(page.Data[i-1].Date), "newest first")
	}

	status = getJSON(t, srv.Client(), srv.URL+"/api/v1/events?visible=12", &page)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, page.Data, 8)
	assert.False(t, page.HasMore)

	var cards struct {
		Data []struct {
			Icon          string `json:"icon"`
			CategoryLabel string `json:"categoryLabel"`
		} `json:"data"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.Client(), srv.URL+"/api/v1/events?tab=meeting", &cards))
	require.NotEmpty(t, cards.Data)
	for _, c := range cards.Data {
		assert.Equal(t, "Meeting", c.CategoryLabel)
		assert.NotEmpty(t, c.Icon)
	}
}

func TestRouter_DocumentsAndParticipants(t *testing.T) {
	srv := newTestServer(t, nil)

	var docs struct {
		Data     []domain.Document `json:"data"`
		Total    int               `json:"total"`
		Featured []domain.Document `json:"featured"`
		Groups   []struct {
			Month string `json:"month"`
		} `json:"groups"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.Client(), srv.URL+"/api/v1/documents?year=2024&format=xlsx,docx", &docs))
	assert.Equal(t, 2, docs.Total)
	assert.NotEmpty(t, docs.Featured)
	require.NotEmpty(t, docs.Groups)
	assert.Equal(t, "2024-09", docs.Groups[0].Month)

	var view struct {
		Leadership    []domain.Leader  `json:"leadership"`
		Companies     []domain.Company `json:"companies"`
		ShowCompanies bool             `json:"show_companies"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.Client(), srv.URL+"/api/v1/participants?filter=leadership", &view))
	assert.NotEmpty(t, view.Leadership)
	assert.Empty(t, view.Companies)
	assert.False(t, view.ShowCompanies)
}

func TestRouter_RecordDetail(t *testing.T) {
	srv := newTestServer(t, nil)

	var detail recordResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.Client(), srv.URL+"/api/v1/records/5", &detail))
	assert.Equal(t, "http://committee.example/events?id=5", detail.URL)
	require.Len(t, detail.Share, 4)
	assert.Equal(t, domain.ShareCopy, detail.Share[3].Platform)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.Client(), srv.URL+"/api/v1/records/999", nil))
}

func TestRouter_VisitorCounter(t *testing.T) {
	srv := newTestServer(t, nil)
	alice := srv.client(t)
	base := srv.URL + "/api/v1/records/1"

	var st domain.CounterState
	require.Equal(t, http.StatusOK, postJSON(t, alice, base+"/view", "", &st))
	require.Equal(t, http.StatusOK, postJSON(t, alice, base+"/view", "", &st))
	assert.Equal(t, int64(1), st.Views, "one view per session")

	require.Equal(t, http.StatusOK, postJSON(t, alice, base+"/like", "", &st))
	assert.True(t, st.Liked)
	require.Equal(t, http.StatusOK, postJSON(t, alice, base+"/share", "", &st))
	assert.Equal(t, domain.CounterState{Views: 1, Likes: 1, Shares: 1, Liked: true}, st)

	bob := srv.client(t)
	require.NotSame(t, alice, bob)
	require.Equal(t, http.StatusOK, getJSON(t, bob, base+"/stats", &st))
	assert.Equal(t, domain.CounterState{Views: 1, Likes: 1, Shares: 1}, st)

	require.Equal(t, http.StatusOK, postJSON(t, alice, base+"/like", "", &st))
	assert.Equal(t, domain.CounterState{Views: 1, Shares: 1}, st)

	assert.Equal(t, http.StatusNotFound, postJSON(t, alice, srv.URL+"/api/v1/records/999/view", "", nil))
	assert.Equal(t, 2.0, testutil.ToFloat64(srv.metrics.StatOps.WithLabelValues("like", metrics.ResultOK)))
}

func TestRouter_RawStats(t *testing.T) {
	srv := newTestServer(t, nil)
	c := srv.Client()
	base := srv.URL + "/api/v1/stats/2"

	assert.Equal(t, http.StatusNotFound, getJSON(t, c, base, nil))
	assert.Equal(t, http.StatusNoContent, postJSON(t, c, base+"/increment", `{"kind":"shares"}`, nil))

	var s domain.Stats
	require.Equal(t, http.StatusOK, getJSON(t, c, base, &s))
	assert.Equal(t, int64(1), s.Shares)

	tests := []struct {
		name   string
		url    string
		body   string
		status int
	}{
		{"unknown kind", base + "/increment", `{"kind":"hearts"}`, http.StatusBadRequest},
		{"decrement views", base + "/decrement", `{"kind":"views"}`, http.StatusBadRequest},
		{"bad body", base + "/increment", `{`, http.StatusBadRequest},
		{"unknown record", srv.URL + "/api/v1/stats/999/increment", `{"kind":"views"}`, http.StatusNotFound},
		{"decrement likes", base + "/decrement", `{"kind":"likes"}`, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, postJSON(t, c, tt.url, tt.body, nil))
		})
	}

	var top []domain.Stats
	require.Equal(t, http.StatusOK, getJSON(t, c, srv.URL+"/api/v1/stats/top?kind=shares", &top))
	assert.Len(t, top, 1)
	assert.Equal(t, http.StatusBadRequest, getJSON(t, c, srv.URL+"/api/v1/stats/top?kind=hearts", nil))
}

func TestRouter_Contact(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		body       string
		wantStatus int
		wantBody   string
	}{
		{"ok", nil, `{"name":"Ann","email":"ann@example.org","message":"hi"}`, http.StatusOK, `{"success":true}`},
		{"missing name", nil, `{"email":"ann@example.org","message":"hi"}`, http.StatusBadRequest, `{"error":"All fields are required"}`},
		{"bad json", nil, `name=Ann`, http.StatusBadRequest, `{"error":"invalid request body"}`},
		{"owner failure", errors.New("send notification: resend: status 403: domain not verified"), `{"name":"Ann","email":"ann@example.org","message":"hi"}`, http.StatusInternalServerError, `{"error":"send notification: resend: status 403: domain not verified"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.serviceErr)

			resp, err := srv.Client().Post(srv.URL+"/api/v1/contact", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			var got json.RawMessage
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, string(got))
			assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRouter_ContactPreflight(t *testing.T) {
	srv := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/contact", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "content-type")
}

func TestRouter_RequestMetrics(t *testing.T) {
	srv := newTestServer(t, nil)
	getJSON(t, srv.Client(), srv.URL+"/healthz", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.HTTPRequests.WithLabelValues("GET", "GET /healthz", "200")))

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
