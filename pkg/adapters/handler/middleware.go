package handler

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wadjakorntonsri/committee-site/pkg/config"
	"github.com/wadjakorntonsri/committee-site/pkg/metrics"
	"github.com/wadjakorntonsri/committee-site/pkg/ports"
)

const (
	deviceCookie  = "device_id"
	sessionCookie = "session_id"
)

type visitorKey struct{}

// VisitorFrom returns the visitor attached by the Visitor middleware.
func VisitorFrom(ctx context.Context) (ports.Visitor, bool) {
	v, ok := ctx.Value(visitorKey{}).(ports.Visitor)
	return v, ok
}

type Middleware struct {
	secret     []byte
	sessionTTL time.Duration
	deviceTTL  time.Duration
	secure     bool
	origins    []string
	log        *zap.Logger
	metrics    *metrics.Metrics
}

func NewMiddleware(cfg *config.Config, log *zap.Logger, m *metrics.Metrics) *Middleware {
	return &Middleware{
		secret:     []byte(cfg.VisitorSecret),
		sessionTTL: cfg.SessionTTL,
		deviceTTL:  cfg.DeviceTTL,
		secure:     strings.HasPrefix(cfg.BaseURL, "https://"),
		origins:    cfg.AllowedOrigins,
		log:        log,
		metrics:    m,
	}
}

// Visitor identifies the caller by two signed cookies: a long lived device id
// and a session id that slides forward on every request. Missing or invalid
// cookies are replaced with fresh ids.
func (m *Middleware) Visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := ports.Visitor{
			DeviceID:  m.identity(w, r, deviceCookie, m.deviceTTL, false),
			SessionID: m.identity(w, r, sessionCookie, m.sessionTTL, true),
		}
		ctx := context.WithValue(r.Context(), visitorKey{}, v)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// identity reads the id carried by cookie name, issuing a new one when absent.
// The cookie is rewritten when it is new or when slide is set.
func (m *Middleware) identity(w http.ResponseWriter, r *http.Request, name string, ttl time.Duration, slide bool) string {
	id := ""
	if c, err := r.Cookie(name); err == nil {
		id = m.parse(c.Value)
	}
	if id != "" && !slide {
		return id
	}
	if id == "" {
		id = uuid.NewString()
	}

	expires := time.Now().Add(ttl)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Subject:   id,
		ExpiresAt: jwt.NewNumericDate(expires),
	}).SignedString(m.secret)
	if err != nil {
		m.log.Error("Failed to sign visitor cookie", zap.Error(err))
		return id
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (m *Middleware) parse(tokenString string) string {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ""
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return ""
	}
	return claims.Subject
}

// CORS allows the configured origins and answers preflight requests.
func (m *Middleware) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := m.allowOrigin(r.Header.Get("Origin")); origin != "" {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			if origin != "*" {
				h.Add("Vary", "Origin")
				h.Set("Access-Control-Allow-Credentials", "true")
			}
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) allowOrigin(origin string) string {
	if slices.Contains(m.origins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(m.origins, origin) {
		return origin
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logging records every request in the log and the request metrics.
func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		// Set by ServeMux once the request was routed.
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.metrics.ObserveRequest(r.Method, route, rec.status, elapsed)
		m.log.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.String("duration", strconv.FormatInt(elapsed.Milliseconds(), 10)+"ms"),
		)
	})
}
