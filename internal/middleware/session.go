// Package middleware содержит HTTP middleware сервиса расчёта комиссионных.
package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const sessionIDKey contextKey = "sessionID"

const (
	sessionCookieName       = "session_id"
	defaultSessionCookieTTL = 12 * time.Hour
)

// SessionMiddleware привязывает запрос к анонимной сессии по подписанному cookie.
// Если cookie нет или подпись неверна, создаётся новая сессия.
type SessionMiddleware struct {
	secretKey []byte
	ttl       time.Duration
}

// NewSessionMiddleware создаёт новый экземпляр SessionMiddleware с указанным секретным ключом
// и временем жизни cookie.
func NewSessionMiddleware(secret string, ttl time.Duration) *SessionMiddleware {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("default-secret-key")
		}
	}

	if ttl <= 0 {
		ttl = defaultSessionCookieTTL
	}

	return &SessionMiddleware{
		secretKey: key,
		ttl:       ttl,
	}
}

// Middleware добавляет идентификатор сессии в контекст запроса.
func (m *SessionMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			if id, ok := m.parseCookie(cookie.Value); ok {
				sessionID = id
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		// Cookie обновляется на каждом запросе, чтобы продлить сессию.
		m.SetSessionCookie(w, sessionID)

		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sessionID)))
	})
}

// SetSessionCookie устанавливает cookie сессии для указанного идентификатора.
func (m *SessionMiddleware) SetSessionCookie(w http.ResponseWriter, sessionID string) {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    m.sign(sessionID),
		Path:     "/",
		Expires:  time.Now().Add(m.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	http.SetCookie(w, cookie)
}

func (m *SessionMiddleware) signature(sessionID string) string {
	mac := hmac.New(sha256.New, m.secretKey)
	mac.Write([]byte(sessionID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (m *SessionMiddleware) sign(sessionID string) string {
	return sessionID + "." + m.signature(sessionID)
}

func (m *SessionMiddleware) parseCookie(cookieValue string) (string, bool) {
	parts := strings.Split(cookieValue, ".")
	if len(parts) != 2 || parts[0] == "" {
		return "", false
	}

	if !hmac.Equal([]byte(parts[1]), []byte(m.signature(parts[0]))) {
		return "", false
	}

	return parts[0], true
}

// GetSessionIDFromContext извлекает идентификатор сессии из контекста запроса.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}

// WithSessionID возвращает контекст с указанным идентификатором сессии.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}
