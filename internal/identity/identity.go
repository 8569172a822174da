// Package identity derives a stable per-browser identifier and the audit
// metadata recorded alongside an attendance confirmation.
package identity

import (
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"invitacion/internal/auth"

	"github.com/google/uuid"
)

// UnknownAddress is recorded when the client address cannot be determined.
const UnknownAddress = "unknown"

type Identity string

type ClientMeta struct {
	IP        string
	UserAgent string
}

type Provider struct {
	cookieName string
	secret     string
	maxAge     time.Duration
	secure     bool
}

func NewProvider(cookieName, secret string, maxAge time.Duration, secure bool) *Provider {
	return &Provider{
		cookieName: cookieName,
		secret:     secret,
		maxAge:     maxAge,
		secure:     secure,
	}
}

// GetOrCreate returns the identity persisted in the request's cookie. When
// there is none, or it does not verify, a new identity is generated and the
// cookie is set on w.
func (p *Provider) GetOrCreate(w http.ResponseWriter, r *http.Request) Identity {
	if c, err := r.Cookie(p.cookieName); err == nil {
		deviceID, err := auth.VerifyDeviceToken(c.Value, p.secret)
		if err == nil {
			return Identity(deviceID)
		}
		log.Printf("WARN: discarding unverifiable identity cookie: %v", err)
	}

	id := Identity(uuid.NewString())

	token, err := auth.GenerateDeviceToken(string(id), p.secret)
	if err != nil {
		log.Printf("ERROR: failed to sign identity cookie: %v", err)
		return id
	}

	http.SetCookie(w, &http.Cookie{
		Name:     p.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(p.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   p.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// Metadata is best effort and never fails.
func Metadata(r *http.Request) ClientMeta {
	return ClientMeta{
		IP:        clientIP(r.RemoteAddr),
		UserAgent: r.UserAgent(),
	}
}

func clientIP(remoteAddr string) string {
	remoteAddr = strings.TrimSpace(remoteAddr)
	if remoteAddr == "" {
		return UnknownAddress
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return UnknownAddress
	}
	return ip.String()
}
