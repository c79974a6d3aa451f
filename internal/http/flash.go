package httpx

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/openstax/rope/internal/http/ui/viewmodel"
)

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

const flashSessionName = "rope_flash"

// FlashConfig configures the flash cookie.
type FlashConfig struct {
	// Key signs the cookie.
	Key    []byte
	Secure bool
	Logger *slog.Logger
}

// FlashStore keeps post/redirect/get messages in a signed cookie.
// A nil *FlashStore drops messages.
type FlashStore struct {
	store  *sessions.CookieStore
	logger *slog.Logger
}

// NewFlashStore builds a cookie-backed flash store.
func NewFlashStore(cfg FlashConfig) *FlashStore {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := sessions.NewCookieStore(cfg.Key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &FlashStore{store: store, logger: logger}
}

// Add queues msg under kind for the next page the browser loads.
func (f *FlashStore) Add(w http.ResponseWriter, r *http.Request, kind, msg string) {
	if f == nil {
		return
	}
	// A tampered or stale cookie decodes to a fresh session; that is fine here.
	session, _ := f.store.Get(r, flashSessionName) //nolint:errcheck // see above
	session.AddFlash(msg, kind)
	if err := session.Save(r, w); err != nil {
		f.logger.WarnContext(r.Context(), "saving flash failed", "error", err)
	}
}

// Pop returns and clears the queued messages, successes first.
func (f *FlashStore) Pop(w http.ResponseWriter, r *http.Request) []viewmodel.Flash {
	if f == nil {
		return nil
	}
	if _, err := r.Cookie(flashSessionName); err != nil {
		return nil
	}
	session, _ := f.store.Get(r, flashSessionName) //nolint:errcheck // unreadable cookies yield no flashes

	var out []viewmodel.Flash
	for _, kind := range []string{FlashSuccess, FlashError} {
		for _, v := range session.Flashes(kind) {
			if msg, ok := v.(string); ok {
				out = append(out, viewmodel.Flash{Kind: kind, Message: msg})
			}
		}
	}
	if len(out) > 0 {
		if err := session.Save(r, w); err != nil {
			f.logger.WarnContext(r.Context(), "clearing flash failed", "error", err)
		}
	}
	return out
}
