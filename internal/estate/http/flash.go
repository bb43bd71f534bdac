package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/estate/internal/estate/domain"
)

const (
	flashCookieName = "estate_flash"
	flashMaxAge     = 60 // seconds; only needs to outlive one redirect
	maxFlashNotices = 5
)

// addNotice queues n for the next rendered page. Notices not yet shown are
// kept.
func addNotice(w http.ResponseWriter, r *http.Request, n domain.Notice) {
	notices := append(readFlash(r), n)
	if len(notices) > maxFlashNotices {
		notices = notices[len(notices)-maxFlashNotices:]
	}

	raw, err := json.Marshal(notices)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeNotices returns the pending notices and clears them.
func takeNotices(w http.ResponseWriter, r *http.Request) []domain.Notice {
	if _, err := r.Cookie(flashCookieName); err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return readFlash(r)
}

// readFlash decodes the flash cookie. A malformed cookie reads as empty.
func readFlash(r *http.Request) []domain.Notice {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var notices []domain.Notice
	if err := json.Unmarshal(raw, &notices); err != nil {
		return nil
	}
	return notices
}

func success(msg string) domain.Notice { return domain.Notice{Category: domain.NoticeSuccess, Message: msg} }
func danger(msg string) domain.Notice  { return domain.Notice{Category: domain.NoticeDanger, Message: msg} }
func warning(msg string) domain.Notice { return domain.Notice{Category: domain.NoticeWarning, Message: msg} }
func info(msg string) domain.Notice    { return domain.Notice{Category: domain.NoticeInfo, Message: msg} }
