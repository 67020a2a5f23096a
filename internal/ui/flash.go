package ui

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// FlashCookieName carries notifications across a post/redirect/get cycle.
const FlashCookieName = "settings_flash"

// SetFlash stores messages for the next page load. Nothing is set when
// messages is empty.
func SetFlash(w http.ResponseWriter, messages []string, secure bool) {
	if len(messages) == 0 {
		return
	}
	raw, err := json.Marshal(messages)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadFlash returns the messages stored by SetFlash. A missing or garbled
// cookie yields nil.
func ReadFlash(r *http.Request) []string {
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var messages []string
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil
	}
	return messages
}

// ClearFlash removes the flash cookie.
func ClearFlash(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
