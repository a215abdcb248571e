// Package i18n resolves the storefront's multilingual records. The shop
// serves Flemish, French, English and Turkish customers; records may have
// any subset of those filled in.
package i18n

import (
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront-cart-service/internal/models"
)

const DefaultLanguage = "en"

var SupportedLanguages = []string{"nl", "fr", "en", "tr"}

// fallbackOrder is fixed; it decides which value wins when neither the
// active language nor English has one.
var fallbackOrder = []string{"nl", "fr", "tr"}

// Resolve returns the value for lang, falling back to English and then to
// the first non-empty value among nl, fr, tr. It never fails; a fully empty
// record resolves to "".
func Resolve(text models.MultilingualText, lang string) string {
	if v := text.Get(lang); v != "" {
		return v
	}

	if v := text.Get(DefaultLanguage); v != "" {
		return v
	}

	for _, l := range fallbackOrder {
		if v := text.Get(l); v != "" {
			return v
		}
	}

	return ""
}

func IsSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}

	return false
}

// FromRequest picks the active language for a request: the "lang" query
// parameter wins, then the first Accept-Language entry, then English.
func FromRequest(r *http.Request) string {
	if lang := strings.ToLower(r.URL.Query().Get("lang")); IsSupported(lang) {
		return lang
	}

	accept := r.Header.Get("Accept-Language")
	for _, part := range strings.Split(accept, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if len(tag) >= 2 {
			if lang := strings.ToLower(tag[:2]); IsSupported(lang) {
				return lang
			}
		}
	}

	return DefaultLanguage
}
