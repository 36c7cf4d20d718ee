package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type localeContextKey struct{}

// LocaleKey is the context key under which the detected locale is stored.
var LocaleKey = localeContextKey{}

// supportedLocales lists the languages status messages exist for; the first
// entry is the match fallback.
var supportedLocales = []language.Tag{
	language.English,
	language.Indonesian,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// I18N resolves the request locale from the X-Locale header, then
// Accept-Language, then the configured default, and stores it in the
// request context.
func I18N(defaultLocale string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := detectLocale(r, defaultLocale)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback string) string {
	prefs := []string{r.Header.Get("X-Locale"), r.Header.Get("Accept-Language")}
	if fallback != "" {
		prefs = append(prefs, fallback)
	}
	var nonEmpty []string
	for _, p := range prefs {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	if len(nonEmpty) == 0 {
		return "en"
	}
	tag, _ := language.MatchStrings(localeMatcher, nonEmpty...)
	base, _ := tag.Base()
	return base.String()
}

// LocaleFromContext returns the locale stored by I18N, defaulting to "en".
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok && v != "" {
		return v
	}
	return "en"
}
