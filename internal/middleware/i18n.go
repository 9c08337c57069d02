// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/i18n"
)

// I18nMiddleware picks the response language from the lang query parameter
// or the Accept-Language header, falling back to defaultLang.
func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	if !i18n.IsSupported(defaultLang) {
		defaultLang = i18n.DefaultLanguage
	}

	return func(c *gin.Context) {
		lang := defaultLang
		if q := c.Query("lang"); q != "" && i18n.IsSupported(baseLanguage(q)) {
			lang = baseLanguage(q)
		} else if header := c.GetHeader("Accept-Language"); header != "" {
			// Handle cases like "fr-CA,fr;q=0.9,en;q=0.8"
			for _, part := range strings.Split(header, ",") {
				candidate := baseLanguage(strings.Split(part, ";")[0])
				if i18n.IsSupported(candidate) {
					lang = candidate
					break
				}
			}
		}

		// Set language in context
		c.Set("lang", lang)
		c.Next()
	}
}

// baseLanguage reduces a tag such as "fr-CA" or "en_GB" to its language.
func baseLanguage(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	return tag
}
