package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizerOnce sync.Once
	sanitizer     *bluemonday.Policy
)

// sanitizeText strips all markup from caller-provided prose (descriptions,
// help text). Definitions come from configuration files, which may be edited
// by people who paste markup; only text survives into attributes.
func sanitizeText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	sanitizerOnce.Do(func() {
		sanitizer = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(sanitizer.Sanitize(raw))
}
