package takeoff

import (
	"strings"

	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// FormatWarnings renders a warning list for human display, one warning
// per line in result order.
func FormatWarnings(warnings []model.Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
