package services

import (
	"strconv"
	"strings"
	"time"
)

// GenerateSKU builds a SKU from the product name and the millisecond clock,
// e.g. "Midnight Oud" -> "PERF-MIDNIG-3456".
func GenerateSKU(name string, now time.Time) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if b.Len() == 6 {
			break
		}
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	millis := strconv.FormatInt(now.UnixMilli(), 10)
	suffix := millis
	if len(millis) >= 12 {
		suffix = millis[8:12]
	}
	return "PERF-" + b.String() + "-" + suffix
}
