package store

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	EngagementPrefix = "AE"
	FindingPrefix    = "F"
	ActionPrefix     = "CA"
)

// NextID returns prefix + (max numeric suffix of ids + 1), zero-padded to
// three digits. Past 999 the suffix simply grows wider.
func NextID(prefix string, ids []string) string {
	last := 0
	for _, id := range ids {
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err != nil {
			continue
		}
		if n > last {
			last = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, last+1)
}
