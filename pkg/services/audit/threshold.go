package audit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/de-tools/storage-audit/pkg/models/domain"
)

// ResolveThreshold returns the threshold in GB for a subscription. The tag value
// wins when it parses as an integer; otherwise the default is used. A present
// but unparsable tag yields a warning.
func ResolveThreshold(sub domain.Subscription, tagName string, defaultGB int) (int, string) {
	raw, ok := sub.Tags.Lookup(tagName)
	if !ok {
		return defaultGB, ""
	}

	threshold, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return defaultGB, fmt.Sprintf("subscription %s: tag %s=%q is not an integer, using default threshold of %d GB",
			sub.Name, tagName, raw, defaultGB)
	}
	return threshold, ""
}
