// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package consumer

import "strconv"

// parseRetries reads the remaining-retry budget from a header value,
// falling back to def when the header is absent or unparseable.
func parseRetries(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
