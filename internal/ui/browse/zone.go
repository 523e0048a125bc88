package browse

import (
	"fmt"
	"strconv"
	"strings"
)

// Zone ID formats for the kind browser:
// - Kind rows: kind:{index}
// - Panes: pane:list, pane:detail
const (
	kindZonePrefix = "kind:"

	zoneListPane   = "pane:list"
	zoneDetailPane = "pane:detail"
)

// kindZoneID builds the zone ID for a kind row by list index.
func kindZoneID(index int) string {
	return fmt.Sprintf("%s%d", kindZonePrefix, index)
}

// parseKindZoneID extracts the list index from a kind row zone ID.
// Returns false if the ID is not a kind row.
//
//nolint:unused // Used in zone_test.go for round-trip verification.
func parseKindZoneID(zoneID string) (int, bool) {
	raw, ok := strings.CutPrefix(zoneID, kindZonePrefix)
	if !ok {
		return 0, false
	}
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}
