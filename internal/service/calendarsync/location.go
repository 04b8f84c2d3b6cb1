package calendarsync

import (
	"fmt"
	"strconv"
	"strings"
)

const locationPrefix = "Facility #"

// FacilityLocation строка места события для помещения
func FacilityLocation(facilityID int64) string {
	return fmt.Sprintf("%s%d", locationPrefix, facilityID)
}

// ParseFacilityLocation извлекает id помещения из места события вида "Facility #<id>"
func ParseFacilityLocation(location string) (int64, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(location), locationPrefix)
	if !ok || rest == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
