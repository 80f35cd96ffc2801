package storage

import (
	"strings"

	"github.com/julianstephens/daymood/internal/constants"
)

// Key namespaces a collection blob for one user: "<collection>-<userId>".
func Key(collection constants.Collection, userID string) string {
	return string(collection) + "-" + userID
}

// MarkerKey names the once-per-day evening summary marker: "eveningSummary-<userId>-<date>".
func MarkerKey(userID, date string) string {
	return strings.Join([]string{constants.EveningSummaryKeyPrefix, userID, date}, "-")
}
