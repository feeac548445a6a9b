// Package datasets registers the four importable dataset definitions:
// clients, orders, production and stocks. Import it for side effects
// wherever the registry must be populated.
package datasets

import (
	"time"

	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/core"
)

// dateOr parses a row field as a date, falling back when the cell is
// blank or unreadable.
func dateOr(rc *core.RowContext, field string, fallback time.Time) time.Time {
	if t, ok := core.ParseDate(rc.Field(field)); ok {
		return t
	}
	return fallback
}
