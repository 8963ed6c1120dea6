package ledger

import (
	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/utils"
)

// IsEditable reports whether target may be written when the current date is
// today. Only today and yesterday are writable; older dates are read-only
// and future dates cannot be logged yet. Unparseable dates are never
// editable.
func IsEditable(target, today string) bool {
	diff, err := utils.DaysBetween(target, today)
	if err != nil {
		return false
	}
	d := float64(diff)
	return d >= constants.EditWindowLower && d < constants.EditWindowUpper
}
