package charges

import "time"

// ShouldApplyDelta decides whether an incoming delta may mutate the stored
// record. The upstream feed offers no ordering guarantee, so this is
// last-write-wins keyed on the delta's own timestamp: only a delta strictly
// earlier than the stored one is rejected. Missing timestamps on either side
// are treated as "newer" so data is never dropped for lack of provenance, and
// equal timestamps apply so a redelivered message may overwrite its own
// prior state.
func ShouldApplyDelta(incoming, stored *time.Time) bool {
	if incoming == nil || stored == nil {
		return true
	}
	return !incoming.Before(*stored)
}
