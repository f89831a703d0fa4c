package refresh

import "github.com/monify-labs/hostreport/pkg/models"

// Latest returns a DeliverFunc that never blocks the producer. If ch is
// full, the unread report is discarded in favor of the new one, so the
// consumer always sees the most recent refresh. ch must be buffered.
func Latest(ch chan models.Report) DeliverFunc {
	return func(report models.Report) {
		for {
			select {
			case ch <- report:
				return
			default:
			}

			// Drop the stale report; the consumer may have taken it already.
			select {
			case <-ch:
			default:
			}
		}
	}
}
