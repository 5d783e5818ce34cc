// Package sync drains the outbox: pending mirror operations recorded
// by local-first mutations are delivered to the backend in enqueue
// order. Delivery is best-effort; transport failures re-queue the
// entry with backoff and never fail the drain as a whole.
package sync

import (
	"log/slog"
	"time"

	"github.com/feelfree/ff/internal/api"
	"github.com/feelfree/ff/internal/store"
)

// Result summarizes one drain pass
type Result struct {
	Delivered int
	Deferred  int // re-queued after a transient failure
	Dropped   int // rejected by the backend, will not be retried
}

// Mirror is the subset of the API client the drainer needs
type Mirror interface {
	MirrorUpsert(entity, id string, payload []byte) error
	MirrorDelete(entity, id string) error
}

// Flush delivers every due outbox entry through m. Auth errors abort
// the pass (every remaining entry would fail the same way); transient
// errors defer the entry; anything else is a permanent rejection and
// the entry is dropped so one poisoned payload cannot wedge the queue.
func Flush(st *store.Store, m Mirror, now time.Time) (Result, error) {
	var res Result

	pending, err := st.PendingOutbox(now)
	if err != nil {
		return res, err
	}

	for _, e := range pending {
		var err error
		switch e.Action {
		case store.ActionDelete:
			err = m.MirrorDelete(e.Entity, e.EntityID)
		default:
			err = m.MirrorUpsert(e.Entity, e.EntityID, []byte(e.Payload))
		}

		switch {
		case err == nil:
			if err := st.MarkDelivered(e.ID); err != nil {
				return res, err
			}
			res.Delivered++
		case api.IsAuthError(err):
			return res, err
		case api.IsUnavailable(err):
			if err := st.MarkFailed(e.ID, e.Attempts, err); err != nil {
				return res, err
			}
			res.Deferred++
		default:
			slog.Warn("outbox entry rejected", "entity", e.Entity, "id", e.EntityID, "err", err)
			if err := st.MarkDelivered(e.ID); err != nil {
				return res, err
			}
			res.Dropped++
		}
	}
	return res, nil
}
