package ratelimit

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// DefaultSweepSpec runs the expired-entry sweep every ten minutes.
const DefaultSweepSpec = "@every 10m"

// ScheduleSweep registers a job on c that drops expired entries from store.
func ScheduleSweep(c *cron.Cron, store *MemoryStore, schedule string) (cron.EntryID, error) {
	return c.AddFunc(schedule, func() {
		if n := store.Sweep(time.Now()); n > 0 {
			log.Debug().Int("removed", n).Int("remaining", store.Len()).Msg("rate limit sweep")
		}
	})
}
