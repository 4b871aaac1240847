package app

import "time"

// TickMsg drives the panel's display refresh. The trackers produce readings
// every sample; the panel only repaints at this slower cadence, which is
// where the presentation throttle lives.
type TickMsg time.Time
