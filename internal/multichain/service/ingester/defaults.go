package ingester

import "time"

const (
	defaultBatchSize   = 64
	defaultWorkerCount = 8

	seenTTL             = 10 * time.Minute
	seenCleanupInterval = time.Minute

	idleSleepDuration = 2 * time.Second
	minBackoff        = time.Second
	maxBackoff        = time.Minute
)
