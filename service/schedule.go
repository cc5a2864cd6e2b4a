package service

import (
	"time"

	"safai/model"
)

// stale accounts keep their username/email reserved; a week past expiry is
// long enough for any delayed verification mail.
const staleAccountGrace = 7 * 24 * time.Hour

// CleanupStaleAccountsTask removes unverified accounts whose verification
// window closed over a week ago. Wired to the daily cron in main.
func CleanupStaleAccountsTask() {
	logger.Infof("[%s] Start scheduled task CleanupStaleAccountsTask", "scheduled task")
	startTime := time.Now()

	cutoff := time.Now().Add(-staleAccountGrace)
	removed, err := model.DeleteStaleUnverifiedUsers(cutoff)
	if err != nil {
		logger.Warnf("[%s] cleanup error, %s", "scheduled task", err)
		return
	}

	duration := time.Since(startTime)
	logger.Infof("[%s] Finished scheduled task CleanupStaleAccountsTask, removed %d accounts in %v", "scheduled task", removed, duration)
}
