package database

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"academy/config"
)

// logSnapshot logs scheduler events with timestamp
func logSnapshot(message string) {
	log.Printf("[SNAPSHOT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// runSnapshot flushes the cache to the local backend. Saves already
// persist synchronously; the periodic flush bounds data loss from a
// write that was interrupted mid-file.
func runSnapshot() {
	if Database == nil {
		return
	}
	Database.Flush()
	users, courses, batches := Database.Counts()
	logSnapshot(fmt.Sprintf("Snapshot written (%d users, %d courses, %d batches)", users, courses, batches))
}

// StartSnapshotScheduler registers the periodic flush job and starts
// the scheduler.
func StartSnapshotScheduler() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc(config.AppConfig.SnapshotCron, runSnapshot); err != nil {
		logSnapshot("Failed to register snapshot job: " + err.Error())
		return c
	}
	c.Start()
	logSnapshot("Snapshot scheduler started (" + config.AppConfig.SnapshotCron + ")")
	return c
}
