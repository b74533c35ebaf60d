package batchValidator

import (
	"strings"

	"academy/models"
)

// Batch validates an admin batch payload and returns a field error
// map, empty when the payload is acceptable.
func Batch(batch models.Batch) map[string]string {
	errors := make(map[string]string)

	// Validate Title
	if strings.TrimSpace(batch.Title) == "" {
		errors["title"] = "Title is required!"
	}

	// Validate Mode
	if !models.ValidBatchMode(batch.Mode) {
		errors["mode"] = "Mode must be Online, Offline or Hybrid!"
	}

	// Validate Status
	if !models.ValidBatchStatus(batch.Status) {
		errors["status"] = "Unknown batch status!"
	}

	return errors
}
