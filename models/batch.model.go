package models

// Batch modes
const (
	BatchModeOnline  = "Online"
	BatchModeOffline = "Offline"
	BatchModeHybrid  = "Hybrid"
)

// Batch statuses
const (
	BatchStatusRegistrationOpen = "Registration Open"
	BatchStatusStartingSoon     = "Starting Soon"
	BatchStatusOngoing          = "Ongoing"
	BatchStatusCompleted        = "Completed"
)

// Batch represents a scheduled run of a course. CourseID is a weak
// reference; course deletion clears it rather than deleting the batch.
type Batch struct {
	ID        string `json:"id"`
	CourseID  string `json:"courseId"`
	Title     string `json:"title"`
	StartDate string `json:"startDate"` // display string
	Timings   string `json:"timings"`   // display string
	Mode      string `json:"mode"`
	Status    string `json:"status"`
}

// ValidBatchMode reports whether mode is one of the recognized values.
func ValidBatchMode(mode string) bool {
	return mode == BatchModeOnline || mode == BatchModeOffline || mode == BatchModeHybrid
}

// ValidBatchStatus reports whether status is one of the recognized values.
func ValidBatchStatus(status string) bool {
	switch status {
	case BatchStatusRegistrationOpen, BatchStatusStartingSoon, BatchStatusOngoing, BatchStatusCompleted:
		return true
	}
	return false
}
