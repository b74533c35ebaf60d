package database

import "academy/models"

// LocalBackend persists whole entity collections as snapshots. The
// in-memory cache is authoritative for the session; a backend only has
// to reload state at startup and absorb full rewrites after mutations.
type LocalBackend interface {
	LoadUsers() ([]models.User, error)
	SaveUsers(users []models.User) error

	LoadCourses() ([]models.Course, error)
	SaveCourses(courses []models.Course) error

	LoadBatches() ([]models.Batch, error)
	SaveBatches(batches []models.Batch) error

	// LoadSettings returns nil when no settings record exists yet.
	LoadSettings() (*models.PlatformSettings, error)
	SaveSettings(settings *models.PlatformSettings) error

	// Session restoration key: the serialized current user.
	// SaveSession(nil) clears it; LoadSession returns nil when unset.
	LoadSession() (*models.User, error)
	SaveSession(user *models.User) error

	Close() error
}
