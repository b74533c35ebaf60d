package database

import "academy/models"

// MemoryBackend keeps everything in process memory. It backs the
// local-only mode and tests; persisting is just holding the snapshot.
type MemoryBackend struct {
	users    []models.User
	courses  []models.Course
	batches  []models.Batch
	settings *models.PlatformSettings
	session  *models.User
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) LoadUsers() ([]models.User, error) {
	return append([]models.User(nil), m.users...), nil
}

func (m *MemoryBackend) SaveUsers(users []models.User) error {
	m.users = append([]models.User(nil), users...)
	return nil
}

func (m *MemoryBackend) LoadCourses() ([]models.Course, error) {
	return append([]models.Course(nil), m.courses...), nil
}

func (m *MemoryBackend) SaveCourses(courses []models.Course) error {
	m.courses = append([]models.Course(nil), courses...)
	return nil
}

func (m *MemoryBackend) LoadBatches() ([]models.Batch, error) {
	return append([]models.Batch(nil), m.batches...), nil
}

func (m *MemoryBackend) SaveBatches(batches []models.Batch) error {
	m.batches = append([]models.Batch(nil), batches...)
	return nil
}

func (m *MemoryBackend) LoadSettings() (*models.PlatformSettings, error) {
	return m.settings, nil
}

func (m *MemoryBackend) SaveSettings(settings *models.PlatformSettings) error {
	m.settings = settings
	return nil
}

func (m *MemoryBackend) LoadSession() (*models.User, error) {
	return m.session, nil
}

func (m *MemoryBackend) SaveSession(user *models.User) error {
	m.session = user
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
