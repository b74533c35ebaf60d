package database

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"academy/cloud"
	"academy/config"
	"academy/models"
)

// Sentinel errors surfaced to callers. Everything else degrades to the
// local fallback with a logged warning.
var (
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminReserved      = errors.New("the admin account cannot be deleted")
)

// Store is the persistence adapter: an in-memory cache of all entity
// collections, a local backend absorbing snapshots, and an optional
// remote client tried first on every operation. All cache access runs
// under the mutex so operations never interleave their
// read-modify-write, mirroring the run-to-completion guarantee the
// original single-threaded runtime provided for free.
type Store struct {
	mu     sync.Mutex
	local  LocalBackend
	remote *cloud.Client

	adminEmail string
	adminPin   string

	users    []models.User
	courses  []models.Course
	batches  []models.Batch
	settings *models.PlatformSettings
}

// Database is the global store instance, initialized by Connect.
var Database *Store

// Connect builds the store from the loaded configuration and installs
// it globally. The storage mode selects the local backend once at
// startup instead of branching at every call site.
func Connect() error {
	cfg := config.AppConfig

	var backend LocalBackend
	var err error
	switch cfg.StorageMode {
	case "memory":
		backend = NewMemoryBackend()
	case "sqlite":
		backend, err = NewSQLiteBackend(cfg.DBName)
	case "csv":
		backend, err = NewCSVBackend(cfg.DataDir)
	default:
		return fmt.Errorf("unknown STORAGE_MODE %q", cfg.StorageMode)
	}
	if err != nil {
		return fmt.Errorf("init %s backend: %w", cfg.StorageMode, err)
	}

	remote := cloud.NewClient(cfg.RemoteAPIURL, time.Duration(cfg.RemoteTimeout)*time.Second)

	store, err := NewStore(backend, remote, cfg.AdminEmail, cfg.AdminPin)
	if err != nil {
		return err
	}
	Database = store

	log.Printf("Storage initialized (mode=%s, remote=%v)", cfg.StorageMode, remote.Enabled())
	return nil
}

// NewStore loads all collections from the backend and seeds the
// administrator account when the user store is empty.
func NewStore(backend LocalBackend, remote *cloud.Client, adminEmail, adminPin string) (*Store, error) {
	s := &Store{
		local:      backend,
		remote:     remote,
		adminEmail: adminEmail,
		adminPin:   adminPin,
	}

	var err error
	if s.users, err = backend.LoadUsers(); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if s.courses, err = backend.LoadCourses(); err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	if s.batches, err = backend.LoadBatches(); err != nil {
		return nil, fmt.Errorf("load batches: %w", err)
	}
	if s.settings, err = backend.LoadSettings(); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if len(s.users) == 0 {
		if err := s.seedAdmin(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// seedAdmin provisions the reserved administrator through the same
// user-creation path as registration, so there is no code-level
// credential bypass to remove later.
func (s *Store) seedAdmin() error {
	admin, err := buildUser(models.ReservedAdminID, s.adminEmail, s.adminPin, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	s.users = append(s.users, admin)
	s.persistUsers()
	return nil
}

// Flush writes every cached collection to the local backend.
func (s *Store) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistUsers()
	s.persistCourses()
	s.persistBatches()
	s.persistSettings()
}

// SnapshotTo writes every cached collection into another backend,
// e.g. a CSV directory chosen by the operator.
func (s *Store) SnapshotTo(backend LocalBackend) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := backend.SaveUsers(s.users); err != nil {
		return fmt.Errorf("export users: %w", err)
	}
	if err := backend.SaveCourses(s.courses); err != nil {
		return fmt.Errorf("export courses: %w", err)
	}
	if err := backend.SaveBatches(s.batches); err != nil {
		return fmt.Errorf("export batches: %w", err)
	}
	if s.settings != nil {
		if err := backend.SaveSettings(s.settings); err != nil {
			return fmt.Errorf("export settings: %w", err)
		}
	}
	return nil
}

// Close flushes and releases the backend.
func (s *Store) Close() error {
	s.Flush()
	return s.local.Close()
}

// Counts reports cached collection sizes, for logging.
func (s *Store) Counts() (users, courses, batches int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), len(s.courses), len(s.batches)
}

// SaveSession mirrors the current user into the backend's session
// restoration key. Passing nil clears it.
func (s *Store) SaveSession(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.local.SaveSession(user); err != nil {
		log.Printf("Warning: failed to persist session: %v", err)
	}
}

// LoadSession restores the last authenticated user, or nil.
func (s *Store) LoadSession() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, err := s.local.LoadSession()
	if err != nil {
		log.Printf("Warning: failed to load session: %v", err)
		return nil
	}
	return user
}

// Local persistence failures are logged and swallowed: the in-memory
// state stays authoritative for the rest of the session.

func (s *Store) persistUsers() {
	if err := s.local.SaveUsers(s.users); err != nil {
		log.Printf("Warning: failed to persist users: %v", err)
	}
}

func (s *Store) persistCourses() {
	if err := s.local.SaveCourses(s.courses); err != nil {
		log.Printf("Warning: failed to persist courses: %v", err)
	}
}

func (s *Store) persistBatches() {
	if err := s.local.SaveBatches(s.batches); err != nil {
		log.Printf("Warning: failed to persist batches: %v", err)
	}
}

func (s *Store) persistSettings() {
	if s.settings == nil {
		return
	}
	if err := s.local.SaveSettings(s.settings); err != nil {
		log.Printf("Warning: failed to persist settings: %v", err)
	}
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
