package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"academy/cloud"
	"academy/models"
)

// buildUser is the single construction path for accounts, seeded admin
// included. The pin is hashed immediately and never kept.
func buildUser(id, email, pin, role string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash pin: %w", err)
	}
	return models.User{
		ID:              id,
		Email:           NormalizeEmail(email),
		PinHash:         string(hash),
		Role:            role,
		EnrolledCourses: []string{},
		PendingUnlocks:  []string{},
		EnrollmentDates: map[string]string{},
		LastActive:      nowISO(),
	}, nil
}

// NormalizeEmail folds an email for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetAllUsers returns every account. A successful remote fetch
// overwrites the local cache; otherwise the cache is served as-is,
// seeding the administrator if the store has never been initialized.
func (s *Store) GetAllUsers() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	var remoteUsers []models.User
	if found, _ := s.remote.Call("getAllUsers", nil, &remoteUsers); found {
		s.users = remoteUsers
		s.persistUsers()
	} else if len(s.users) == 0 {
		if err := s.seedAdmin(); err != nil {
			log.Printf("Warning: %v", err)
		}
	}

	out := make([]models.User, len(s.users))
	for i := range s.users {
		out[i] = cloneUser(s.users[i])
	}
	return out
}

// Register creates a new account. A duplicate email fails with
// ErrDuplicateUser whether the duplicate is local or remote; any other
// remote failure falls back to creating the account locally.
func (s *Store) Register(email, pin string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = NormalizeEmail(email)
	if s.findByEmail(email) != nil {
		return models.User{}, ErrDuplicateUser
	}

	var remoteUser models.User
	found, err := s.remote.Call("register", map[string]interface{}{"email": email, "pin": pin}, &remoteUser)
	if errors.Is(err, cloud.ErrConflict) {
		return models.User{}, ErrDuplicateUser
	}
	if found && remoteUser.ID != "" {
		s.upsertUser(remoteUser)
		s.persistUsers()
		return cloneUser(remoteUser), nil
	}

	user, err := buildUser(uuid.NewString(), email, pin, models.RoleUser)
	if err != nil {
		return models.User{}, err
	}
	s.users = append(s.users, user)
	s.persistUsers()
	return cloneUser(user), nil
}

// Login authenticates an account, remote first, then a local search.
// Success refreshes lastActive.
func (s *Store) Login(email, pin string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = NormalizeEmail(email)
	pin = strings.TrimSpace(pin)

	var remoteUser models.User
	if found, _ := s.remote.Call("login", map[string]interface{}{"email": email, "pin": pin}, &remoteUser); found && remoteUser.ID != "" {
		remoteUser.LastActive = nowISO()
		s.upsertUser(remoteUser)
		s.persistUsers()
		return cloneUser(remoteUser), nil
	}

	user := s.findByEmail(email)
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(pin)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	user.LastActive = nowISO()
	s.persistUsers()
	return cloneUser(*user), nil
}

// DeleteUser removes an account locally first, so the admin console
// reflects the deletion even when the remote is unreachable, then
// tells the remote as best-effort. The reserved admin id is refused.
func (s *Store) DeleteUser(userID string) error {
	if userID == models.ReservedAdminID {
		return ErrAdminReserved
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.users[:0]
	for _, user := range s.users {
		if user.ID != userID {
			kept = append(kept, user)
		}
	}
	s.users = kept
	s.persistUsers()

	s.remote.Call("deleteUser", map[string]interface{}{"userId": userID}, nil)
	return nil
}

// RequestUnlock flags a course as payment-claimed for a user. The id
// joins pendingUnlocks unless it is already pending or enrolled.
func (s *Store) RequestUnlock(userID, courseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user := s.findByID(userID); user != nil {
		if !user.HasPending(courseID) && !user.HasEnrolled(courseID) {
			user.PendingUnlocks = append(user.PendingUnlocks, courseID)
		}
		user.LastActive = nowISO()
		s.persistUsers()
	}

	s.remote.Call("requestUnlock", map[string]interface{}{"userId": userID, "courseId": courseID}, nil)
	return nil
}

// ApproveUnlock moves a course id from pending to enrolled and stamps
// the enrollment date. A course id lives in at most one of the two
// sets at any time.
func (s *Store) ApproveUnlock(userID, courseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user := s.findByID(userID); user != nil {
		user.PendingUnlocks = models.RemoveID(user.PendingUnlocks, courseID)
		if !user.HasEnrolled(courseID) {
			user.EnrolledCourses = append(user.EnrolledCourses, courseID)
		}
		if user.EnrollmentDates == nil {
			user.EnrollmentDates = map[string]string{}
		}
		user.EnrollmentDates[courseID] = nowISO()
		user.LastActive = nowISO()
		s.persistUsers()
	}

	s.remote.Call("approveUnlock", map[string]interface{}{"userId": userID, "courseId": courseID}, nil)
	return nil
}

// LockCourse revokes an enrollment, leaving the course id in neither
// set.
func (s *Store) LockCourse(userID, courseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user := s.findByID(userID); user != nil {
		user.EnrolledCourses = models.RemoveID(user.EnrolledCourses, courseID)
		delete(user.EnrollmentDates, courseID)
		user.LastActive = nowISO()
		s.persistUsers()
	}

	s.remote.Call("lockCourse", map[string]interface{}{"userId": userID, "courseId": courseID}, nil)
	return nil
}

func (s *Store) findByEmail(email string) *models.User {
	for i := range s.users {
		if s.users[i].Email == email {
			return &s.users[i]
		}
	}
	return nil
}

func (s *Store) findByID(userID string) *models.User {
	for i := range s.users {
		if s.users[i].ID == userID {
			return &s.users[i]
		}
	}
	return nil
}

// upsertUser replaces a cached user by id or appends a new one.
func (s *Store) upsertUser(user models.User) {
	for i := range s.users {
		if s.users[i].ID == user.ID {
			s.users[i] = user
			return
		}
	}
	s.users = append(s.users, user)
}

// cloneUser deep-copies the slices and map so callers cannot mutate
// the cache behind the lock.
func cloneUser(user models.User) models.User {
	user.EnrolledCourses = append([]string{}, user.EnrolledCourses...)
	user.PendingUnlocks = append([]string{}, user.PendingUnlocks...)
	if user.EnrollmentDates != nil {
		dates := make(map[string]string, len(user.EnrollmentDates))
		for k, v := range user.EnrollmentDates {
			dates[k] = v
		}
		user.EnrollmentDates = dates
	}
	return user
}
