package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"academy/cloud"
	"academy/models"
)

const (
	testAdminEmail = "admin@shamanth.com"
	testAdminPin   = "1234"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(NewMemoryBackend(), cloud.NewClient("", time.Second), testAdminEmail, testAdminPin)
	assert.NoError(t, err)
	return store
}

// newOfflineStore points at an unreachable remote, simulating a
// configured but dead backend.
func newOfflineStore(t *testing.T) *Store {
	t.Helper()
	remote := cloud.NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	store, err := NewStore(NewMemoryBackend(), remote, testAdminEmail, testAdminPin)
	assert.NoError(t, err)
	return store
}

func TestAdminSeededAndLogsIn(t *testing.T) {
	store := newTestStore(t)

	admin, err := store.Login(testAdminEmail, testAdminPin)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, models.ReservedAdminID, admin.ID)
}

func TestFreshInstallScenario(t *testing.T) {
	store := newTestStore(t)

	user, err := store.Register("a@x.com", "1234")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Empty(t, user.EnrolledCourses)
	assert.Empty(t, user.PendingUnlocks)

	again, err := store.Login("a@x.com", "1234")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	_, err = store.Login("a@x.com", "9999")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.NoError(t, store.RequestUnlock(user.ID, "courseA"))
	assert.NoError(t, store.ApproveUnlock(user.ID, "courseA"))

	var stored *models.User
	for _, u := range store.GetAllUsers() {
		if u.ID == user.ID {
			copied := u
			stored = &copied
		}
	}
	assert.NotNil(t, stored)
	assert.Equal(t, []string{"courseA"}, stored.EnrolledCourses)
	assert.Empty(t, stored.PendingUnlocks)
	assert.Contains(t, stored.EnrollmentDates, "courseA")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Register("dup@x.com", "1111")
	assert.NoError(t, err)

	_, err = store.Register("dup@x.com", "2222")
	assert.ErrorIs(t, err, ErrDuplicateUser)

	// Email comparison is case-folded and trimmed.
	_, err = store.Register("  DUP@X.com ", "3333")
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestEnrollmentStateExclusivity(t *testing.T) {
	store := newTestStore(t)

	user, err := store.Register("e@x.com", "1234")
	assert.NoError(t, err)

	assert.NoError(t, store.RequestUnlock(user.ID, "c1"))
	assert.NoError(t, store.ApproveUnlock(user.ID, "c1"))

	// Requesting an already-enrolled course must not re-enter pending.
	assert.NoError(t, store.RequestUnlock(user.ID, "c1"))

	users := store.GetAllUsers()
	var u models.User
	for _, candidate := range users {
		if candidate.ID == user.ID {
			u = candidate
		}
	}
	assert.True(t, u.HasEnrolled("c1"))
	assert.False(t, u.HasPending("c1"))

	assert.NoError(t, store.LockCourse(user.ID, "c1"))
	for _, candidate := range store.GetAllUsers() {
		if candidate.ID == user.ID {
			u = candidate
		}
	}
	assert.False(t, u.HasEnrolled("c1"))
	assert.False(t, u.HasPending("c1"))
	assert.NotContains(t, u.EnrollmentDates, "c1")
}

func TestReservedAdminCannotBeDeleted(t *testing.T) {
	store := newTestStore(t)

	err := store.DeleteUser(models.ReservedAdminID)
	assert.ErrorIs(t, err, ErrAdminReserved)

	user, _ := store.Register("gone@x.com", "1234")
	assert.NoError(t, store.DeleteUser(user.ID))

	for _, u := range store.GetAllUsers() {
		assert.NotEqual(t, user.ID, u.ID)
	}
}

func TestSaveCourseDerivesIsFree(t *testing.T) {
	store := newTestStore(t)

	free := store.SaveCourse(models.Course{Title: "Intro", Price: 0, IsFree: false})
	assert.True(t, free.IsFree)

	paid := store.SaveCourse(models.Course{Title: "Advanced", Price: 4999, IsFree: true})
	assert.False(t, paid.IsFree)
	assert.NotEmpty(t, paid.ID)
}

func TestDeleteCourseCascades(t *testing.T) {
	store := newTestStore(t)

	course := store.SaveCourse(models.Course{Title: "Doomed", Price: 100})
	batch := store.SaveBatch(models.Batch{
		Title:    "Doomed Batch",
		CourseID: course.ID,
		Mode:     models.BatchModeOnline,
		Status:   models.BatchStatusOngoing,
	})

	enrolled, _ := store.Register("enrolled@x.com", "1234")
	store.RequestUnlock(enrolled.ID, course.ID)
	store.ApproveUnlock(enrolled.ID, course.ID)

	pending, _ := store.Register("pending@x.com", "1234")
	store.RequestUnlock(pending.ID, course.ID)

	store.DeleteCourse(course.ID)

	for _, c := range store.GetCourses() {
		assert.NotEqual(t, course.ID, c.ID)
	}
	for _, u := range store.GetAllUsers() {
		assert.False(t, u.HasEnrolled(course.ID))
		assert.False(t, u.HasPending(course.ID))
		assert.NotContains(t, u.EnrollmentDates, course.ID)
	}
	for _, b := range store.GetBatches() {
		if b.ID == batch.ID {
			assert.Equal(t, "", b.CourseID)
		}
	}
}

func TestBatchLifecycle(t *testing.T) {
	store := newTestStore(t)

	batch := store.SaveBatch(models.Batch{
		Title:  "Evening Batch",
		Mode:   models.BatchModeHybrid,
		Status: models.BatchStatusRegistrationOpen,
	})
	assert.NotEmpty(t, batch.ID)

	batch.Status = models.BatchStatusOngoing
	store.SaveBatch(batch)

	batches := store.GetBatches()
	assert.Len(t, batches, 1)
	assert.Equal(t, models.BatchStatusOngoing, batches[0].Status)

	store.DeleteBatch(batch.ID)
	assert.Empty(t, store.GetBatches())
}

func TestSettingsCreatedWithDefaults(t *testing.T) {
	store := newTestStore(t)

	settings := store.GetSettings()
	assert.Equal(t, "shamanth@okaxis", settings.UpiID)
	assert.Contains(t, settings.Categories, "Python")
	assert.Empty(t, settings.FlashNews)

	settings.FlashNews = []string{"New AWS batch starting soon"}
	store.SaveSettings(settings)

	assert.Equal(t, []string{"New AWS batch starting soon"}, store.GetSettings().FlashNews)
}

func TestFallbackTransparencyWhenRemoteUnreachable(t *testing.T) {
	store := newOfflineStore(t)

	// Every operation must complete against local state with no error
	// escaping, despite the dead remote endpoint.
	users := store.GetAllUsers()
	assert.NotEmpty(t, users) // seeded admin

	course := store.SaveCourse(models.Course{Title: "Offline Course", Price: 10})
	assert.NotEmpty(t, course.ID)

	admin, err := store.Login(testAdminEmail, testAdminPin)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	user, err := store.Register("offline@x.com", "4321")
	assert.NoError(t, err)
	assert.NoError(t, store.RequestUnlock(user.ID, course.ID))
}

func TestSessionRestoration(t *testing.T) {
	store := newTestStore(t)

	user, _ := store.Register("session@x.com", "1234")
	store.SaveSession(&user)

	restored := store.LoadSession()
	assert.NotNil(t, restored)
	assert.Equal(t, user.ID, restored.ID)

	store.SaveSession(nil)
	assert.Nil(t, store.LoadSession())
}
