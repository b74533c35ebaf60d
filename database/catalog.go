package database

import (
	"github.com/google/uuid"

	"academy/models"
)

// GetCourses returns the catalog, preferring a remote fetch and
// overwriting the cache when one succeeds.
func (s *Store) GetCourses() []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()

	var remoteCourses []models.Course
	if found, _ := s.remote.Call("getCourses", nil, &remoteCourses); found {
		s.courses = remoteCourses
		s.persistCourses()
	}
	return append([]models.Course{}, s.courses...)
}

// SaveCourse creates or updates a course. isFree is re-derived from
// price on every save. The remote write is awaited best-effort; the
// local cache is always updated and persisted.
func (s *Store) SaveCourse(course models.Course) models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()

	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	course.Normalize()

	s.remote.Call("saveCourse", map[string]interface{}{"course": course}, nil)

	replaced := false
	for i := range s.courses {
		if s.courses[i].ID == course.ID {
			s.courses[i] = course
			replaced = true
			break
		}
	}
	if !replaced {
		s.courses = append(s.courses, course)
	}
	s.persistCourses()
	return course
}

// DeleteCourse removes a course and cascades the cleanup: the id is
// stripped from every user's enrolled and pending sets and from
// enrollment dates, and batches that referenced the course keep
// running with the reference cleared. Dangling ids never survive a
// deletion.
func (s *Store) DeleteCourse(courseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.courses[:0]
	for _, course := range s.courses {
		if course.ID != courseID {
			kept = append(kept, course)
		}
	}
	s.courses = kept
	s.persistCourses()

	usersTouched := false
	for i := range s.users {
		user := &s.users[i]
		if user.HasEnrolled(courseID) || user.HasPending(courseID) {
			user.EnrolledCourses = models.RemoveID(user.EnrolledCourses, courseID)
			user.PendingUnlocks = models.RemoveID(user.PendingUnlocks, courseID)
			delete(user.EnrollmentDates, courseID)
			usersTouched = true
		}
	}
	if usersTouched {
		s.persistUsers()
	}

	batchesTouched := false
	for i := range s.batches {
		if s.batches[i].CourseID == courseID {
			s.batches[i].CourseID = ""
			batchesTouched = true
		}
	}
	if batchesTouched {
		s.persistBatches()
	}

	s.remote.Call("deleteCourse", map[string]interface{}{"courseId": courseID}, nil)
}

// GetBatches returns all batches, remote first.
func (s *Store) GetBatches() []models.Batch {
	s.mu.Lock()
	defer s.mu.Unlock()

	var remoteBatches []models.Batch
	if found, _ := s.remote.Call("getBatches", nil, &remoteBatches); found {
		s.batches = remoteBatches
		s.persistBatches()
	}
	return append([]models.Batch{}, s.batches...)
}

// SaveBatch creates or updates a batch.
func (s *Store) SaveBatch(batch models.Batch) models.Batch {
	s.mu.Lock()
	defer s.mu.Unlock()

	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}

	s.remote.Call("saveBatch", map[string]interface{}{"batch": batch}, nil)

	replaced := false
	for i := range s.batches {
		if s.batches[i].ID == batch.ID {
			s.batches[i] = batch
			replaced = true
			break
		}
	}
	if !replaced {
		s.batches = append(s.batches, batch)
	}
	s.persistBatches()
	return batch
}

// DeleteBatch removes a batch locally first, then remotely.
func (s *Store) DeleteBatch(batchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.batches[:0]
	for _, batch := range s.batches {
		if batch.ID != batchID {
			kept = append(kept, batch)
		}
	}
	s.batches = kept
	s.persistBatches()

	s.remote.Call("deleteBatch", map[string]interface{}{"batchId": batchID}, nil)
}
