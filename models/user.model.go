package models

// User roles
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// ReservedAdminID is the id of the seeded administrator account.
// This record must never be deleted.
const ReservedAdminID = "admin"

// User represents a platform account. The pin is stored only as a
// bcrypt hash; the plaintext pin never touches disk.
type User struct {
	ID              string            `json:"id"`
	Email           string            `json:"email"`
	PinHash         string            `json:"pinHash"`
	Role            string            `json:"role"` // ADMIN or USER
	EnrolledCourses []string          `json:"enrolledCourses"`
	PendingUnlocks  []string          `json:"pendingUnlocks"`
	EnrollmentDates map[string]string `json:"enrollmentDates,omitempty"`
	LastActive      string            `json:"lastActive,omitempty"`
}

// HasEnrolled reports whether the course id is in the enrolled set.
func (u *User) HasEnrolled(courseID string) bool {
	return containsID(u.EnrolledCourses, courseID)
}

// HasPending reports whether the course id is awaiting approval.
func (u *User) HasPending(courseID string) bool {
	return containsID(u.PendingUnlocks, courseID)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// RemoveID returns ids without id, preserving order.
func RemoveID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
