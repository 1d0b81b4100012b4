package models

import "time"

// StudentStatus is the lifecycle state of a student record.
type StudentStatus string

const (
	StudentEnrolled  StudentStatus = "enrolled"
	StudentSuspended StudentStatus = "suspended"
	StudentWithdrawn StudentStatus = "withdrawn"
	StudentGraduated StudentStatus = "graduated"
)

// Valid reports whether the status is one of the known states.
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentEnrolled, StudentSuspended, StudentWithdrawn, StudentGraduated:
		return true
	}
	return false
}

// Student represents a learner registered in a class.
type Student struct {
	ID             int64         `db:"id" json:"student_id"`
	StudentNo      string        `db:"student_no" json:"student_no"`
	Name           string        `db:"name" json:"name"`
	Gender         string        `db:"gender" json:"gender"`
	BirthDate      *time.Time    `db:"birth_date" json:"birth_date,omitempty"`
	EnrollmentDate time.Time     `db:"enrollment_date" json:"enrollment_date"`
	ClassID        int64         `db:"class_id" json:"class_id"`
	Address        string        `db:"address" json:"address,omitempty"`
	Phone          string        `db:"phone" json:"phone,omitempty"`
	Email          string        `db:"email" json:"email,omitempty"`
	Status         StudentStatus `db:"status" json:"status"`
}

// StudentDetail carries the joined class and college names the list and
// detail endpoints render.
type StudentDetail struct {
	Student
	ClassName   string `db:"class_name" json:"class_name"`
	CollegeName string `db:"college_name" json:"college_name"`
}

// StudentFilter encapsulates search parameters for listing students.
// StudentID narrows the result set to a single student's own record when
// the caller's role is student.
type StudentFilter struct {
	Search    string
	StudentID *int64
	Page      int
	PageSize  int
}
