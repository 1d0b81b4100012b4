package models

// Offering is a scheduled teaching instance of a course: one course taught
// by one teacher in a given semester and year.
type Offering struct {
	ID        int64  `db:"id" json:"offering_id"`
	CourseID  int64  `db:"course_id" json:"course_id"`
	TeacherID int64  `db:"teacher_id" json:"teacher_id"`
	Semester  string `db:"semester" json:"semester"`
	Year      int    `db:"year" json:"year"`
	Classroom string `db:"classroom" json:"classroom,omitempty"`
	ClassTime string `db:"class_time" json:"class_time,omitempty"`
}

// OfferingDetail carries the joined course and teacher display fields.
type OfferingDetail struct {
	Offering
	CourseName  string `db:"course_name" json:"course_name"`
	CourseCode  string `db:"course_code" json:"course_code"`
	TeacherName string `db:"teacher_name" json:"teacher_name"`
}

// OfferingFilter encapsulates search parameters for listing offerings.
// StudentID restricts the list to offerings the student is enrolled in.
type OfferingFilter struct {
	Search    string
	StudentID *int64
	Page      int
	PageSize  int
}
