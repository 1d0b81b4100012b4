package models

// Course represents a course in the catalog.
type Course struct {
	ID        int64   `db:"id" json:"course_id"`
	Code      string  `db:"code" json:"course_code"`
	Name      string  `db:"name" json:"course_name"`
	Credit    float64 `db:"credit" json:"credit"`
	Hours     int     `db:"hours" json:"hours"`
	TypeID    int64   `db:"type_id" json:"type_id"`
	CollegeID int64   `db:"college_id" json:"college_id"`
}

// CourseDetail carries the joined type and college names.
type CourseDetail struct {
	Course
	TypeName    string `db:"type_name" json:"type_name"`
	CollegeName string `db:"college_name" json:"college_name"`
}

// CourseFilter encapsulates search parameters for listing courses.
// StudentID restricts the list to courses the student is enrolled in.
type CourseFilter struct {
	Search    string
	StudentID *int64
	Page      int
	PageSize  int
}
