package models

// Class represents an admission-year class section within a college.
type Class struct {
	ID            int64  `db:"id" json:"class_id"`
	Name          string `db:"name" json:"class_name"`
	Code          string `db:"code" json:"class_code"`
	CollegeID     int64  `db:"college_id" json:"college_id"`
	AdmissionYear int    `db:"admission_year" json:"admission_year"`
}

// ClassDetail extends Class with its college name for list views.
type ClassDetail struct {
	Class
	CollegeName string `db:"college_name" json:"college_name"`
}

// ClassFilter defines filter criteria for listing classes.
type ClassFilter struct {
	Search   string
	Page     int
	PageSize int
}
