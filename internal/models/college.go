package models

// College represents an academic college (faculty).
type College struct {
	ID   int64  `db:"id" json:"college_id"`
	Name string `db:"name" json:"college_name"`
	Code string `db:"code" json:"college_code"`
}

// CollegeFilter defines filter criteria for listing colleges.
type CollegeFilter struct {
	Search   string
	Page     int
	PageSize int
}
