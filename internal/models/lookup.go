package models

// Title is a teacher rank lookup row (professor, lecturer, ...).
type Title struct {
	ID   int64  `db:"id" json:"title_id"`
	Name string `db:"name" json:"title_name"`
	Code string `db:"code" json:"title_code"`
}

// CourseType is a course category lookup row (required, elective, ...).
type CourseType struct {
	ID   int64  `db:"id" json:"type_id"`
	Name string `db:"name" json:"type_name"`
	Code string `db:"code" json:"type_code"`
}
