package models

import "time"

// Teacher represents a member of the teaching staff.
type Teacher struct {
	ID        int64      `db:"id" json:"teacher_id"`
	TeacherNo string     `db:"teacher_no" json:"teacher_no"`
	Name      string     `db:"name" json:"name"`
	Gender    string     `db:"gender" json:"gender"`
	BirthDate *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	TitleID   *int64     `db:"title_id" json:"title_id,omitempty"`
	CollegeID int64      `db:"college_id" json:"college_id"`
	Phone     string     `db:"phone" json:"phone,omitempty"`
	Email     string     `db:"email" json:"email,omitempty"`
}

// TeacherDetail carries the joined college and title names.
type TeacherDetail struct {
	Teacher
	CollegeName string  `db:"college_name" json:"college_name"`
	TitleName   *string `db:"title_name" json:"title_name,omitempty"`
}

// TeacherFilter encapsulates search parameters for listing teachers.
type TeacherFilter struct {
	Search   string
	Page     int
	PageSize int
}
