package models

// ScoreStatus is the enrollment state of a score record. A score value is
// only retained while the record is completed.
type ScoreStatus string

const (
	ScoreEnrolling ScoreStatus = "enrolling"
	ScoreCompleted ScoreStatus = "completed"
	ScoreCancelled ScoreStatus = "cancelled"
)

// Valid reports whether the status is one of the known states.
func (s ScoreStatus) Valid() bool {
	switch s {
	case ScoreEnrolling, ScoreCompleted, ScoreCancelled:
		return true
	}
	return false
}

// Score links a student to an offering with an optional grade. One record
// per (student, offering) pair.
type Score struct {
	ID         int64       `db:"id" json:"sc_id"`
	StudentID  int64       `db:"student_id" json:"student_id"`
	OfferingID int64       `db:"offering_id" json:"offering_id"`
	Score      *float64    `db:"score" json:"score"`
	Status     ScoreStatus `db:"status" json:"status"`
}

// ScoreDetail carries the joined course and offering display fields for a
// student's score list.
type ScoreDetail struct {
	Score
	CourseName  string  `db:"course_name" json:"course_name"`
	Credit      float64 `db:"credit" json:"credit"`
	TeacherName string  `db:"teacher_name" json:"teacher_name"`
	Semester    string  `db:"semester" json:"semester"`
	Year        int     `db:"year" json:"year"`
}
