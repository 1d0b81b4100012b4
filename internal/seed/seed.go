package seed

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusworks/records-api/internal/models"
	"github.com/campusworks/records-api/internal/repository"
)

// Schema is the full DDL for the records database. Statements are ordered
// so every referenced table exists before its foreign keys.
const Schema = `
CREATE TABLE IF NOT EXISTS colleges (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    code TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS classes (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    code TEXT NOT NULL UNIQUE,
    college_id BIGINT NOT NULL REFERENCES colleges(id),
    admission_year INT NOT NULL
);

CREATE TABLE IF NOT EXISTS titles (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    code TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS course_types (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    code TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS students (
    id BIGSERIAL PRIMARY KEY,
    student_no TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    gender TEXT NOT NULL,
    birth_date DATE,
    enrollment_date DATE NOT NULL,
    class_id BIGINT NOT NULL REFERENCES classes(id),
    address TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'enrolled'
);

CREATE TABLE IF NOT EXISTS teachers (
    id BIGSERIAL PRIMARY KEY,
    teacher_no TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    gender TEXT NOT NULL,
    birth_date DATE,
    title_id BIGINT REFERENCES titles(id),
    college_id BIGINT NOT NULL REFERENCES colleges(id),
    phone TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS courses (
    id BIGSERIAL PRIMARY KEY,
    code TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    credit NUMERIC(4,1) NOT NULL,
    hours INT NOT NULL,
    type_id BIGINT NOT NULL REFERENCES course_types(id),
    college_id BIGINT NOT NULL REFERENCES colleges(id)
);

CREATE TABLE IF NOT EXISTS course_offerings (
    id BIGSERIAL PRIMARY KEY,
    course_id BIGINT NOT NULL REFERENCES courses(id),
    teacher_id BIGINT NOT NULL REFERENCES teachers(id),
    semester TEXT NOT NULL,
    year INT NOT NULL,
    classroom TEXT NOT NULL DEFAULT '',
    class_time TEXT NOT NULL DEFAULT '',
    UNIQUE (course_id, teacher_id, semester, year)
);

CREATE TABLE IF NOT EXISTS student_courses (
    id BIGSERIAL PRIMARY KEY,
    student_id BIGINT NOT NULL REFERENCES students(id),
    offering_id BIGINT NOT NULL REFERENCES course_offerings(id),
    score NUMERIC(5,1),
    status TEXT NOT NULL DEFAULT 'enrolling',
    UNIQUE (student_id, offering_id)
);

CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL,
    related_id BIGINT,
    active BOOLEAN NOT NULL DEFAULT TRUE
);
`

type lookupRow struct {
	name string
	code string
}

var (
	colleges = []lookupRow{
		{"Computer Science", "CS"},
		{"Mathematics", "MATH"},
		{"Physics", "PHYS"},
	}
	titles = []lookupRow{
		{"Professor", "PROF"},
		{"Associate Professor", "ASSO_PROF"},
		{"Lecturer", "LECT"},
	}
	courseTypes = []lookupRow{
		{"Required", "REQ"},
		{"Elective", "ELEC"},
		{"General", "GEN"},
	}
)

// Run creates the schema and loads the baseline data set. The lookup
// writes happen in a single transaction so a partial load never survives;
// the admin account goes through the user repository afterwards, the same
// code path the API uses.
func Run(ctx context.Context, db *sqlx.DB, logger *zap.Logger, adminPassword string) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const truncate = `TRUNCATE student_courses, course_offerings, courses, students,
        teachers, classes, course_types, titles, colleges, users RESTART IDENTITY CASCADE`
	if _, err := tx.ExecContext(ctx, truncate); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}

	for table, rows := range map[string][]lookupRow{
		"colleges":     colleges,
		"titles":       titles,
		"course_types": courseTypes,
	} {
		for _, row := range rows {
			query := fmt.Sprintf("INSERT INTO %s (name, code) VALUES ($1, $2)", table)
			if _, err := tx.ExecContext(ctx, query, row.name, row.code); err != nil {
				return fmt.Errorf("seed %s: %w", table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	admin := &models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Active:       true,
	}
	if err := repository.NewUserRepository(db).Create(ctx, admin); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	logger.Sugar().Infow("seed complete",
		"colleges", len(colleges),
		"titles", len(titles),
		"course_types", len(courseTypes),
	)
	return nil
}
