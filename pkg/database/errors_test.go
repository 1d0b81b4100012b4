package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	err := &pq.Error{Code: "23505", Constraint: "colleges_code_key"}
	assert.True(t, IsUniqueViolation(err))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create college: %w", err)))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("duplicate key value")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := &pq.Error{Code: "23503", Constraint: "classes_college_id_fkey"}
	assert.True(t, IsForeignKeyViolation(err))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("delete college: %w", err)))
	assert.False(t, IsForeignKeyViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(nil))
}

func TestConstraintName(t *testing.T) {
	err := fmt.Errorf("delete college: %w", &pq.Error{Code: "23503", Constraint: "classes_college_id_fkey"})
	assert.Equal(t, "classes_college_id_fkey", ConstraintName(err))
	assert.Equal(t, "", ConstraintName(errors.New("plain")))
}
