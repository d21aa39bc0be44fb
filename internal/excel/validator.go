package excel

import (
	"context"

	"school-admin-api/internal/model"
	"school-admin-api/pkg/errors"
)

const (
	minScore = 0
	maxScore = 100
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks every row and stops at the first bad one.
func (v *Validator) Validate(ctx context.Context, grades []model.GradeRow) error {
	if len(grades) == 0 {
		return errors.ErrSchemaValidation
	}

	for _, grade := range grades {
		if err := v.validateGrade(grade); err != nil {
			return err
		}
	}

	return nil
}

func (v *Validator) validateGrade(grade model.GradeRow) error {
	if !grade.GradeType.Valid() {
		return errors.ValidationError{
			Field:    "gradeType",
			Value:    grade.GradeType,
			Message:  "must be one of Midterm, Quiz 1, Quiz 2, Quiz 3, Project, Final",
			Location: rowLocation(grade.Row),
		}
	}

	if grade.Score < minScore || grade.Score > maxScore {
		return errors.ValidationError{
			Field:    "score",
			Value:    grade.Score,
			Message:  "must be between 0 and 100",
			Location: rowLocation(grade.Row),
		}
	}

	if len(grade.StudentID) > 64 {
		return errors.ValidationError{
			Field:    "studentId",
			Value:    grade.StudentID,
			Message:  "must be at most 64 characters",
			Location: rowLocation(grade.Row),
		}
	}

	return nil
}
