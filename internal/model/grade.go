package model

import (
	"time"

	"github.com/google/uuid"

	apperrors "school-admin-api/pkg/errors"
)

type GradeType string

const (
	GradeTypeMidterm GradeType = "Midterm"
	GradeTypeQuiz1   GradeType = "Quiz 1"
	GradeTypeQuiz2   GradeType = "Quiz 2"
	GradeTypeQuiz3   GradeType = "Quiz 3"
	GradeTypeProject GradeType = "Project"
	GradeTypeFinal   GradeType = "Final"
)

func (g GradeType) Valid() bool {
	switch g {
	case GradeTypeMidterm, GradeTypeQuiz1, GradeTypeQuiz2, GradeTypeQuiz3, GradeTypeProject, GradeTypeFinal:
		return true
	default:
		return false
	}
}

type Grade struct {
	ID        string    `json:"_id" bson:"_id"`
	StudentID string    `json:"studentId" bson:"studentId"`
	CourseID  string    `json:"courseId" bson:"courseId"`
	GradeType GradeType `json:"gradeType" bson:"gradeType"`
	Score     *float64  `json:"score" bson:"score"`
}

func (g *Grade) ApplyDefaults(time.Time) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
}

func (g *Grade) Validate() error {
	var errs apperrors.ValidationErrors
	requireString(&errs, "studentId", g.StudentID, "Please Enter students ID")
	requireString(&errs, "courseId", g.CourseID, "Please Enter course ID")
	if g.GradeType == "" {
		errs = append(errs, apperrors.ValidationError{Field: "gradeType", Message: "Please Enter grade type"})
	} else if !g.GradeType.Valid() {
		errs = append(errs, enumError("gradeType", g.GradeType))
	}
	if g.Score == nil {
		errs = append(errs, apperrors.ValidationError{Field: "score", Message: "Please Enter a Valid Grade"})
	}
	return errs.OrNil()
}

// Key is the (student, course, grade type) triple a grade is unique on.
func (g Grade) Key() GradeKey {
	return GradeKey{StudentID: g.StudentID, CourseID: g.CourseID, GradeType: g.GradeType}
}

type GradeKey struct {
	StudentID string
	CourseID  string
	GradeType GradeType
}
