package service

import (
	"context"

	"school-admin-api/internal/db"
	"school-admin-api/internal/model"
	apperrors "school-admin-api/pkg/errors"
)

func (a *Admin) GetGradesForCourse(ctx context.Context, code string) ([]model.Grade, error) {
	return a.repos.Grades.Find(ctx, db.Filter{"courseId": code})
}

func (a *Admin) GetGradesForStudent(ctx context.Context, studentID string) ([]model.Grade, error) {
	return a.repos.Grades.Find(ctx, db.Filter{"studentId": studentID})
}

// GradeExistsLoose reports a duplicate when some grade has the student id,
// some grade has the course id and some grade has the grade type. The three
// matches need not be the same record.
func (a *Admin) GradeExistsLoose(ctx context.Context, key model.GradeKey) (bool, error) {
	filters := []db.Filter{
		{"studentId": key.StudentID},
		{"courseId": key.CourseID},
		{"gradeType": key.GradeType},
	}
	for _, filter := range filters {
		found, err := a.repos.Grades.Exists(ctx, filter)
		if err != nil || !found {
			return false, err
		}
	}
	return true, nil
}

// GradeExists reports whether one grade matches student, course and type.
func (a *Admin) GradeExists(ctx context.Context, key model.GradeKey) (bool, error) {
	return a.repos.Grades.Exists(ctx, db.Filter{
		"studentId": key.StudentID,
		"courseId":  key.CourseID,
		"gradeType": key.GradeType,
	})
}

// CheckGradeUnique runs the configured duplicate check.
func (a *Admin) CheckGradeUnique(ctx context.Context, key model.GradeKey) error {
	check := a.GradeExistsLoose
	if a.strictGrades {
		check = a.GradeExists
	}
	found, err := check(ctx, key)
	if err != nil {
		return err
	}
	if found {
		return apperrors.NewConflict("Grade Already Exists")
	}
	return nil
}

func (a *Admin) AddGrade(ctx context.Context, grade *model.Grade) (*model.Grade, error) {
	if err := a.repos.Grades.Insert(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// UpdateGrade patches the first grade of the student in the course.
func (a *Admin) UpdateGrade(ctx context.Context, studentID, courseID string, patch map[string]interface{}) error {
	res, err := a.repos.Grades.UpdateOne(ctx, db.Filter{"studentId": studentID, "courseId": courseID}, patch)
	if err != nil {
		return err
	}
	if res.Matched == 0 {
		return apperrors.NewNotFound("Grade")
	}
	return nil
}
