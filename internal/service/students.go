package service

import (
	"context"

	"school-admin-api/internal/db"
	"school-admin-api/internal/model"
	apperrors "school-admin-api/pkg/errors"
)

func (a *Admin) ListStudents(ctx context.Context) ([]model.Student, error) {
	return a.repos.Students.Find(ctx, db.Filter{})
}

func (a *Admin) GetStudentByID(ctx context.Context, id string) (*model.Student, error) {
	return a.repos.Students.FindOne(ctx, db.Filter{"_id": id})
}

func (a *Admin) GetStudentByName(ctx context.Context, name string) (*model.Student, error) {
	return a.repos.Students.FindOne(ctx, db.Filter{"name": name})
}

// CheckStudentUnique is the caller-side pre-check run before AddStudent. It
// is not atomic with the insert that follows.
func (a *Admin) CheckStudentUnique(ctx context.Context, id, email string) error {
	for _, filter := range []db.Filter{{"_id": id}, {"email": email}} {
		found, err := a.repos.Students.Exists(ctx, filter)
		if err != nil {
			return err
		}
		if found {
			return apperrors.NewConflict("User Already Exists")
		}
	}
	return nil
}

// AddStudent stores a new student. It performs no uniqueness check beyond
// the store's own _id key.
func (a *Admin) AddStudent(ctx context.Context, student *model.Student) (*model.Student, error) {
	if err := a.repos.Students.Insert(ctx, student); err != nil {
		return nil, err
	}
	a.log.Info().Str("student_id", student.ID).Msg("Student added")
	return student, nil
}

func (a *Admin) UpdateStudent(ctx context.Context, id string, patch map[string]interface{}) error {
	res, err := a.repos.Students.UpdateOne(ctx, db.Filter{"_id": id}, patch)
	if err != nil {
		return err
	}
	if res.Matched == 0 {
		return apperrors.NewNotFound("Student")
	}
	return nil
}

func (a *Admin) DeleteStudent(ctx context.Context, id string) (*model.Student, error) {
	return a.repos.Students.DeleteOne(ctx, db.Filter{"_id": id})
}

func (a *Admin) GetStudentCourses(ctx context.Context, id string) (*model.CourseList, error) {
	s, err := a.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.CourseList{ID: s.ID, Name: s.Name, Courses: s.Courses}, nil
}

// GetStudentsInCourse lists every student whose courses contain code.
func (a *Admin) GetStudentsInCourse(ctx context.Context, code string) ([]model.Member, error) {
	students, err := a.repos.Students.Find(ctx, db.Filter{"courses": code})
	if err != nil {
		return nil, err
	}
	members := make([]model.Member, 0, len(students))
	for _, s := range students {
		members = append(members, model.Member{ID: s.ID, Name: s.Name})
	}
	return members, nil
}

// DeleteCourseForStudent pulls every occurrence of code from the student's
// courses. A missing student yields a zero Matched count, not an error.
func (a *Admin) DeleteCourseForStudent(ctx context.Context, studentID, code string) (db.UpdateResult, error) {
	return a.repos.Students.RemoveFromArrayField(ctx, db.Filter{"_id": studentID}, "courses", code)
}

// EnrollStudent appends code to the student's courses. Enrolling twice is a
// no-op.
func (a *Admin) EnrollStudent(ctx context.Context, studentID, code string) (*model.Student, error) {
	s, err := a.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if contains(s.Courses, code) {
		return s, nil
	}
	s.Courses = append(s.Courses, code)
	if err := a.repos.Students.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
