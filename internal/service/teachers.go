package service

import (
	"context"

	"school-admin-api/internal/db"
	"school-admin-api/internal/model"
	apperrors "school-admin-api/pkg/errors"
)

func (a *Admin) ListTeachers(ctx context.Context) ([]model.Teacher, error) {
	return a.repos.Teachers.Find(ctx, db.Filter{})
}

func (a *Admin) GetTeacherByID(ctx context.Context, id string) (*model.Teacher, error) {
	return a.repos.Teachers.FindOne(ctx, db.Filter{"_id": id})
}

func (a *Admin) GetTeacherByName(ctx context.Context, name string) (*model.Teacher, error) {
	return a.repos.Teachers.FindOne(ctx, db.Filter{"name": name})
}

func (a *Admin) CheckTeacherUnique(ctx context.Context, id, email string) error {
	for _, filter := range []db.Filter{{"_id": id}, {"email": email}} {
		found, err := a.repos.Teachers.Exists(ctx, filter)
		if err != nil {
			return err
		}
		if found {
			return apperrors.NewConflict("User Already Exists")
		}
	}
	return nil
}

func (a *Admin) AddTeacher(ctx context.Context, teacher *model.Teacher) (*model.Teacher, error) {
	if err := a.repos.Teachers.Insert(ctx, teacher); err != nil {
		return nil, err
	}
	a.log.Info().Str("teacher_id", teacher.ID).Msg("Teacher added")
	return teacher, nil
}

func (a *Admin) UpdateTeacher(ctx context.Context, id string, patch map[string]interface{}) error {
	res, err := a.repos.Teachers.UpdateOne(ctx, db.Filter{"_id": id}, patch)
	if err != nil {
		return err
	}
	if res.Matched == 0 {
		return apperrors.NewNotFound("Teacher")
	}
	return nil
}

func (a *Admin) DeleteTeacher(ctx context.Context, id string) (*model.Teacher, error) {
	return a.repos.Teachers.DeleteOne(ctx, db.Filter{"_id": id})
}

func (a *Admin) GetTeacherCourses(ctx context.Context, id string) (*model.CourseList, error) {
	t, err := a.GetTeacherByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.CourseList{ID: t.ID, Name: t.Name, Courses: t.Courses}, nil
}

func (a *Admin) GetTeachersInCourse(ctx context.Context, code string) ([]model.Member, error) {
	teachers, err := a.repos.Teachers.Find(ctx, db.Filter{"courses": code})
	if err != nil {
		return nil, err
	}
	members := make([]model.Member, 0, len(teachers))
	for _, t := range teachers {
		members = append(members, model.Member{ID: t.ID, Name: t.Name})
	}
	return members, nil
}

func (a *Admin) DeleteCourseForTeacher(ctx context.Context, teacherID, code string) (db.UpdateResult, error) {
	return a.repos.Teachers.RemoveFromArrayField(ctx, db.Filter{"_id": teacherID}, "courses", code)
}

func (a *Admin) AssignTeacher(ctx context.Context, teacherID, code string) (*model.Teacher, error) {
	t, err := a.GetTeacherByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if contains(t.Courses, code) {
		return t, nil
	}
	t.Courses = append(t.Courses, code)
	if err := a.repos.Teachers.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
