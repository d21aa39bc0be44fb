package service

import (
	"context"

	"school-admin-api/internal/db"
	"school-admin-api/internal/model"
	apperrors "school-admin-api/pkg/errors"
)

func (a *Admin) ListCourses(ctx context.Context) ([]model.Course, error) {
	return a.repos.Courses.Find(ctx, db.Filter{})
}

func (a *Admin) GetCourseByCode(ctx context.Context, code string) (*model.Course, error) {
	return a.repos.Courses.FindOne(ctx, db.Filter{"courseCode": code})
}

func (a *Admin) GetCourseByName(ctx context.Context, name string) (*model.Course, error) {
	return a.repos.Courses.FindOne(ctx, db.Filter{"courseName": name})
}

// CheckCourseUnique rejects a course whose code or name is already taken.
func (a *Admin) CheckCourseUnique(ctx context.Context, code, name string) error {
	for _, filter := range []db.Filter{{"courseCode": code}, {"courseName": name}} {
		found, err := a.repos.Courses.Exists(ctx, filter)
		if err != nil {
			return err
		}
		if found {
			return apperrors.NewConflict("Course Already Exists")
		}
	}
	return nil
}

func (a *Admin) AddCourse(ctx context.Context, course *model.Course) (*model.Course, error) {
	if err := a.repos.Courses.Insert(ctx, course); err != nil {
		return nil, err
	}
	a.log.Info().Str("course_code", course.CourseCode).Msg("Course added")
	return course, nil
}

func (a *Admin) UpdateCourse(ctx context.Context, code string, patch map[string]interface{}) error {
	res, err := a.repos.Courses.UpdateOne(ctx, db.Filter{"courseCode": code}, patch)
	if err != nil {
		return err
	}
	if res.Matched == 0 {
		return apperrors.NewNotFound("Course")
	}
	return nil
}

func (a *Admin) DeleteCourse(ctx context.Context, code string) (*model.Course, error) {
	return a.repos.Courses.DeleteOne(ctx, db.Filter{"courseCode": code})
}

// AddLecture appends a lecture to the course schedule. Lecture numbers are
// bounded like attendance lecture numbers.
func (a *Admin) AddLecture(ctx context.Context, code string, lecture model.Lecture) (*model.Course, error) {
	if !model.ValidLectureNumber(lecture.LectureNumber) {
		return nil, apperrors.ValidationErrors{{
			Field:   "lectureNumber",
			Value:   lecture.LectureNumber,
			Message: "Please Enter a Valid Lecture Number",
		}}
	}

	course, err := a.GetCourseByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	course.Lectures = append(course.Lectures, lecture)
	if err := a.repos.Courses.Save(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// AddTask records a task whose file already sits in object storage at path.
func (a *Admin) AddTask(ctx context.Context, code string, task model.Task) (*model.Course, error) {
	course, err := a.GetCourseByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	course.Tasks = append(course.Tasks, task)
	if err := a.repos.Courses.Save(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}
