package repository

import (
	"fmt"

	"school-admin-api/internal/credential"
	"school-admin-api/internal/db"
	"school-admin-api/internal/model"
	apperrors "school-admin-api/pkg/errors"
)

const (
	StudentsCollection     = "students"
	TeachersCollection     = "teachers"
	CoursesCollection      = "courses"
	GradesCollection       = "grades"
	AttendancesCollection  = "attendances"
	GradeImportsCollection = "grade_imports"
)

type (
	StudentStore    = Store[model.Student, *model.Student]
	TeacherStore    = Store[model.Teacher, *model.Teacher]
	CourseStore     = Store[model.Course, *model.Course]
	GradeStore      = Store[model.Grade, *model.Grade]
	AttendanceStore = Store[model.Attendance, *model.Attendance]
	ImportStore     = Store[model.GradeImport, *model.GradeImport]
)

type Repositories struct {
	Students   *StudentStore
	Teachers   *TeacherStore
	Courses    *CourseStore
	Grades     *GradeStore
	Attendance *AttendanceStore
	Imports    *ImportStore
}

func New(database db.Database, hasher credential.Hasher) *Repositories {
	return &Repositories{
		Students: NewStore[model.Student](database.Collection(StudentsCollection), hasher, Options[model.Student]{
			Resource:         "Student",
			DuplicateMessage: "User Already Exists",
			ID:               func(s *model.Student) string { return s.ID },
			Prepare: func(s *model.Student, h credential.Hasher) error {
				return s.Password.Prepare(h)
			},
			ValidatePatch: validatePersonPatch,
		}),
		Teachers: NewStore[model.Teacher](database.Collection(TeachersCollection), hasher, Options[model.Teacher]{
			Resource:         "Teacher",
			DuplicateMessage: "User Already Exists",
			ID:               func(t *model.Teacher) string { return t.ID },
			Prepare: func(t *model.Teacher, h credential.Hasher) error {
				return t.Password.Prepare(h)
			},
			ValidatePatch: validatePersonPatch,
		}),
		Courses: NewStore[model.Course](database.Collection(CoursesCollection), hasher, Options[model.Course]{
			Resource:         "Course",
			DuplicateMessage: "Course Already Exists",
			ID:               func(c *model.Course) string { return c.ID },
			ValidatePatch:    validateCoursePatch,
		}),
		Grades: NewStore[model.Grade](database.Collection(GradesCollection), hasher, Options[model.Grade]{
			Resource:         "Grade",
			DuplicateMessage: "Grade Already Exists",
			ID:               func(g *model.Grade) string { return g.ID },
			ValidatePatch:    validateGradePatch,
		}),
		Attendance: NewStore[model.Attendance](database.Collection(AttendancesCollection), hasher, Options[model.Attendance]{
			Resource:      "Attendance",
			ID:            func(a *model.Attendance) string { return a.ID },
			ValidatePatch: validateAttendancePatch,
		}),
		Imports: NewStore[model.GradeImport](database.Collection(GradeImportsCollection), hasher, Options[model.GradeImport]{
			Resource: "Import",
			ID:       func(g *model.GradeImport) string { return g.ID },
		}),
	}
}

func rejectID(patch db.Document) apperrors.ValidationErrors {
	if v, ok := patch["_id"]; ok {
		return apperrors.ValidationErrors{{Field: "_id", Value: v, Message: "_id cannot be changed"}}
	}
	return nil
}

func validatePersonPatch(patch db.Document) error {
	errs := rejectID(patch)
	if v, ok := patch["type"]; ok {
		errs = append(errs, apperrors.ValidationError{Field: "type", Value: v, Message: "type cannot be changed"})
	}
	return errs.OrNil()
}

func validateCoursePatch(patch db.Document) error {
	errs := rejectID(patch)
	if v, ok := patch["courseDepartment"]; ok {
		if !model.Department(fmt.Sprint(v)).Valid() {
			errs = append(errs, enumError("courseDepartment", v))
		}
	}
	return errs.OrNil()
}

func validateGradePatch(patch db.Document) error {
	errs := rejectID(patch)
	if v, ok := patch["gradeType"]; ok {
		if !model.GradeType(fmt.Sprint(v)).Valid() {
			errs = append(errs, enumError("gradeType", v))
		}
	}
	return errs.OrNil()
}

func validateAttendancePatch(patch db.Document) error {
	errs := rejectID(patch)
	if v, ok := patch["lectureNumber"]; ok {
		n, isInt := v.(int)
		if !isInt || !model.ValidLectureNumber(n) {
			errs = append(errs, enumError("lectureNumber", v))
		}
	}
	return errs.OrNil()
}

func enumError(field string, value interface{}) apperrors.ValidationError {
	return apperrors.ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("`%v` is not a valid enum value for path `%s`", value, field),
	}
}
