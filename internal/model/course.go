package model

import (
	"time"

	"github.com/google/uuid"

	apperrors "school-admin-api/pkg/errors"
)

type Department string

const (
	DepartmentIS  Department = "IS"
	DepartmentCS  Department = "CS"
	DepartmentIT  Department = "IT"
	DepartmentBIO Department = "BIO"
)

func (d Department) Valid() bool {
	switch d {
	case DepartmentIS, DepartmentCS, DepartmentIT, DepartmentBIO:
		return true
	default:
		return false
	}
}

// CourseGrade is a grading component declared on the course itself.
type CourseGrade struct {
	Type  string `json:"type" bson:"type"`
	Grade string `json:"grade" bson:"grade"`
}

// Task is a course assignment; Path is the object-storage key of its file.
type Task struct {
	Type string `json:"type" bson:"type"`
	Path string `json:"path" bson:"path"`
}

type Lecture struct {
	LectureNumber   int       `json:"lectureNumber" bson:"lectureNumber"`
	LectureDate     time.Time `json:"lectureDate" bson:"lectureDate"`
	LectureLocation string    `json:"lectureLocation" bson:"lectureLocation"`
	LectureTime     time.Time `json:"lectureTime" bson:"lectureTime"`
}

type Course struct {
	ID               string        `json:"_id" bson:"_id"`
	CourseCode       string        `json:"courseCode" bson:"courseCode"`
	CourseName       string        `json:"courseName" bson:"courseName"`
	CourseDepartment Department    `json:"courseDepartment" bson:"courseDepartment"`
	Grades           []CourseGrade `json:"grades" bson:"grades"`
	Tasks            []Task        `json:"tasks" bson:"tasks"`
	Lectures         []Lecture     `json:"lectures" bson:"lectures"`
}

func (c *Course) ApplyDefaults(time.Time) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Grades == nil {
		c.Grades = []CourseGrade{}
	}
	if c.Tasks == nil {
		c.Tasks = []Task{}
	}
	if c.Lectures == nil {
		c.Lectures = []Lecture{}
	}
}

func (c *Course) Validate() error {
	var errs apperrors.ValidationErrors
	requireString(&errs, "courseCode", c.CourseCode, "Please Enter Course Code")
	requireString(&errs, "courseName", c.CourseName, "Please Enter course Name")
	if c.CourseDepartment == "" {
		errs = append(errs, apperrors.ValidationError{Field: "courseDepartment", Message: "Please Enter Course Department"})
	} else if !c.CourseDepartment.Valid() {
		errs = append(errs, enumError("courseDepartment", c.CourseDepartment))
	}
	return errs.OrNil()
}
