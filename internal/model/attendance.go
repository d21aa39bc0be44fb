package model

import (
	"time"

	"github.com/google/uuid"

	apperrors "school-admin-api/pkg/errors"
)

const (
	MinLectureNumber = 1
	MaxLectureNumber = 12
)

func ValidLectureNumber(n int) bool {
	return n >= MinLectureNumber && n <= MaxLectureNumber
}

type Attendance struct {
	ID            string    `json:"_id" bson:"_id"`
	StudentID     string    `json:"studentId" bson:"studentId"`
	CourseID      string    `json:"courseId" bson:"courseId"`
	LectureNumber int       `json:"lectureNumber" bson:"lectureNumber"`
	Date          time.Time `json:"date" bson:"date"`
	Time          time.Time `json:"time" bson:"time"`
	Status        bool      `json:"status" bson:"status"`
}

func (a *Attendance) ApplyDefaults(now time.Time) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Date.IsZero() {
		a.Date = now
	}
	if a.Time.IsZero() {
		a.Time = now
	}
}

func (a *Attendance) Validate() error {
	var errs apperrors.ValidationErrors
	requireString(&errs, "studentId", a.StudentID, "Please Enter students ID")
	requireString(&errs, "courseId", a.CourseID, "Please Enter course ID")
	if !ValidLectureNumber(a.LectureNumber) {
		errs = append(errs, enumError("lectureNumber", a.LectureNumber))
	}
	return errs.OrNil()
}
