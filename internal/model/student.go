package model

import (
	"time"

	"school-admin-api/internal/credential"
	apperrors "school-admin-api/pkg/errors"
)

const (
	KindStudent = "student"
	KindTeacher = "teacher"
)

type Student struct {
	ID        string            `json:"_id" bson:"_id"`
	Type      string            `json:"type" bson:"type"`
	Name      string            `json:"name" bson:"name"`
	BirthDate time.Time         `json:"birth_date" bson:"birth_date"`
	Email     string            `json:"email" bson:"email"`
	Password  credential.Secret `json:"password" bson:"password"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	Phone     string            `json:"phone,omitempty" bson:"phone,omitempty"`
	Courses   []string          `json:"courses" bson:"courses"`
}

func (s *Student) ApplyDefaults(now time.Time) {
	if s.Type == "" {
		s.Type = KindStudent
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.Courses == nil {
		s.Courses = []string{}
	}
}

func (s *Student) Validate() error {
	var errs apperrors.ValidationErrors
	requireString(&errs, "_id", s.ID, "please enter id")
	requireString(&errs, "name", s.Name, "Please Enter Student Name")
	if s.BirthDate.IsZero() {
		errs = append(errs, apperrors.ValidationError{Field: "birth_date", Message: "Please Enter Student Birthdate"})
	}
	requireString(&errs, "email", s.Email, "Please Enter Student Email")
	if s.Password.IsZero() {
		errs = append(errs, apperrors.ValidationError{Field: "password", Message: "Please Enter Student Password"})
	}
	return errs.OrNil()
}

// StudentProfile is the shape of a Student rendered by the API. It never carries
// the credential hash.
type StudentProfile struct {
	ID        string    `json:"_id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Phone     string    `json:"phone,omitempty"`
	Courses   []string  `json:"courses"`
}

func (s Student) Profile() StudentProfile {
	return StudentProfile{
		ID:        s.ID,
		Type:      s.Type,
		Name:      s.Name,
		BirthDate: s.BirthDate,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		Phone:     s.Phone,
		Courses:   s.Courses,
	}
}

func StudentProfiles(students []Student) []StudentProfile {
	out := make([]StudentProfile, 0, len(students))
	for _, s := range students {
		out = append(out, s.Profile())
	}
	return out
}

// Member is the {_id, name} projection used by enrollment listings.
type Member struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// CourseList is the {_id, name, courses} projection.
type CourseList struct {
	ID      string   `json:"_id"`
	Name    string   `json:"name"`
	Courses []string `json:"courses"`
}
