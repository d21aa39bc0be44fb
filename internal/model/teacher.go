package model

import (
	"time"

	"school-admin-api/internal/credential"
	apperrors "school-admin-api/pkg/errors"
)

type Teacher struct {
	ID        string            `json:"_id" bson:"_id"`
	Type      string            `json:"type" bson:"type"`
	Name      string            `json:"name" bson:"name"`
	Email     string            `json:"email" bson:"email"`
	Password  credential.Secret `json:"password" bson:"password"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	Courses   []string          `json:"courses" bson:"courses"`
}

func (t *Teacher) ApplyDefaults(now time.Time) {
	if t.Type == "" {
		t.Type = KindTeacher
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.Courses == nil {
		t.Courses = []string{}
	}
}

func (t *Teacher) Validate() error {
	var errs apperrors.ValidationErrors
	requireString(&errs, "_id", t.ID, "please enter id")
	requireString(&errs, "name", t.Name, "Please Enter Teacher Name")
	requireString(&errs, "email", t.Email, "Please Enter Teacher Email")
	if t.Password.IsZero() {
		errs = append(errs, apperrors.ValidationError{Field: "password", Message: "Please Enter Teacher Password"})
	}
	return errs.OrNil()
}

type TeacherProfile struct {
	ID        string    `json:"_id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Courses   []string  `json:"courses"`
}

func (t Teacher) Profile() TeacherProfile {
	return TeacherProfile{
		ID:        t.ID,
		Type:      t.Type,
		Name:      t.Name,
		Email:     t.Email,
		CreatedAt: t.CreatedAt,
		Courses:   t.Courses,
	}
}

func TeacherProfiles(teachers []Teacher) []TeacherProfile {
	out := make([]TeacherProfile, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, t.Profile())
	}
	return out
}
