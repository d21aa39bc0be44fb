package service

import (
	"context"

	"school-admin-api/internal/db"
	"school-admin-api/internal/model"
	apperrors "school-admin-api/pkg/errors"
)

func (a *Admin) RecordAttendance(ctx context.Context, att *model.Attendance) (*model.Attendance, error) {
	if err := a.repos.Attendance.Insert(ctx, att); err != nil {
		return nil, err
	}
	return att, nil
}

// GetAttendanceForCourse lists attendance for a course, limited to one
// lecture when lecture is non-zero.
func (a *Admin) GetAttendanceForCourse(ctx context.Context, code string, lecture int) ([]model.Attendance, error) {
	filter := db.Filter{"courseId": code}
	if lecture != 0 {
		filter["lectureNumber"] = lecture
	}
	return a.repos.Attendance.Find(ctx, filter)
}

func (a *Admin) GetAttendanceForStudent(ctx context.Context, studentID string) ([]model.Attendance, error) {
	return a.repos.Attendance.Find(ctx, db.Filter{"studentId": studentID})
}

func (a *Admin) UpdateAttendanceStatus(ctx context.Context, id string, present bool) error {
	res, err := a.repos.Attendance.UpdateOne(ctx, db.Filter{"_id": id}, map[string]interface{}{"status": present})
	if err != nil {
		return err
	}
	if res.Matched == 0 {
		return apperrors.NewNotFound("Attendance")
	}
	return nil
}
