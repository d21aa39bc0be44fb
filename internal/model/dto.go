package model

import (
	"time"

	"school-admin-api/internal/credential"
)

type CreateStudentRequest struct {
	ID        string     `json:"_id" validate:"required"`
	Name      string     `json:"name"`
	BirthDate *time.Time `json:"birth_date"`
	Email     string     `json:"email" validate:"required,email"`
	Password  string     `json:"password" validate:"min=8"`
	Phone     string     `json:"phone"`
	Courses   []string   `json:"courses"`
}

func (CreateStudentRequest) FieldMessages() map[string]string {
	return map[string]string{
		"_id":      "Please Enter a Valid ID",
		"email":    "Please enter a valid email",
		"password": "Please enter a valid password",
	}
}

func (r CreateStudentRequest) Student() *Student {
	s := &Student{
		ID:       r.ID,
		Name:     r.Name,
		Email:    r.Email,
		Password: *credential.NewSecret(r.Password),
		Phone:    r.Phone,
		Courses:  r.Courses,
	}
	if r.BirthDate != nil {
		s.BirthDate = *r.BirthDate
	}
	return s
}

type UpdateStudentRequest struct {
	Name      *string    `json:"name"`
	BirthDate *time.Time `json:"birth_date"`
	Email     *string    `json:"email" validate:"omitempty,email"`
	Password  *string    `json:"password" validate:"omitempty,min=8"`
	Phone     *string    `json:"phone"`
	Courses   []string   `json:"courses"`
}

func (UpdateStudentRequest) FieldMessages() map[string]string {
	return map[string]string{
		"email":    "Please enter a valid email",
		"password": "Please enter a valid password",
	}
}

// Patch lists only the fields present in the request. A password becomes a
// changed credential.Secret that the store hashes before writing.
func (r UpdateStudentRequest) Patch() map[string]interface{} {
	patch := map[string]interface{}{}
	if r.Name != nil {
		patch["name"] = *r.Name
	}
	if r.BirthDate != nil {
		patch["birth_date"] = *r.BirthDate
	}
	if r.Email != nil {
		patch["email"] = *r.Email
	}
	if r.Password != nil {
		patch["password"] = credential.NewSecret(*r.Password)
	}
	if r.Phone != nil {
		patch["phone"] = *r.Phone
	}
	if r.Courses != nil {
		patch["courses"] = r.Courses
	}
	return patch
}

type CreateTeacherRequest struct {
	ID       string   `json:"_id" validate:"required"`
	Name     string   `json:"name"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"min=8"`
	Courses  []string `json:"courses"`
}

func (CreateTeacherRequest) FieldMessages() map[string]string {
	return CreateStudentRequest{}.FieldMessages()
}

func (r CreateTeacherRequest) Teacher() *Teacher {
	return &Teacher{
		ID:       r.ID,
		Name:     r.Name,
		Email:    r.Email,
		Password: *credential.NewSecret(r.Password),
		Courses:  r.Courses,
	}
}

type UpdateTeacherRequest struct {
	Name     *string  `json:"name"`
	Email    *string  `json:"email" validate:"omitempty,email"`
	Password *string  `json:"password" validate:"omitempty,min=8"`
	Courses  []string `json:"courses"`
}

func (UpdateTeacherRequest) FieldMessages() map[string]string {
	return UpdateStudentRequest{}.FieldMessages()
}

func (r UpdateTeacherRequest) Patch() map[string]interface{} {
	patch := map[string]interface{}{}
	if r.Name != nil {
		patch["name"] = *r.Name
	}
	if r.Email != nil {
		patch["email"] = *r.Email
	}
	if r.Password != nil {
		patch["password"] = credential.NewSecret(*r.Password)
	}
	if r.Courses != nil {
		patch["courses"] = r.Courses
	}
	return patch
}

type EnrollRequest struct {
	CourseCode string `json:"courseCode" validate:"required"`
}

func (EnrollRequest) FieldMessages() map[string]string {
	return map[string]string{"courseCode": "Please Enter a Valid Code"}
}

type CreateCourseRequest struct {
	CourseCode       string        `json:"courseCode" validate:"required"`
	CourseName       string        `json:"courseName" validate:"required"`
	CourseDepartment Department    `json:"courseDepartment" validate:"required"`
	Grades           []CourseGrade `json:"grades"`
	Tasks            []Task        `json:"tasks"`
	Lectures         []Lecture     `json:"lectures"`
}

func (CreateCourseRequest) FieldMessages() map[string]string {
	return map[string]string{
		"courseCode":       "Please Enter a Valid Code",
		"courseName":       "Please Enter a Valid Name",
		"courseDepartment": "Please Enter a Valid Department",
	}
}

func (r CreateCourseRequest) Course() *Course {
	return &Course{
		CourseCode:       r.CourseCode,
		CourseName:       r.CourseName,
		CourseDepartment: r.CourseDepartment,
		Grades:           r.Grades,
		Tasks:            r.Tasks,
		Lectures:         r.Lectures,
	}
}

type UpdateCourseRequest struct {
	CourseName       *string        `json:"courseName"`
	CourseDepartment *Department    `json:"courseDepartment"`
	Grades           *[]CourseGrade `json:"grades"`
	Tasks            *[]Task        `json:"tasks"`
	Lectures         *[]Lecture     `json:"lectures"`
}

func (r UpdateCourseRequest) Patch() map[string]interface{} {
	patch := map[string]interface{}{}
	if r.CourseName != nil {
		patch["courseName"] = *r.CourseName
	}
	if r.CourseDepartment != nil {
		patch["courseDepartment"] = *r.CourseDepartment
	}
	if r.Grades != nil {
		patch["grades"] = *r.Grades
	}
	if r.Tasks != nil {
		patch["tasks"] = *r.Tasks
	}
	if r.Lectures != nil {
		patch["lectures"] = *r.Lectures
	}
	return patch
}

type LectureRequest struct {
	LectureNumber   int        `json:"lectureNumber" validate:"required,min=1"`
	LectureDate     *time.Time `json:"lectureDate"`
	LectureLocation string     `json:"lectureLocation"`
	LectureTime     *time.Time `json:"lectureTime"`
}

func (LectureRequest) FieldMessages() map[string]string {
	return map[string]string{"lectureNumber": "Please Enter a Valid Lecture Number"}
}

func (r LectureRequest) Lecture() Lecture {
	l := Lecture{LectureNumber: r.LectureNumber, LectureLocation: r.LectureLocation}
	if r.LectureDate != nil {
		l.LectureDate = *r.LectureDate
	}
	if r.LectureTime != nil {
		l.LectureTime = *r.LectureTime
	}
	return l
}

type CreateGradeRequest struct {
	StudentID string    `json:"studentId" validate:"required"`
	CourseID  string    `json:"courseId" validate:"required"`
	GradeType GradeType `json:"gradeType" validate:"required"`
	Score     *float64  `json:"score" validate:"required"`
}

func (CreateGradeRequest) FieldMessages() map[string]string {
	return map[string]string{
		"studentId": "Please Enter a Valid Student ID",
		"courseId":  "Please Enter a Valid Course ID",
		"gradeType": "Please Enter a Valid Grade Type",
		"score":     "Please Enter a Valid Grade",
	}
}

func (r CreateGradeRequest) Grade() *Grade {
	return &Grade{
		StudentID: r.StudentID,
		CourseID:  r.CourseID,
		GradeType: r.GradeType,
		Score:     r.Score,
	}
}

// UpdateGradeRequest addresses the grade by student and course.
type UpdateGradeRequest struct {
	StudentID string     `json:"studentId" validate:"required"`
	CourseID  string     `json:"courseId" validate:"required"`
	GradeType *GradeType `json:"gradeType"`
	Score     *float64   `json:"score"`
}

func (UpdateGradeRequest) FieldMessages() map[string]string {
	return CreateGradeRequest{}.FieldMessages()
}

func (r UpdateGradeRequest) Patch() map[string]interface{} {
	patch := map[string]interface{}{}
	if r.GradeType != nil {
		patch["gradeType"] = *r.GradeType
	}
	if r.Score != nil {
		patch["score"] = *r.Score
	}
	return patch
}

type CreateAttendanceRequest struct {
	StudentID     string     `json:"studentId" validate:"required"`
	CourseID      string     `json:"courseId" validate:"required"`
	LectureNumber int        `json:"lectureNumber" validate:"required"`
	Date          *time.Time `json:"date"`
	Time          *time.Time `json:"time"`
	Status        bool       `json:"status"`
}

func (CreateAttendanceRequest) FieldMessages() map[string]string {
	return map[string]string{
		"studentId":     "Please Enter students ID",
		"courseId":      "Please Enter course ID",
		"lectureNumber": "Please Enter lecture number",
	}
}

func (r CreateAttendanceRequest) Attendance() *Attendance {
	a := &Attendance{
		StudentID:     r.StudentID,
		CourseID:      r.CourseID,
		LectureNumber: r.LectureNumber,
		Status:        r.Status,
	}
	if r.Date != nil {
		a.Date = *r.Date
	}
	if r.Time != nil {
		a.Time = *r.Time
	}
	return a
}

type UpdateAttendanceRequest struct {
	Status *bool `json:"status" validate:"required"`
}
