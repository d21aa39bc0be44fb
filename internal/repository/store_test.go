package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"school-admin-api/internal/credential"
	"school-admin-api/internal/db"
	"school-admin-api/internal/model"
	apperrors "school-admin-api/pkg/errors"
)

func newTestRepos(t *testing.T) (*Repositories, credential.Hasher) {
	t.Helper()
	database, err := db.OpenBolt(filepath.Join(t.TempDir(), "repo.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(context.Background()) })

	hasher := credential.NewBcryptHasher(bcrypt.MinCost)
	return New(database, hasher), hasher
}

func newStudent(id string) *model.Student {
	return &model.Student{
		ID:        id,
		Name:      "Student " + id,
		BirthDate: time.Date(2003, 4, 5, 0, 0, 0, 0, time.UTC),
		Email:     id + "@college.edu",
		Password:  *credential.NewSecret("password1"),
	}
}

func TestInsertHashesPassword(t *testing.T) {
	ctx := context.Background()
	repos, hasher := newTestRepos(t)

	require.NoError(t, repos.Students.Insert(ctx, newStudent("s1")))

	got, err := repos.Students.FindOne(ctx, db.Filter{"_id": "s1"})
	require.NoError(t, err)
	assert.Equal(t, model.KindStudent, got.Type)
	assert.NotEmpty(t, got.Password.Hash())
	assert.NotEqual(t, "password1", got.Password.Hash())
	assert.True(t, got.Password.Verify(hasher, "password1"))
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, []string{}, got.Courses)
}

func TestInsertDuplicateStudent(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestRepos(t)

	require.NoError(t, repos.Students.Insert(ctx, newStudent("s1")))
	err := repos.Students.Insert(ctx, newStudent("s1"))

	var conflict apperrors.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "User Already Exists", conflict.Message)
}

func TestInsertValidationFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestRepos(t)

	s := newStudent("s1")
	s.Email = ""
	err := repos.Students.Insert(ctx, s)

	var verrs apperrors.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "email", verrs[0].Field)

	found, err := repos.Students.Exists(ctx, db.Filter{"_id": "s1"})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCourseEnumRejected(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestRepos(t)

	err := repos.Courses.Insert(ctx, &model.Course{CourseCode: "CS101", CourseName: "Intro", CourseDepartment: "MATH"})

	var verrs apperrors.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "courseDepartment", verrs[0].Field)
}

func TestSaveKeepsHashWhenUnchanged(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestRepos(t)
	require.NoError(t, repos.Students.Insert(ctx, newStudent("s1")))

	loaded, err := repos.Students.FindOne(ctx, db.Filter{"_id": "s1"})
	require.NoError(t, err)
	before := loaded.Password.Hash()

	loaded.Courses = append(loaded.Courses, "CS101")
	require.NoError(t, repos.Students.Save(ctx, loaded))

	reloaded, err := repos.Students.FindOne(ctx, db.Filter{"_id": "s1"})
	require.NoError(t, err)
	assert.Equal(t, before, reloaded.Password.Hash())
	assert.Equal(t, []string{"CS101"}, reloaded.Courses)
}

func TestSaveRehashesChangedPassword(t *testing.T) {
	ctx := context.Background()
	repos, hasher := newTestRepos(t)
	require.NoError(t, repos.Students.Insert(ctx, newStudent("s1")))

	loaded, err := repos.Students.FindOne(ctx, db.Filter{"_id": "s1"})
	require.NoError(t, err)
	loaded.Password.Set("new-password")
	require.NoError(t, repos.Students.Save(ctx, loaded))

	reloaded, err := repos.Students.FindOne(ctx, db.Filter{"_id": "s1"})
	require.NoError(t, err)
	assert.True(t, reloaded.Password.Verify(hasher, "new-password"))
	assert.False(t, reloaded.Password.Verify(hasher, "password1"))
}

func TestUpdateOneHashesPatchedPassword(t *testing.T) {
	ctx := context.Background()
	repos, hasher := newTestRepos(t)
	require.NoError(t, repos.Students.Insert(ctx, newStudent("s1")))

	res, err := repos.Students.UpdateOne(ctx, db.Filter{"_id": "s1"}, map[string]interface{}{
		"name":     "Renamed",
		"password": credential.NewSecret("rotated-pass"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Matched)

	got, err := repos.Students.FindOne(ctx, db.Filter{"_id": "s1"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.NotEqual(t, "rotated-pass", got.Password.Hash())
	assert.True(t, got.Password.Verify(hasher, "rotated-pass"))
}

func TestUpdateOnePatchValidation(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestRepos(t)

	course := &model.Course{CourseCode: "CS101", CourseName: "Intro", CourseDepartment: model.DepartmentCS}
	require.NoError(t, repos.Courses.Insert(ctx, course))

	_, err := repos.Courses.UpdateOne(ctx, db.Filter{"courseCode": "CS101"}, map[string]interface{}{
		"courseDepartment": model.Department("ART"),
	})
	var verrs apperrors.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	_, err = repos.Grades.UpdateOne(ctx, db.Filter{"studentId": "s1"}, map[string]interface{}{
		"gradeType": model.GradeType("Quiz 9"),
	})
	require.True(t, errors.As(err, &verrs))

	_, err = repos.Students.UpdateOne(ctx, db.Filter{"_id": "s1"}, map[string]interface{}{"_id": "s2"})
	require.True(t, errors.As(err, &verrs))
}

func TestUpdateOneEmptyPatch(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestRepos(t)
	require.NoError(t, repos.Students.Insert(ctx, newStudent("s1")))

	res, err := repos.Students.UpdateOne(ctx, db.Filter{"_id": "s1"}, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, db.UpdateResult{Matched: 1}, res)

	res, err = repos.Students.UpdateOne(ctx, db.Filter{"_id": "nope"}, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, db.UpdateResult{}, res)
}

func TestFindOneAndDeleteNotFound(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestRepos(t)

	_, err := repos.Courses.FindOne(ctx, db.Filter{"courseCode": "NOPE"})
	assert.True(t, apperrors.IsNotFound(err))
	assert.EqualError(t, err, "Course Not Found")

	_, err = repos.Teachers.DeleteOne(ctx, db.Filter{"_id": "t9"})
	assert.EqualError(t, err, "Teacher Not Found")
}

func TestRemoveFromArrayField(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestRepos(t)

	s := newStudent("s1")
	s.Courses = []string{"CS101", "BIO1", "CS101"}
	require.NoError(t, repos.Students.Insert(ctx, s))

	res, err := repos.Students.RemoveFromArrayField(ctx, db.Filter{"_id": "s1"}, "courses", "CS101")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Modified)

	got, err := repos.Students.FindOne(ctx, db.Filter{"_id": "s1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"BIO1"}, got.Courses)
}

func newTeacher(id string) *model.Teacher {
	return &model.Teacher{
		ID:       id,
		Name:     "Teacher " + id,
		Email:    id + "@college.edu",
		Password: *credential.NewSecret("password1"),
	}
}

func TestTeacherInsertHashesAndRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	repos, hasher := newTestRepos(t)

	require.NoError(t, repos.Teachers.Insert(ctx, newTeacher("t1")))

	got, err := repos.Teachers.FindOne(ctx, db.Filter{"_id": "t1"})
	require.NoError(t, err)
	assert.Equal(t, model.KindTeacher, got.Type)
	assert.NotEqual(t, "password1", got.Password.Hash())
	assert.True(t, got.Password.Verify(hasher, "password1"))

	err = repos.Teachers.Insert(ctx, newTeacher("t1"))
	var conflict apperrors.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "User Already Exists", conflict.Message)

	all, err := repos.Teachers.Find(ctx, db.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTeacherUpdateOneHashesPatchedPassword(t *testing.T) {
	ctx := context.Background()
	repos, hasher := newTestRepos(t)
	require.NoError(t, repos.Teachers.Insert(ctx, newTeacher("t1")))

	_, err := repos.Teachers.UpdateOne(ctx, db.Filter{"_id": "t1"}, map[string]interface{}{
		"password": credential.NewSecret("rotated-pass"),
	})
	require.NoError(t, err)

	got, err := repos.Teachers.FindOne(ctx, db.Filter{"_id": "t1"})
	require.NoError(t, err)
	assert.NotEqual(t, "rotated-pass", got.Password.Hash())
	assert.True(t, got.Password.Verify(hasher, "rotated-pass"))
}
