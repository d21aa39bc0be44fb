package excel

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"school-admin-api/internal/model"
	apperrors "school-admin-api/pkg/errors"
)

func workbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestParseGradeSheet(t *testing.T) {
	data := workbook(t, [][]interface{}{
		{"Student ID", "course_id", "gradeType", "Score"},
		{"s1", "CS101", "Final", 90},
		{"", "", "", ""},
		{"s2", "CS101", "Quiz 1", 7.5},
	})

	rows, err := NewParser().Parse(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, model.GradeRow{Row: 2, StudentID: "s1", CourseID: "CS101", GradeType: model.GradeTypeFinal, Score: 90}, rows[0])
	assert.Equal(t, 4, rows[1].Row)
	assert.Equal(t, model.GradeTypeQuiz1, rows[1].GradeType)
	assert.Equal(t, 7.5, rows[1].Score)
}

func TestParseMissingColumn(t *testing.T) {
	data := workbook(t, [][]interface{}{
		{"studentId", "courseId", "score"},
		{"s1", "CS101", 90},
	})

	_, err := NewParser().Parse(context.Background(), data)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileFormat)
}

func TestParseBadScore(t *testing.T) {
	data := workbook(t, [][]interface{}{
		{"studentId", "courseId", "gradeType", "score"},
		{"s1", "CS101", "Final", "ninety"},
	})

	_, err := NewParser().Parse(context.Background(), data)
	assert.ErrorContains(t, err, "row 2")
}

func TestParseNotASpreadsheet(t *testing.T) {
	_, err := NewParser().Parse(context.Background(), []byte("studentId,courseId"))
	assert.Error(t, err)
}

func TestValidator(t *testing.T) {
	v := NewValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, nil), apperrors.ErrSchemaValidation)

	ok := model.GradeRow{Row: 2, StudentID: "s1", CourseID: "CS101", GradeType: model.GradeTypeMidterm, Score: 55}
	assert.NoError(t, v.Validate(ctx, []model.GradeRow{ok}))

	badType := ok
	badType.GradeType = "Quiz 4"
	var ve apperrors.ValidationError
	require.True(t, errors.As(v.Validate(ctx, []model.GradeRow{ok, badType}), &ve))
	assert.Equal(t, "gradeType", ve.Field)

	badScore := ok
	badScore.Score = 101
	require.True(t, errors.As(v.Validate(ctx, []model.GradeRow{badScore}), &ve))
	assert.Equal(t, "score", ve.Field)
	assert.Equal(t, "row 2", ve.Location)
}

func TestExportRoundTrip(t *testing.T) {
	score := 73.0
	var buf bytes.Buffer
	require.NoError(t, WriteGrades(&buf, "CS101", []model.Grade{
		{StudentID: "s1", CourseID: "CS101", GradeType: model.GradeTypeProject, Score: &score},
	}))

	rows, err := NewExcelStrategy().Parse(context.Background(), buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "s1", rows[0].StudentID)
	assert.Equal(t, model.GradeTypeProject, rows[0].GradeType)
	assert.Equal(t, 73.0, rows[0].Score)
}

func TestExportLeavesMissingScoreBlank(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGrades(&buf, "Grades", []model.Grade{
		{StudentID: "s2", CourseID: "BIO1", GradeType: model.GradeTypeProject},
	}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetRows("Grades")
	require.NoError(t, err)
	require.Len(t, header, 2)
	assert.Equal(t, []string{"studentId", "courseId", "gradeType", "score"}, header[0])

	id, err := f.GetCellValue("Grades", "A2")
	require.NoError(t, err)
	assert.Equal(t, "s2", id)
	score, err := f.GetCellValue("Grades", "D2")
	require.NoError(t, err)
	assert.Empty(t, score)
}

func TestExportRejectsBadSheetName(t *testing.T) {
	var buf bytes.Buffer
	err := WriteGrades(&buf, "grades:[2024]", nil)
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}
