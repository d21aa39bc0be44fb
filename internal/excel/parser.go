package excel

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"school-admin-api/internal/model"
	"school-admin-api/pkg/errors"
)

const (
	colStudentID = "studentid"
	colCourseID  = "courseid"
	colGradeType = "gradetype"
	colScore     = "score"
)

var requiredColumns = []string{colStudentID, colCourseID, colGradeType, colScore}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// normalizeHeader maps "Student ID", "student_id" and "studentId" to the
// same key.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

func (p *Parser) Parse(ctx context.Context, data []byte) ([]model.GradeRow, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ErrInvalidFileFormat
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	if len(rows) < 2 { // header plus at least one data row
		return nil, errors.ErrInvalidFileFormat
	}

	columnMap := make(map[string]int)
	for i, col := range rows[0] {
		columnMap[normalizeHeader(col)] = i
	}

	for _, col := range requiredColumns {
		if _, exists := columnMap[col]; !exists {
			return nil, fmt.Errorf("%w: missing required column %s", errors.ErrInvalidFileFormat, col)
		}
	}

	var grades []model.GradeRow
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		rowNum := i + 2
		grade, err := p.parseRow(row, columnMap, rowNum)
		if err != nil {
			return nil, fmt.Errorf("error parsing row %d: %w", rowNum, err)
		}
		grades = append(grades, *grade)
	}

	return grades, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func (p *Parser) parseRow(row []string, columnMap map[string]int, rowNum int) (*model.GradeRow, error) {
	getValue := func(colName string) string {
		if idx, exists := columnMap[colName]; exists && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	studentID := getValue(colStudentID)
	if studentID == "" {
		return nil, fmt.Errorf("studentId is required")
	}

	courseID := getValue(colCourseID)
	if courseID == "" {
		return nil, fmt.Errorf("courseId is required")
	}

	gradeType := getValue(colGradeType)
	if gradeType == "" {
		return nil, fmt.Errorf("gradeType is required")
	}

	scoreStr := getValue(colScore)
	if scoreStr == "" {
		return nil, fmt.Errorf("score is required")
	}
	score, err := strconv.ParseFloat(scoreStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid score value: %s", scoreStr)
	}

	return &model.GradeRow{
		Row:       rowNum,
		StudentID: studentID,
		CourseID:  courseID,
		GradeType: model.GradeType(gradeType),
		Score:     score,
	}, nil
}
