package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"school-admin-api/internal/model"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var gradeHeaders = []string{"studentId", "courseId", "gradeType", "score"}

// WriteGrades renders grades as a single-sheet workbook whose columns match
// what Parser reads back.
func WriteGrades(w io.Writer, sheetName string, grades []model.Grade) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &gradeHeaders); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, g := range grades {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to locate row %d: %w", i+2, err)
		}
		var score interface{}
		if g.Score != nil {
			score = *g.Score
		}
		row := []interface{}{g.StudentID, g.CourseID, string(g.GradeType), score}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f.Write(w)
}
