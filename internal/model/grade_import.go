package model

import (
	"time"

	"github.com/google/uuid"
)

type ImportStatus string

const (
	ImportStatusUploaded   ImportStatus = "UPLOADED"
	ImportStatusParsedOK   ImportStatus = "PARSED_OK"
	ImportStatusParsedFail ImportStatus = "PARSED_FAIL"
)

// GradeImport tracks one uploaded grade spreadsheet through the import worker.
type GradeImport struct {
	ID        string       `json:"_id" bson:"_id"`
	S3Path    string       `json:"s3_path" bson:"s3_path"`
	FileName  string       `json:"file_name" bson:"file_name"`
	Status    ImportStatus `json:"status" bson:"status"`
	Inserted  int          `json:"inserted" bson:"inserted"`
	Skipped   int          `json:"skipped" bson:"skipped"`
	Errors    []string     `json:"errors,omitempty" bson:"errors,omitempty"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" bson:"updated_at"`
}

func (g *GradeImport) ApplyDefaults(now time.Time) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.Status == "" {
		g.Status = ImportStatusUploaded
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now
}

func (g *GradeImport) Validate() error {
	return nil
}

// GradeImportJob is the queue payload handed to the import worker.
type GradeImportJob struct {
	ImportID string `json:"import_id"`
	S3Path   string `json:"s3_path"`
}

// GradeRow is one parsed spreadsheet row.
type GradeRow struct {
	Row       int       `json:"row"`
	StudentID string    `json:"studentId"`
	CourseID  string    `json:"courseId"`
	GradeType GradeType `json:"gradeType"`
	Score     float64   `json:"score"`
}

func (r GradeRow) Grade() Grade {
	score := r.Score
	return Grade{
		StudentID: r.StudentID,
		CourseID:  r.CourseID,
		GradeType: r.GradeType,
		Score:     &score,
	}
}
