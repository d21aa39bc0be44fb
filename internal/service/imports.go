package service

import (
	"context"
	"fmt"
	"time"

	"school-admin-api/internal/db"
	"school-admin-api/internal/model"
	apperrors "school-admin-api/pkg/errors"
)

func (a *Admin) CreateImport(ctx context.Context, imp *model.GradeImport) (*model.GradeImport, error) {
	if err := a.repos.Imports.Insert(ctx, imp); err != nil {
		return nil, err
	}
	return imp, nil
}

func (a *Admin) GetImport(ctx context.Context, id string) (*model.GradeImport, error) {
	return a.repos.Imports.FindOne(ctx, db.Filter{"_id": id})
}

// FinishImport records the outcome of a processed spreadsheet.
func (a *Admin) FinishImport(ctx context.Context, id string, status model.ImportStatus, inserted, skipped int, errs []string) error {
	imp, err := a.GetImport(ctx, id)
	if err != nil {
		return err
	}
	imp.Status = status
	imp.Inserted = inserted
	imp.Skipped = skipped
	imp.Errors = errs
	imp.ApplyDefaults(time.Now())
	return a.repos.Imports.Save(ctx, imp)
}

// ImportGrade stores one spreadsheet row through the same duplicate check
// as AddGrade. It reports false when the row was skipped as a duplicate.
func (a *Admin) ImportGrade(ctx context.Context, row model.GradeRow) (bool, error) {
	grade := row.Grade()
	if err := a.CheckGradeUnique(ctx, grade.Key()); err != nil {
		if apperrors.IsConflict(err) {
			return false, nil
		}
		return false, fmt.Errorf("row %d: %w", row.Row, err)
	}
	if _, err := a.AddGrade(ctx, &grade); err != nil {
		return false, fmt.Errorf("row %d: %w", row.Row, err)
	}
	return true, nil
}
