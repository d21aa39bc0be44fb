package api

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"school-admin-api/internal/excel"
	"school-admin-api/internal/model"
	"school-admin-api/internal/storage"
	apperrors "school-admin-api/pkg/errors"
)

func (h *Handler) GetCourseGrades(c *gin.Context) {
	grades, err := h.admin.GetGradesForCourse(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, grades)
}

func (h *Handler) ExportCourseGrades(c *gin.Context) {
	code := c.Param("code")
	grades, err := h.admin.GetGradesForCourse(c.Request.Context(), code)
	if err != nil {
		h.respondError(c, err)
		return
	}

	fileName := fmt.Sprintf("grades_%s_%s.xlsx", code, time.Now().Format("20060102_150405"))
	c.Header("Content-Type", excel.ContentType)
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := excel.WriteGrades(c.Writer, "Grades", grades); err != nil {
		h.log.Error().Err(err).Str("course_code", code).Msg("Failed to write grade export")
	}
}

func (h *Handler) CreateGrade(c *gin.Context) {
	var req model.CreateGradeRequest
	if !h.bindRequest(c, &req) {
		return
	}

	ctx := c.Request.Context()
	grade := req.Grade()
	if err := h.admin.CheckGradeUnique(ctx, grade.Key()); err != nil {
		h.respondError(c, err)
		return
	}

	created, err := h.admin.AddGrade(ctx, grade)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *Handler) UpdateGrade(c *gin.Context) {
	var req model.UpdateGradeRequest
	if !h.bindRequest(c, &req) {
		return
	}

	if err := h.admin.UpdateGrade(c.Request.Context(), req.StudentID, req.CourseID, req.Patch()); err != nil {
		h.respondError(c, err)
		return
	}
	message(c, http.StatusCreated, "Student's Grade Updated Successfully")
}

// ImportGrades accepts an .xlsx upload, stores it and queues it for the
// import worker. Progress is read back from GET /grades/import/:id.
func (h *Handler) ImportGrades(c *gin.Context) {
	if h.storage == nil || h.imports == nil {
		message(c, http.StatusServiceUnavailable, "grade import is not configured")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.Server.MaxUploadBytes)
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.respondError(c, apperrors.ValidationError{Field: "file", Message: "Please Upload a Grade Sheet", Location: "body"})
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		h.respondError(c, fmt.Errorf("%w: expected an .xlsx file", apperrors.ErrInvalidFileFormat))
		return
	}

	ctx := c.Request.Context()
	key := storage.ObjectKey(h.cfg.Storage.ImportPrefix, header.Filename)
	if err := h.storage.Upload(ctx, key, file); err != nil {
		h.respondError(c, err)
		return
	}

	imp, err := h.admin.CreateImport(ctx, &model.GradeImport{S3Path: key, FileName: header.Filename})
	if err != nil {
		h.discardUpload(ctx, key)
		h.respondError(c, err)
		return
	}

	if err := h.imports.EnqueueImportJob(ctx, model.GradeImportJob{ImportID: imp.ID, S3Path: key}); err != nil {
		h.log.Error().Err(err).Str("import_id", imp.ID).Msg("Failed to enqueue import job")
		cleanupCtx := context.WithoutCancel(ctx)
		if finishErr := h.admin.FinishImport(cleanupCtx, imp.ID, model.ImportStatusParsedFail, 0, 0,
			[]string{"failed to queue import"}); finishErr != nil {
			h.log.Error().Err(finishErr).Str("import_id", imp.ID).Msg("Failed to mark import as failed")
		}
		h.discardUpload(ctx, key)
		h.respondError(c, err)
		return
	}

	h.log.Info().Str("import_id", imp.ID).Str("file", header.Filename).Msg("Grade import queued")
	c.JSON(http.StatusAccepted, imp)
}

func (h *Handler) GetImport(c *gin.Context) {
	imp, err := h.admin.GetImport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, imp)
}
