package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"school-admin-api/internal/model"
	"school-admin-api/internal/storage"
	apperrors "school-admin-api/pkg/errors"
)

var errStorageDisabled = errors.New("file storage is not configured")

func (h *Handler) ListCourses(c *gin.Context) {
	ctx := c.Request.Context()

	if name := c.Query("name"); name != "" {
		course, err := h.admin.GetCourseByName(ctx, name)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, course)
		return
	}

	courses, err := h.admin.ListCourses(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *Handler) GetCourse(c *gin.Context) {
	course, err := h.admin.GetCourseByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *Handler) CreateCourse(c *gin.Context) {
	var req model.CreateCourseRequest
	if !h.bindRequest(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.admin.CheckCourseUnique(ctx, req.CourseCode, req.CourseName); err != nil {
		h.respondError(c, err)
		return
	}

	course, err := h.admin.AddCourse(ctx, req.Course())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *Handler) UpdateCourse(c *gin.Context) {
	var req model.UpdateCourseRequest
	if !h.bindRequest(c, &req) {
		return
	}

	if err := h.admin.UpdateCourse(c.Request.Context(), c.Param("code"), req.Patch()); err != nil {
		h.respondError(c, err)
		return
	}
	message(c, http.StatusCreated, "Course Updated Successfully")
}

func (h *Handler) DeleteCourse(c *gin.Context) {
	if _, err := h.admin.DeleteCourse(c.Request.Context(), c.Param("code")); err != nil {
		h.respondError(c, err)
		return
	}
	message(c, http.StatusCreated, "Course Deleted Successfully")
}

func (h *Handler) AddLecture(c *gin.Context) {
	var req model.LectureRequest
	if !h.bindRequest(c, &req) {
		return
	}

	course, err := h.admin.AddLecture(c.Request.Context(), c.Param("code"), req.Lecture())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// AddTask stores the uploaded multipart "file" and attaches it to the course
// under the form field "type".
func (h *Handler) AddTask(c *gin.Context) {
	if h.storage == nil {
		message(c, http.StatusServiceUnavailable, errStorageDisabled.Error())
		return
	}

	ctx := c.Request.Context()
	code := c.Param("code")
	if _, err := h.admin.GetCourseByCode(ctx, code); err != nil {
		h.respondError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.Server.MaxUploadBytes)
	taskType := strings.TrimSpace(c.PostForm("type"))
	if taskType == "" {
		h.respondError(c, apperrors.ValidationError{Field: "type", Message: "Please Enter Task Type", Location: "body"})
		return
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.respondError(c, apperrors.ValidationError{Field: "file", Message: "Please Upload a Task File", Location: "body"})
		return
	}
	defer file.Close()

	key := storage.ObjectKey(h.cfg.Storage.TaskPrefix+code, header.Filename)
	if err := h.storage.Upload(ctx, key, file); err != nil {
		h.respondError(c, err)
		return
	}

	course, err := h.admin.AddTask(ctx, code, model.Task{Type: taskType, Path: key})
	if err != nil {
		h.discardUpload(ctx, key)
		h.respondError(c, err)
		return
	}

	h.log.Info().Str("course_code", code).Str("key", key).Msg("Task uploaded")
	c.JSON(http.StatusOK, course)
}

// discardUpload removes an object whose database record could not be
// written. It runs even if the request was cancelled.
func (h *Handler) discardUpload(ctx context.Context, key string) {
	if err := h.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("Failed to delete orphaned upload")
	}
}
