package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"school-admin-api/internal/model"
	apperrors "school-admin-api/pkg/errors"
)

func (h *Handler) RecordAttendance(c *gin.Context) {
	var req model.CreateAttendanceRequest
	if !h.bindRequest(c, &req) {
		return
	}

	record, err := h.admin.RecordAttendance(c.Request.Context(), req.Attendance())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetCourseAttendance lists attendance for a course; ?lecture=N narrows it
// to one lecture.
func (h *Handler) GetCourseAttendance(c *gin.Context) {
	lecture := 0
	if raw := c.Query("lecture"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || !model.ValidLectureNumber(n) {
			h.respondError(c, apperrors.ValidationError{
				Field:    "lecture",
				Value:    raw,
				Message:  "Please Enter a Valid Lecture Number",
				Location: "query",
			})
			return
		}
		lecture = n
	}

	records, err := h.admin.GetAttendanceForCourse(c.Request.Context(), c.Param("code"), lecture)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) UpdateAttendance(c *gin.Context) {
	var req model.UpdateAttendanceRequest
	if !h.bindRequest(c, &req) {
		return
	}

	if err := h.admin.UpdateAttendanceStatus(c.Request.Context(), c.Param("id"), *req.Status); err != nil {
		h.respondError(c, err)
		return
	}
	message(c, http.StatusCreated, "Attendance Updated Successfully")
}
