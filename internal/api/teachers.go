package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"school-admin-api/internal/model"
)

func (h *Handler) ListTeachers(c *gin.Context) {
	ctx := c.Request.Context()

	if name := c.Query("name"); name != "" {
		teacher, err := h.admin.GetTeacherByName(ctx, name)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, teacher.Profile())
		return
	}

	teachers, err := h.admin.ListTeachers(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.TeacherProfiles(teachers))
}

func (h *Handler) GetTeacher(c *gin.Context) {
	teacher, err := h.admin.GetTeacherByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teacher.Profile())
}

func (h *Handler) CreateTeacher(c *gin.Context) {
	var req model.CreateTeacherRequest
	if !h.bindRequest(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.admin.CheckTeacherUnique(ctx, req.ID, req.Email); err != nil {
		h.respondError(c, err)
		return
	}

	teacher, err := h.admin.AddTeacher(ctx, req.Teacher())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teacher.Profile())
}

func (h *Handler) UpdateTeacher(c *gin.Context) {
	var req model.UpdateTeacherRequest
	if !h.bindRequest(c, &req) {
		return
	}

	if err := h.admin.UpdateTeacher(c.Request.Context(), c.Param("id"), req.Patch()); err != nil {
		h.respondError(c, err)
		return
	}
	message(c, http.StatusCreated, "Teacher's Information Updated Successfully")
}

func (h *Handler) DeleteTeacher(c *gin.Context) {
	if _, err := h.admin.DeleteTeacher(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	message(c, http.StatusCreated, "Teacher Deleted Successfully")
}

func (h *Handler) GetTeacherCourses(c *gin.Context) {
	courses, err := h.admin.GetTeacherCourses(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *Handler) AssignTeacher(c *gin.Context) {
	var req model.EnrollRequest
	if !h.bindRequest(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.admin.GetCourseByCode(ctx, req.CourseCode); err != nil {
		h.respondError(c, err)
		return
	}

	teacher, err := h.admin.AssignTeacher(ctx, c.Param("id"), req.CourseCode)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teacher.Profile())
}

func (h *Handler) RemoveTeacherCourse(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if _, err := h.admin.GetTeacherByID(ctx, id); err != nil {
		h.respondError(c, err)
		return
	}
	if _, err := h.admin.DeleteCourseForTeacher(ctx, id, c.Param("code")); err != nil {
		h.respondError(c, err)
		return
	}
	message(c, http.StatusCreated, "Course Deleted Successfully from this Teacher")
}

func (h *Handler) GetCourseTeachers(c *gin.Context) {
	ctx := c.Request.Context()
	code := c.Param("code")

	if _, err := h.admin.GetCourseByCode(ctx, code); err != nil {
		h.respondError(c, err)
		return
	}
	members, err := h.admin.GetTeachersInCourse(ctx, code)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}
