package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"school-admin-api/internal/model"
)

// ListStudents returns every student, or the one named by ?name=.
func (h *Handler) ListStudents(c *gin.Context) {
	ctx := c.Request.Context()

	if name := c.Query("name"); name != "" {
		student, err := h.admin.GetStudentByName(ctx, name)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, student.Profile())
		return
	}

	students, err := h.admin.ListStudents(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.StudentProfiles(students))
}

func (h *Handler) GetStudent(c *gin.Context) {
	student, err := h.admin.GetStudentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student.Profile())
}

func (h *Handler) CreateStudent(c *gin.Context) {
	var req model.CreateStudentRequest
	if !h.bindRequest(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.admin.CheckStudentUnique(ctx, req.ID, req.Email); err != nil {
		h.respondError(c, err)
		return
	}

	student, err := h.admin.AddStudent(ctx, req.Student())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student.Profile())
}

func (h *Handler) UpdateStudent(c *gin.Context) {
	var req model.UpdateStudentRequest
	if !h.bindRequest(c, &req) {
		return
	}

	if err := h.admin.UpdateStudent(c.Request.Context(), c.Param("id"), req.Patch()); err != nil {
		h.respondError(c, err)
		return
	}
	message(c, http.StatusCreated, "Student's Information Updated Successfully")
}

func (h *Handler) DeleteStudent(c *gin.Context) {
	if _, err := h.admin.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	message(c, http.StatusCreated, "Student Deleted Successfully")
}

func (h *Handler) GetStudentCourses(c *gin.Context) {
	courses, err := h.admin.GetStudentCourses(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *Handler) EnrollStudent(c *gin.Context) {
	var req model.EnrollRequest
	if !h.bindRequest(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.admin.GetCourseByCode(ctx, req.CourseCode); err != nil {
		h.respondError(c, err)
		return
	}

	student, err := h.admin.EnrollStudent(ctx, c.Param("id"), req.CourseCode)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student.Profile())
}

// RemoveStudentCourse checks only that the student exists, so references to
// courses that were already deleted can still be cleaned up.
func (h *Handler) RemoveStudentCourse(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if _, err := h.admin.GetStudentByID(ctx, id); err != nil {
		h.respondError(c, err)
		return
	}
	if _, err := h.admin.DeleteCourseForStudent(ctx, id, c.Param("code")); err != nil {
		h.respondError(c, err)
		return
	}
	message(c, http.StatusCreated, "Course Deleted Successfully from this Student")
}

func (h *Handler) GetCourseStudents(c *gin.Context) {
	ctx := c.Request.Context()
	code := c.Param("code")

	if _, err := h.admin.GetCourseByCode(ctx, code); err != nil {
		h.respondError(c, err)
		return
	}
	members, err := h.admin.GetStudentsInCourse(ctx, code)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *Handler) GetStudentGrades(c *gin.Context) {
	grades, err := h.admin.GetGradesForStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, grades)
}

func (h *Handler) GetStudentAttendance(c *gin.Context) {
	records, err := h.admin.GetAttendanceForStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
