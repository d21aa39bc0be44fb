package api

import (
	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with the standard middleware chain.
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()
	router.Use(RecoveryMiddleware())
	router.Use(CORSMiddleware())
	router.Use(LoggingMiddleware())

	SetupRoutes(router, handler)
	return router
}

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		students := v1.Group("/students")
		students.GET("", handler.ListStudents)
		students.POST("", handler.CreateStudent)
		students.GET("/:id", handler.GetStudent)
		students.PUT("/:id", handler.UpdateStudent)
		students.DELETE("/:id", handler.DeleteStudent)
		students.GET("/:id/courses", handler.GetStudentCourses)
		students.POST("/:id/courses", handler.EnrollStudent)
		students.DELETE("/:id/courses/:code", handler.RemoveStudentCourse)
		students.GET("/:id/grades", handler.GetStudentGrades)
		students.GET("/:id/attendance", handler.GetStudentAttendance)

		teachers := v1.Group("/teachers")
		teachers.GET("", handler.ListTeachers)
		teachers.POST("", handler.CreateTeacher)
		teachers.GET("/:id", handler.GetTeacher)
		teachers.PUT("/:id", handler.UpdateTeacher)
		teachers.DELETE("/:id", handler.DeleteTeacher)
		teachers.GET("/:id/courses", handler.GetTeacherCourses)
		teachers.POST("/:id/courses", handler.AssignTeacher)
		teachers.DELETE("/:id/courses/:code", handler.RemoveTeacherCourse)

		courses := v1.Group("/courses")
		courses.GET("", handler.ListCourses)
		courses.POST("", handler.CreateCourse)
		courses.GET("/:code", handler.GetCourse)
		courses.PUT("/:code", handler.UpdateCourse)
		courses.DELETE("/:code", handler.DeleteCourse)
		courses.POST("/:code/lectures", handler.AddLecture)
		courses.POST("/:code/tasks", handler.AddTask)
		courses.GET("/:code/students", handler.GetCourseStudents)
		courses.GET("/:code/teachers", handler.GetCourseTeachers)
		courses.GET("/:code/grades", handler.GetCourseGrades)
		courses.GET("/:code/grades/export", handler.ExportCourseGrades)
		courses.GET("/:code/attendance", handler.GetCourseAttendance)

		grades := v1.Group("/grades")
		grades.POST("", handler.CreateGrade)
		grades.PUT("", handler.UpdateGrade)
		grades.POST("/import", handler.ImportGrades)
		grades.GET("/import/:id", handler.GetImport)

		attendance := v1.Group("/attendance")
		attendance.POST("", handler.RecordAttendance)
		attendance.PUT("/:id", handler.UpdateAttendance)
	}
}
