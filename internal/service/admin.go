// Package service composes entity-store calls into the operations the HTTP
// layer exposes. It keeps no state of its own between calls.
package service

import (
	"github.com/rs/zerolog"

	"school-admin-api/internal/config"
	"school-admin-api/internal/logger"
	"school-admin-api/internal/repository"
)

type Admin struct {
	repos        *repository.Repositories
	strictGrades bool
	log          zerolog.Logger
}

func NewAdmin(repos *repository.Repositories, cfg *config.Config) *Admin {
	return &Admin{
		repos:        repos,
		strictGrades: cfg.Grades.StrictDuplicateCheck,
		log:          logger.Component("admin"),
	}
}
