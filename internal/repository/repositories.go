package repository

import (
	"github.com/fitkeep/exercise-tracker/internal/server"
)

// Repositories is a container for all repository instances, wired once
// and passed wherever data access is needed.
type Repositories struct {
	Users     *UserRepository
	Exercises *ExerciseRepository
}

// NewRepositories constructs the repository container from the shared
// application resources (the pgx pool lives on s.DB).
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(s),
		Exercises: NewExerciseRepository(s),
	}
}
