package service

import (
	"github.com/fitkeep/exercise-tracker/internal/repository"
	"github.com/fitkeep/exercise-tracker/internal/server"
)

// Services is a container for all business-logic services.
type Services struct {
	Users     *UserService
	Exercises *ExerciseService
}

// NewServices constructs the service container from the shared
// application resources and the repository container.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Users:     NewUserService(s.Logger, repos.Users),
		Exercises: NewExerciseService(s.Logger, repos.Users, repos.Exercises, s.Job),
	}, nil
}
