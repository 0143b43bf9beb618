package handler

import (
	"github.com/fitkeep/exercise-tracker/internal/server"
	"github.com/fitkeep/exercise-tracker/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router
// setup receives one object instead of many.
type Handlers struct {
	Health    *HealthHandler
	Static    *StaticHandler
	Users     *UserHandler
	Exercises *ExerciseHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(s),
		Static:    NewStaticHandler(s),
		Users:     NewUserHandler(s, services.Users),
		Exercises: NewExerciseHandler(s, services.Exercises),
	}
}
