package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TaskUserRecount recomputes the denormalized exercise count of a user.
const TaskUserRecount = "user:recount"

// Recounter recomputes a user's stored exercise count from the
// exercises actually present in storage.
type Recounter interface {
	RecountExercises(ctx context.Context, userID uuid.UUID) error
}

// userRecountPayload is the JSON body of a user:recount task.
type userRecountPayload struct {
	UserID uuid.UUID `json:"user_id"`
}

// EnqueueUserRecount schedules a recount of the given user's exercise
// count on the low-priority queue.
func (j *JobService) EnqueueUserRecount(ctx context.Context, userID uuid.UUID) error {
	payload, err := json.Marshal(userRecountPayload{UserID: userID})
	if err != nil {
		return fmt.Errorf("marshaling recount payload: %w", err)
	}

	task := asynq.NewTask(TaskUserRecount, payload)

	if _, err := j.Client.EnqueueContext(ctx, task, asynq.Queue("low")); err != nil {
		return fmt.Errorf("enqueueing %s task: %w", TaskUserRecount, err)
	}

	return nil
}

// handleUserRecountTask returns the worker handler for user:recount.
func (j *JobService) handleUserRecountTask(recounter Recounter) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload userRecountPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshaling recount payload: %w", err)
		}

		if err := recounter.RecountExercises(ctx, payload.UserID); err != nil {
			j.logger.Error().
				Err(err).
				Str("user_id", payload.UserID.String()).
				Msg("exercise recount failed")
			return err
		}

		j.logger.Debug().
			Str("user_id", payload.UserID.String()).
			Msg("exercise count recomputed")

		return nil
	}
}
