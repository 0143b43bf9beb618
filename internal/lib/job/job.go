// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - Tasks are enqueued (producer) using asynq.Client.
//   - A server runs workers that process those tasks (consumer).
//
// The only task family today is user bookkeeping: recomputing the
// denormalized per-user exercise count after appends, off the request
// path.
package job

import (
	"github.com/fitkeep/exercise-tracker/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (workers).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	// server runs workers that pull tasks from Redis and execute handlers.
	server *asynq.Server

	logger *zerolog.Logger
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights distribute the worker share: bookkeeping work is never
// urgent, so most capacity stays on the default queue.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 9,
				"low":     1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Start registers task handlers and starts the background worker
// server. Start does not block; the workers run until Stop.
//
// The recounter is injected here rather than at construction because
// repositories are built after the server container exists.
func (j *JobService) Start(recounter Recounter) error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskUserRecount, j.handleUserRecountTask(recounter))

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
