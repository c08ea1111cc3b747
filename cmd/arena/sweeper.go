package main

import (
	"time"

	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/logging"
	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/service"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// startStalledSweeper schedules the background job that expires ACTIVE
// matches abandoned by both players. Player-initiated forfeit claims stay
// the only path to a timeout win; the sweeper only turns dead matches
// into draws so the registry does not accumulate stuck rows.
func startStalledSweeper(engine *service.Engine, stalledAfter time.Duration) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		logging.Fatal("Failed to create sweeper scheduler", err, nil)
	}

	workerID := uuid.NewString()
	_, err = sched.NewJob(
		gocron.DurationJob(30*time.Second),
		gocron.NewTask(func() {
			if err := engine.ExpireStalled(stalledAfter); err != nil {
				logging.Error("stalled-match sweep failed", err, logging.Fields{"worker_id": workerID})
			}
		}),
	)
	if err != nil {
		logging.Fatal("Failed to schedule stalled-match sweep", err, nil)
	}
	sched.Start()
	logging.Info("stalled-match sweeper started", logging.Fields{"worker_id": workerID, "stalled_after": stalledAfter.String()})
}
