package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"clubbot-engine/internal/config"
	"clubbot-engine/internal/harvest"
)

// Scheduler wraps robfig/cron and manages the periodic harvest loop.
type Scheduler struct {
	cron   *cron.Cron
	runner *harvest.Runner
	tasks  []config.Task
	spec   string
}

func New(runner *harvest.Runner, tasks []config.Task, spec string) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		runner: runner,
		tasks:  tasks,
		spec:   spec,
	}
}

// Start registers the job and starts the scheduler. Also runs one harvest
// immediately so the store is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runHarvest(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] cron started, spec: %s, tasks: %d", s.spec, len(s.tasks))

	go s.runHarvest(ctx)

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] cron stopped")
}

func (s *Scheduler) runHarvest(ctx context.Context) {
	if len(s.tasks) == 0 {
		return
	}
	log.Println("[scheduler] harvest cycle started")
	if err := s.runner.RunAll(ctx, s.tasks); err != nil {
		log.Printf("[scheduler] harvest cycle finished with errors: %v", err)
		return
	}
	log.Println("[scheduler] harvest cycle finished")
}
