package harvest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"clubbot-engine/internal/config"
	"clubbot-engine/internal/domain"
	"clubbot-engine/internal/events"
)

// Appender is the slice of the store the runner needs.
type Appender interface {
	Append(records []domain.Record) (int, error)
}

const taskTimeout = 2 * time.Minute

// Runner executes the configured harvest tasks, persists complete source
// batches, and publishes one Notice per task so the chat layer can
// announce what changed.
type Runner struct {
	rss   *RSSHarvester
	md    *MarkdownHarvester
	store Appender
	hub   *events.Hub
}

func NewRunner(limiter *HostLimiter, store Appender, hub *events.Hub) *Runner {
	return &Runner{
		rss:   NewRSSHarvester(limiter),
		md:    NewMarkdownHarvester(limiter),
		store: store,
		hub:   hub,
	}
}

// RunAll runs every task concurrently. A failing task never blocks the
// others; the joined error reports every failure at once.
func (r *Runner) RunAll(ctx context.Context, tasks []config.Task) error {
	var g errgroup.Group
	g.SetLimit(4)

	var mu sync.Mutex
	var errs []error

	for _, task := range tasks {
		task := task
		g.Go(func() error {
			err := r.runTask(ctx, task)
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	g.Wait()

	return errors.Join(errs...)
}

func (r *Runner) runTask(ctx context.Context, task config.Task) error {
	ctx, cancel := context.WithTimeout(ctx, taskTimeout)
	defer cancel()

	records, err := r.harvestOne(ctx, task)
	if err != nil {
		log.Printf("[harvest] task %s (%s) failed: %v", task.Type, task.URL, err)
		r.publish(events.Notice{Task: task.Type, URL: task.URL, Err: err.Error(), At: time.Now().UTC()})
		return fmt.Errorf("task %s (%s): %w", task.Type, task.URL, err)
	}

	added, err := r.store.Append(records)
	if err != nil {
		log.Printf("[harvest] task %s: store append failed: %v", task.Type, err)
		r.publish(events.Notice{Task: task.Type, URL: task.URL, Err: err.Error(), At: time.Now().UTC()})
		return fmt.Errorf("task %s: append: %w", task.Type, err)
	}

	log.Printf("[harvest] task %s: %d harvested, %d new", task.Type, len(records), added)
	r.publish(events.Notice{Task: task.Type, URL: task.URL, Added: added, At: time.Now().UTC()})
	return nil
}

func (r *Runner) harvestOne(ctx context.Context, task config.Task) ([]domain.Record, error) {
	if !looksLikeURL(task.URL) {
		return nil, fmt.Errorf("task %s: not an http(s) url: %q", task.Type, task.URL)
	}

	switch task.Type {
	case "JOBS":
		return r.rss.Harvest(ctx, task.URL, domain.TypeJob, task.SubType)
	case "EVENTS":
		return r.rss.HarvestEvents(ctx, task.URL, task.SubType)
	case "INTERNSHIPS":
		return r.md.Harvest(ctx, task.URL)
	default:
		return nil, fmt.Errorf("unknown task type %q", task.Type)
	}
}

func (r *Runner) publish(n events.Notice) {
	if r.hub == nil {
		return
	}
	r.hub.Publish(n)
}
