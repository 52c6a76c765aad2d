package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is a named unit of background work run every Interval.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(context.Context) error
}

type Service struct {
	tasks []Task
	wg    sync.WaitGroup
}

func New(tasks ...Task) *Service {
	return &Service{tasks: tasks}
}

// Start launches one goroutine per task with a positive interval. Each task
// runs once immediately and then on its ticker until ctx is done.
func (s *Service) Start(ctx context.Context) {
	for _, task := range s.tasks {
		if task.Interval <= 0 || task.Run == nil {
			continue
		}
		s.wg.Add(1)
		go s.schedule(ctx, task)
	}
}

// Wait blocks until every started task has returned.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) RunNow(ctx context.Context, task Task) error {
	start := time.Now()
	err := task.Run(ctx)
	if err != nil {
		slog.Warn("job run failed", "job", task.Name, "err", err)
		return err
	}
	slog.Debug("job run completed", "job", task.Name, "durationMs", time.Since(start).Milliseconds())
	return nil
}

func (s *Service) schedule(ctx context.Context, task Task) {
	defer s.wg.Done()
	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	_ = s.RunNow(ctx, task)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.RunNow(ctx, task)
		}
	}
}
