package worker

import (
	"context"
	"time"

	"dsc/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Worker background job bound to the server lifetime
type Worker interface {
	Run(ctx context.Context) error
}

// OnWork one round of work
type OnWork func(ctx context.Context) error

// Schedule run onWork every interval until ctx is done, a round still running skips the next tick
func Schedule(ctx context.Context, name string, interval time.Duration, onWork OnWork) error {
	log := logger.FromContext(ctx).WithField("worker", name)

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(cron.Every(interval), cron.FuncJob(func() {
		if err := onWork(ctx); err != nil {
			log.WithError(err).Errorln("work failed")
		}
	}))

	log.Debugln("start, every", interval)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	log.Debugln("stopped")

	return nil
}
