package main

import (
	"context"
	"flag"
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/rendalink/locador/internal/app"
	"github.com/rendalink/locador/internal/app/service/billingjob"
	cfgpkg "github.com/rendalink/locador/pkg/config"
)

// creditjob runs the credit consumption batch: one pass by default, or
// continuously on the configured interval with --worker. The intended
// production cadence is one pass per day.
func main() {
	worker := flag.Bool("worker", false, "run continuously using the configured interval")
	flag.Parse()

	var failed atomic.Bool
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	a := fx.New(
		app.CoreModule,
		fx.Invoke(func(lc fx.Lifecycle, sd fx.Shutdowner, job *billingjob.Service, cfg *cfgpkg.Config, log *zap.SugaredLogger) {
			stop := make(chan struct{})

			runOnce := func() {
				start := time.Now()
				summary, err := job.Run(context.Background())
				if err != nil {
					failed.Store(true)
					log.Errorw("job_failed", "job", "consume_credits", "latency", time.Since(start).String(), "err", err)
					return
				}
				log.Infow("job_completed", "job", "consume_credits",
					"latency", time.Since(start).String(),
					"processed", summary.ProcessedCount, "blocked", summary.BlockedCount)
			}

			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						runOnce()
						if !*worker {
							_ = sd.Shutdown()
							return
						}
						interval := time.Duration(cfg.Jobs.ConsumeCreditsIntervalHours) * time.Hour
						ticker := time.NewTicker(interval)
						defer ticker.Stop()
						for {
							select {
							case <-stop:
								return
							case <-ticker.C:
								runOnce()
							}
						}
					}()
					return nil
				},
				OnStop: func(context.Context) error {
					close(stop)
					return nil
				},
			})
		}),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), app.DefaultStartTimeout)
	defer cancel()
	if err := a.Start(startCtx); err != nil {
		zap.NewExample().Sugar().Errorf("failed to start job: %v", err)
		exitCode = 1
		return
	}

	<-a.Done()

	stopCtx, cancel2 := context.WithTimeout(context.Background(), app.DefaultStopTimeout)
	defer cancel2()
	if err := a.Stop(stopCtx); err != nil {
		zap.NewExample().Sugar().Errorf("failed to stop job: %v", err)
		exitCode = 1
		return
	}
	if failed.Load() {
		exitCode = 1
	}
}
