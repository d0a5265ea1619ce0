package job

import (
	"context"
	"fmt"
	"sync"
	"time"

	"insider-conviction/internal/scoring/service"
	"insider-conviction/pkg/logger"
	"insider-conviction/pkg/utils"

	"github.com/robfig/cron/v3"
)

// ScoringJob runs the scoring cycle on a cron schedule. A cycle still running
// when the next one is due makes that run a no-op.
type ScoringJob struct {
	cron    *cron.Cron
	service service.ScoringService
	timeout time.Duration
	logger  *logger.Logger

	mu  sync.Mutex
	ctx context.Context
}

// NewScoringJob parses schedule (six fields, seconds first) in the named time zone.
func NewScoringJob(schedule string, timezone string, timeout time.Duration, svc service.ScoringService, log *logger.Logger) (*ScoringJob, error) {
	loc := utils.GetMarketTimeLocation()
	if timezone != "" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
		}
		loc = l
	}

	cl := cronLogger{log: log}
	j := &ScoringJob{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		service: svc,
		timeout: timeout,
		logger:  log,
		ctx:     context.Background(),
	}
	if _, err := j.cron.AddFunc(schedule, j.run); err != nil {
		return nil, fmt.Errorf("failed to parse scoring schedule %q: %w", schedule, err)
	}
	return j, nil
}

// Start begins the schedule. Cycles run with a context derived from ctx.
func (j *ScoringJob) Start(ctx context.Context) {
	j.mu.Lock()
	j.ctx = ctx
	j.mu.Unlock()

	j.cron.Start()
	if entries := j.cron.Entries(); len(entries) > 0 {
		j.logger.Info("Scoring job started", logger.Field("next_run", entries[0].Next))
	}
}

// Stop halts the schedule and waits for a running cycle to finish.
func (j *ScoringJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Scoring job stopped")
}

func (j *ScoringJob) run() {
	j.mu.Lock()
	parent := j.ctx
	j.mu.Unlock()

	ctx, cancel := context.WithTimeout(parent, j.timeout)
	defer cancel()

	report, err := j.service.RunCycle(ctx)
	if err != nil {
		j.logger.Error("Scoring cycle failed", logger.ErrorField(err))
		return
	}
	j.logger.Info("Scoring cycle finished",
		logger.IntField("scored", report.Scored),
		logger.IntField("alerted", report.Alerted),
		logger.Field("duration", report.Duration))
}

// cronLogger routes cron's own messages into the service logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
