package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor keeps the last observed database status, refreshed on a cron schedule so the
// health endpoint never blocks on the pool.
type Monitor struct {
	pg Pinger

	status      Status
	mu          sync.RWMutex
	interval    time.Duration
	pingTimeout time.Duration
	cron        *cron.Cron
	logger      *zap.Logger
}

func New(pg Pinger, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval < time.Second {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		pg:          pg,
		interval:    interval,
		pingTimeout: 3 * time.Second,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger,
	}
}

// Start takes a first reading synchronously and then schedules the refresh.
func (m *Monitor) Start() error {
	m.Refresh()
	schedule := fmt.Sprintf("@every %ds", int(m.interval.Seconds()))
	if _, err := m.cron.AddFunc(schedule, m.Refresh); err != nil {
		return err
	}
	m.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running check, bounded by ctx.
func (m *Monitor) Stop(ctx context.Context) {
	stopCtx := m.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.PostgreSQL
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) Refresh() {
	status := Status{
		PostgreSQL: m.checkPostgres(),
		LastCheck:  time.Now(),
	}

	m.mu.Lock()
	previous := m.status
	m.status = status
	m.mu.Unlock()

	if !previous.LastCheck.IsZero() && previous.PostgreSQL != status.PostgreSQL {
		m.logger.Warn("postgres status changed", zap.Bool("online", status.PostgreSQL))
	}
}

func (m *Monitor) checkPostgres() bool {
	if m.pg == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.pingTimeout)
	defer cancel()
	if err := m.pg.Ping(ctx); err != nil {
		m.logger.Debug("postgres ping failed", zap.Error(err))
		return false
	}
	return true
}
