package observer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"banking-client/internal/errs"
	"banking-client/internal/models/users"
)

// DefaultInterval replaces a non-positive polling interval.
const DefaultInterval = 30 * time.Second

// Refresher reloads the account balance, see screens.HomeScreen.
type Refresher interface {
	Refresh(ctx context.Context) (users.User, error)
}

// Observer polls the balance on a ticker and hands every fresh snapshot to
// the updates channel. It stops on Close, on ctx cancellation or when the
// session is gone.
type Observer struct {
	refresher  Refresher
	interval   time.Duration
	updates    chan users.User
	closeChan  chan struct{}
	closeOnce  sync.Once
	wg         *sync.WaitGroup
	logger     *slog.Logger
	errorCount int
}

func NewObserver(r Refresher, interval time.Duration, logger *slog.Logger) *Observer {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Observer{
		refresher: r,
		interval:  interval,
		updates:   make(chan users.User, 1),
		closeChan: make(chan struct{}),
		wg:        &sync.WaitGroup{},
		logger:    logger,
	}
}

// Updates delivers balance snapshots. It is closed when the observer stops.
func (o *Observer) Updates() <-chan users.User {
	return o.updates
}

func (o *Observer) Start(ctx context.Context) {
	o.wg.Add(1)
	go o.run(ctx)
}

func (o *Observer) Close() {
	o.closeOnce.Do(func() {
		close(o.closeChan)
	})

	o.wg.Wait()
}

func (o *Observer) run(ctx context.Context) {
	defer o.wg.Done()
	defer close(o.updates)

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	if !o.refresh(ctx) {
		return
	}

	for {
		select {
		case <-o.closeChan:
			o.log("balance observer stopped")
			return
		case <-ctx.Done():
			o.log("balance observer context done")
			return
		case <-ticker.C:
			if !o.refresh(ctx) {
				return
			}
		}
	}
}

// refresh reports whether polling should go on.
func (o *Observer) refresh(ctx context.Context) bool {
	user, err := o.refresher.Refresh(ctx)

	switch {
	case err == nil:
		o.errorCount = 0
	case errors.Is(err, errs.ErrNoSession) || errs.IsAuth(err):
		o.log(fmt.Sprintf("balance observer stops, session is gone - %v", err))
		return false
	case errors.Is(err, errs.ErrSubmitInProgress):
		return true
	default:
		o.errorCount++
		o.log(fmt.Sprintf("error by refresh balance (%d in a row) - %v", o.errorCount, err))
		return true
	}

	select {
	case o.updates <- user:
	case <-o.closeChan:
		return false
	case <-ctx.Done():
		return false
	}

	return true
}

func (o *Observer) log(msg string) {
	if o.logger != nil {
		o.logger.Info(msg)
	}
}
