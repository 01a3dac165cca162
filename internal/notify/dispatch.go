package notify

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// Multi fans an event out to every dispatcher and collects their failures.
type Multi []Dispatcher

func (m Multi) Dispatch(ctx context.Context, evt Event) error {
	var result *multierror.Error
	for _, d := range m {
		if err := d.Dispatch(ctx, evt); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Async hands events to the wrapped dispatcher on a separate goroutine so the
// caller never waits on a broker. Errors are logged.
type Async struct {
	next    Dispatcher
	logger  hclog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAsync(next Dispatcher, logger hclog.Logger, timeout time.Duration) *Async {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Async{next: next, logger: logger, timeout: timeout}
}

// Dispatch always returns nil; the request context is not inherited because
// the request usually finishes before delivery does.
func (a *Async) Dispatch(_ context.Context, evt Event) error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		if err := a.next.Dispatch(ctx, evt); err != nil {
			a.logger.Warn("event dispatch failed", "event_id", evt.ID, "type", string(evt.Type), "match_id", evt.MatchID, "error", err)
		}
	}()
	return nil
}

// Wait blocks until in-flight dispatches finish.
func (a *Async) Wait() {
	a.wg.Wait()
}
