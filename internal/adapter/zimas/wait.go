package zimas

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

var errConditionTimeout = errors.New("condition not met before timeout")

// pollUntil evaluates a boolean page expression with a bounded backoff poll.
// Every wait in the scraper goes through an explicit condition; there are no
// fixed sleeps used as synchronization.
func pollUntil(ctx context.Context, expr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	interval := 200 * time.Millisecond
	for {
		var ok bool
		if err := chromedp.Run(ctx, chromedp.Evaluate(expr, &ok)); err != nil {
			return err
		}
		if ok {
			return nil
		}
		if time.Now().Add(interval).After(deadline) {
			return errConditionTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
		if interval < time.Second {
			interval *= 2
		}
	}
}

// networkWatcher tracks inflight requests from CDP network events so page
// transitions can wait on network quiet instead of sleeping.
type networkWatcher struct {
	mu       sync.Mutex
	inflight map[network.RequestID]struct{}
	last     time.Time
}

// newNetworkWatcher attaches to the browser context's event stream. The
// caller must also run network.Enable on the same context.
func newNetworkWatcher(ctx context.Context) *networkWatcher {
	w := &networkWatcher{
		inflight: make(map[network.RequestID]struct{}),
		last:     time.Now(),
	}
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		switch e := ev.(type) {
		case *network.EventRequestWillBeSent:
			w.mu.Lock()
			w.inflight[e.RequestID] = struct{}{}
			w.last = time.Now()
			w.mu.Unlock()
		case *network.EventLoadingFinished:
			w.done(e.RequestID)
		case *network.EventLoadingFailed:
			w.done(e.RequestID)
		}
	})
	return w
}

func (w *networkWatcher) done(id network.RequestID) {
	w.mu.Lock()
	delete(w.inflight, id)
	w.last = time.Now()
	w.mu.Unlock()
}

func (w *networkWatcher) idle(quietFor time.Duration) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.inflight) == 0 && time.Since(w.last) >= quietFor
}

// waitQuiet blocks until no request has been in flight for quietFor, or the
// timeout elapses. Timing out is not an error; the portal holds long-polling
// connections open on some pages.
func (w *networkWatcher) waitQuiet(ctx context.Context, quietFor, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for !w.idle(quietFor) {
		if time.Now().After(deadline) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(100 * time.Millisecond):
		}
	}
}
