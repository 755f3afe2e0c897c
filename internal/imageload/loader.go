// Package imageload runs card image retrievals in the background and
// reports each outcome tagged with the render pass that asked for it.
package imageload

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/sdui-go/interpreter/internal/widget"
)

// Completion is the terminal state of one retrieval.
type Completion struct {
	Pass  uuid.UUID
	Key   string
	Image widget.Image
}

// Loader starts retrievals and delivers their completions. Starting a
// retrieval for a new pass cancels the retrievals of the previous one;
// cancelled retrievals deliver nothing.
type Loader struct {
	fetcher Fetcher
	deliver func(Completion)
	logger  *slog.Logger

	base   context.Context
	mu     sync.Mutex
	pass   uuid.UUID
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New returns a loader. deliver is called from the retrieval goroutine.
func New(ctx context.Context, fetcher Fetcher, deliver func(Completion), logger *slog.Logger) *Loader {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		fetcher: fetcher,
		deliver: deliver,
		logger:  logger.With("component", "imageload"),
		base:    ctx,
	}
}

// Request starts retrieving url for the widget at key in pass.
func (l *Loader) Request(pass uuid.UUID, key, url string) {
	ctx := l.passContext(pass)
	if ctx == nil {
		return
	}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		img := widget.Image{URL: url}
		info, err := l.fetcher.Fetch(ctx, url)
		if ctx.Err() != nil {
			l.logger.Debug("image retrieval abandoned", "pass", pass.String(), "key", key)
			return
		}
		if err != nil {
			img.State = widget.ImageFailed
			img.Err = err.Error()
			l.logger.Debug("image retrieval failed", "url", url, "error", err)
		} else {
			img.State = widget.ImageLoaded
			img.Width, img.Height, img.Format = info.Width, info.Height, info.Format
		}
		if l.deliver != nil {
			l.deliver(Completion{Pass: pass, Key: key, Image: img})
		}
	}()
}

// passContext returns the context for pass. A pass other than the current
// one becomes current and the previous pass's context is cancelled. It
// returns nil once the loader's base context is done.
func (l *Loader) passContext(pass uuid.UUID) context.Context {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.base.Err() != nil {
		return nil
	}
	if l.ctx != nil && l.pass == pass {
		return l.ctx
	}
	if l.cancel != nil {
		l.cancel()
	}
	l.pass = pass
	l.ctx, l.cancel = context.WithCancel(l.base)
	return l.ctx
}

// Wait blocks until every started retrieval has finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Close cancels outstanding retrievals and waits for them.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.mu.Unlock()
	l.wg.Wait()
}
