// Package sdk acquires the Razorpay checkout script before a checkout starts.
package sdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Loader reports whether the script at src is available. It never returns an error.
type Loader interface {
	Load(ctx context.Context, src string) bool
	Script(src string) ([]byte, bool)
}

type scriptLoaderImpl struct {
	httpClient *http.Client
	log        *zap.SugaredLogger

	group singleflight.Group

	mu      sync.RWMutex
	scripts map[string][]byte
}

func NewScriptLoader(timeout time.Duration, log *zap.SugaredLogger) Loader {
	return &scriptLoaderImpl{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:     log,
		scripts: make(map[string][]byte),
	}
}

// Load fetches src once per process. Failures are not cached so the next call retries.
// The shared fetch is detached from the caller's cancellation and bounded by the client
// timeout; each caller stops waiting when its own ctx is done.
func (l *scriptLoaderImpl) Load(ctx context.Context, src string) bool {
	if _, ok := l.Script(src); ok {
		return true
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(src, func() (any, error) {
		if _, ok := l.Script(src); ok {
			return nil, nil
		}

		body, err := l.fetch(fetchCtx, src)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.scripts[src] = body
		l.mu.Unlock()
		return nil, nil
	})

	select {
	case <-ctx.Done():
		l.log.Warnw("checkout script load abandoned", "src", src, "error", ctx.Err())
		return false
	case res := <-ch:
		if res.Err != nil {
			l.log.Warnw("checkout script load failed", "src", src, "error", res.Err)
			return false
		}
		return true
	}
}

func (l *scriptLoaderImpl) Script(src string) ([]byte, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	body, ok := l.scripts[src]
	return body, ok
}

func (l *scriptLoaderImpl) fetch(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read script body: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty script body")
	}

	return body, nil
}
