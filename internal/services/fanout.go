package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gamehub/internal/apperr"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

type FanoutOptions struct {
	Limit     int           // store calls in flight across the process
	ChunkSize int           // ids per batch query
	Timeout   time.Duration // per store call, 0 disables
	Retries   int           // extra attempts for reads
	Backoff   time.Duration // multiplied by the attempt number
}

func DefaultFanoutOptions() FanoutOptions {
	return FanoutOptions{
		Limit:     4,
		ChunkSize: 200,
		Timeout:   3 * time.Second,
		Retries:   2,
		Backoff:   50 * time.Millisecond,
	}
}

// Fanout bounds read-path store traffic. Batch lookups are chunked, every
// attempt takes a slot from a shared budget, reads are retried on transient
// failures and every call runs under its own timeout. Writes only get the
// timeout.
type Fanout struct {
	opts FanoutOptions
	sem  *semaphore.Weighted
}

func NewFanout(opts FanoutOptions) *Fanout {
	if opts.Limit <= 0 {
		opts.Limit = 1
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultFanoutOptions().ChunkSize
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	return &Fanout{opts: opts, sem: semaphore.NewWeighted(int64(opts.Limit))}
}

func (f *Fanout) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.opts.Timeout > 0 {
		return context.WithTimeout(ctx, f.opts.Timeout)
	}
	return context.WithCancel(ctx)
}

// timed runs one store call under its own timeout. Multi-step writes wrap
// each step separately so a slow step does not eat into the next one.
func timed[T any](ctx context.Context, f *Fanout, call func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()
	return call(ctx)
}

func timedExec(ctx context.Context, f *Fanout, call func(ctx context.Context) error) error {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()
	return call(ctx)
}

// retryable reports whether a failed read may succeed when repeated.
func retryable(err error) bool {
	return errors.Is(err, apperr.ErrNetwork) || errors.Is(err, apperr.ErrStore) ||
		errors.Is(err, context.DeadlineExceeded)
}

// read runs a single read lookup with budget, timeout and bounded retry.
func read[T any](ctx context.Context, f *Fanout, lookup string, call func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt <= f.opts.Retries; attempt++ {
		if attempt > 0 {
			lookupRetries.WithLabelValues(lookup).Inc()
			select {
			case <-ctx.Done():
				return zero, errors.Join(lastErr, ctx.Err())
			case <-time.After(f.opts.Backoff * time.Duration(attempt)):
			}
		}

		if err := f.sem.Acquire(ctx, 1); err != nil {
			return zero, errors.Join(lastErr, err)
		}
		start := time.Now()
		cctx, cancel := f.withTimeout(ctx)
		v, err := call(cctx)
		cancel()
		f.sem.Release(1)
		lookupDuration.WithLabelValues(lookup).Observe(time.Since(start).Seconds())

		if err == nil {
			return v, nil
		}
		lastErr = err
		if !retryable(err) || ctx.Err() != nil {
			break
		}
	}
	return zero, lastErr
}

// batch resolves ids in chunks. Chunks that fail are left out of the result and
// their errors are joined; the caller decides what a missing id means.
func batch[V any](ctx context.Context, f *Fanout, lookup string, ids []uint, fetch func(context.Context, []uint) (map[uint]V, error)) (map[uint]V, error) {
	out := make(map[uint]V, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	chunks := chunkIDs(ids, f.opts.ChunkSize)
	results := make([]map[uint]V, len(chunks))
	errs := make([]error, len(chunks))

	var g errgroup.Group
	g.SetLimit(f.opts.Limit)
	for i, chunk := range chunks {
		g.Go(func() error {
			results[i], errs[i] = read(ctx, f, lookup, func(ctx context.Context) (map[uint]V, error) {
				return fetch(ctx, chunk)
			})
			return nil // chunk failures are isolated
		})
	}
	_ = g.Wait()

	for _, r := range results {
		for k, v := range r {
			out[k] = v
		}
	}
	return out, errors.Join(errs...)
}

// settle logs and counts a degraded lookup and always hands back a usable map.
func settle[V any](ctx context.Context, lookup string, m map[uint]V, err error) map[uint]V {
	if err != nil {
		enrichmentDegraded.WithLabelValues(lookup).Inc()
		slog.WarnContext(ctx, "enrichment degraded", "lookup", lookup, "error", err)
	}
	if m == nil {
		m = map[uint]V{}
	}
	return m
}

func chunkIDs(ids []uint, size int) [][]uint {
	var chunks [][]uint
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// uniqueIDs keeps the first occurrence of every non-zero id.
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
