package llm

import (
	"context"
	"log"
	"time"
)

// Middleware decorates a Client with cross-cutting behavior.
type Middleware func(Client) Client

// Wrap applies middlewares in left-to-right order:
// Wrap(inner, A, B) == A(B(inner)).
func Wrap(inner Client, mws ...Middleware) Client {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// RateLimit throttles calls through a token bucket. rps <= 0 disables
// the limiter and the middleware becomes a pass-through.
func RateLimit(rps float64, burst int) Middleware {
	return func(next Client) Client {
		return &rateLimited{next: next, rl: newRPSLimiter(rps, burst)}
	}
}

type rateLimited struct {
	next Client
	rl   *rpsLimiter
}

func (c *rateLimited) Name() string { return c.next.Name() }
func (c *rateLimited) Close() error {
	c.rl.Stop()
	return c.next.Close()
}

func (c *rateLimited) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := c.rl.Acquire(ctx); err != nil {
		return nil, err
	}
	return c.next.Generate(ctx, req)
}

// WithLogging logs one line per call with model, duration, and outcome.
// Pass nil to use log.Default().
func WithLogging(logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next Client) Client {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next Client
	log  *log.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	res, err := l.next.Generate(ctx, req)
	if err != nil {
		l.log.Printf("llm: %s model=%s turns=%d err=%v (%s)",
			l.next.Name(), req.Model, len(req.History)+1, err, time.Since(start).Round(time.Millisecond))
		return nil, err
	}
	l.log.Printf("llm: %s model=%s turns=%d reply=%dB links=%d (%s)",
		l.next.Name(), req.Model, len(req.History)+1, len(res.Text),
		len(res.Citations)+len(res.Retrieved), time.Since(start).Round(time.Millisecond))
	return res, nil
}
