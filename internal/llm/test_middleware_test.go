package llm

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"
)

// tagging wraps a client and prepends its tag to the reply text, so the
// application order of Wrap is observable.
type tagging struct {
	next Client
	tag  string
}

func (c *tagging) Name() string { return c.next.Name() }
func (c *tagging) Close() error { return c.next.Close() }
func (c *tagging) Generate(ctx context.Context, req Request) (*Result, error) {
	res, err := c.next.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	res.Text = c.tag + res.Text
	return res, nil
}

func tagMW(tag string) Middleware {
	return func(next Client) Client { return &tagging{next: next, tag: tag} }
}

func TestWrap_AppliesLeftToRight(t *testing.T) {
	inner := NewFakeClient().EnqueueText("x")
	cli := Wrap(inner, tagMW("A"), tagMW("B"))
	res, err := cli.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatal(err)
	}
	// A is outermost: it sees B's output.
	if res.Text != "ABx" {
		t.Fatalf("text = %q, want ABx", res.Text)
	}
}

func TestRateLimit_SpacesCalls(t *testing.T) {
	inner := NewFakeClient()
	cli := Wrap(inner, RateLimit(20, 1)) // 1 burst, ~50ms refill
	t.Cleanup(func() { _ = cli.Close() })

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 2; i++ {
		if _, err := cli.Generate(ctx, Request{}); err != nil {
			t.Fatal(err)
		}
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("second call not throttled: elapsed %v", elapsed)
	}
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	inner := NewFakeClient()
	cli := Wrap(inner, RateLimit(0, 0))
	start := time.Now()
	for i := 0; i < 5; i++ {
		if _, err := cli.Generate(context.Background(), Request{}); err != nil {
			t.Fatal(err)
		}
	}
	if elapsed := time.Since(start); elapsed > 20*time.Millisecond {
		t.Fatalf("disabled limiter should not block, elapsed %v", elapsed)
	}
}

func TestRateLimit_ContextCancel(t *testing.T) {
	inner := NewFakeClient()
	cli := Wrap(inner, RateLimit(0.1, 1)) // one token, very slow refill
	t.Cleanup(func() { _ = cli.Close() })

	if _, err := cli.Generate(context.Background(), Request{}); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if _, err := cli.Generate(ctx, Request{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestWithLogging_LogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	inner := NewFakeClient().
		EnqueueText(`{"status":"COMPLETE","message":"hi"}`).
		EnqueueError(errors.New("quota"))
	cli := Wrap(inner, WithLogging(logger))

	if _, err := cli.Generate(context.Background(), Request{Model: "gemini-3-pro-preview"}); err != nil {
		t.Fatal(err)
	}
	if _, err := cli.Generate(context.Background(), Request{Model: "gemini-3-pro-preview"}); err == nil {
		t.Fatal("expected scripted error")
	}
	out := buf.String()
	if !strings.Contains(out, "model=gemini-3-pro-preview") {
		t.Fatalf("log missing model: %s", out)
	}
	if !strings.Contains(out, "err=quota") {
		t.Fatalf("log missing error line: %s", out)
	}
}

func TestFakeClient_ScriptAndRecording(t *testing.T) {
	f := NewFakeClient().EnqueueText("one").EnqueueError(errors.New("bad"))
	if res, err := f.Generate(context.Background(), Request{Text: "a"}); err != nil || res.Text != "one" {
		t.Fatalf("first step = %v, %v", res, err)
	}
	if _, err := f.Generate(context.Background(), Request{Text: "b"}); err == nil {
		t.Fatal("second step should fail")
	}
	// Exhausted script keeps answering.
	if res, err := f.Generate(context.Background(), Request{Text: "c"}); err != nil || res.Text == "" {
		t.Fatalf("fallback step = %v, %v", res, err)
	}
	calls := f.Calls()
	if len(calls) != 3 || calls[0].Text != "a" || calls[2].Text != "c" {
		t.Fatalf("calls = %+v", calls)
	}
}
