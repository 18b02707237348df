package llm

import (
	"context"
	"sync"
)

// FakeClient is an offline Client for tests: scripted results handed
// out in order, every request recorded.
type FakeClient struct {
	mu     sync.Mutex
	script []fakeStep
	calls  []Request
}

type fakeStep struct {
	res *Result
	err error
}

func NewFakeClient() *FakeClient { return &FakeClient{} }

// EnqueueText queues a reply whose text is raw.
func (f *FakeClient) EnqueueText(raw string) *FakeClient {
	return f.EnqueueResult(&Result{Text: raw})
}

// EnqueueResult queues a full result, grounding metadata included.
func (f *FakeClient) EnqueueResult(res *Result) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script = append(f.script, fakeStep{res: res})
	return f
}

// EnqueueError queues a failing call.
func (f *FakeClient) EnqueueError(err error) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script = append(f.script, fakeStep{err: err})
	return f
}

func (f *FakeClient) Name() string { return "fake" }
func (f *FakeClient) Close() error { return nil }

// Generate pops the next scripted step. An exhausted script returns a
// minimal COMPLETE reply so incidental calls in tests stay harmless.
func (f *FakeClient) Generate(_ context.Context, req Request) (*Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if len(f.script) == 0 {
		return &Result{Text: `{"status":"COMPLETE","message":"ok"}`}, nil
	}
	step := f.script[0]
	f.script = f.script[1:]
	if step.err != nil {
		return nil, step.err
	}
	return step.res, nil
}

// Calls returns a copy of every request seen so far.
func (f *FakeClient) Calls() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.calls...)
}

// CallCount reports how many calls were issued.
func (f *FakeClient) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
