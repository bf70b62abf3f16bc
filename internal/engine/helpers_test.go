package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/applaudhq/applaud/internal/domain"
)

// fakeScheduler drives time by hand. Callbacks run synchronously, in firing
// order, outside the scheduler lock so they can schedule further timers.
type fakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	s       *fakeScheduler
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{}
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{s: s, at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (s *fakeScheduler) advance(d time.Duration) {
	s.mu.Lock()
	end := s.now + d
	for {
		var next *fakeTimer
		for _, t := range s.timers {
			if t.fired || t.stopped || t.at > end {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			break
		}
		s.now = next.at
		next.fired = true
		fn := next.fn
		s.mu.Unlock()
		fn()
		s.mu.Lock()
	}
	s.now = end
	s.mu.Unlock()
}

type fakeAbuse struct {
	mu      sync.Mutex
	abusive bool
	err     error
	calls   int
}

func (f *fakeAbuse) CheckAbuse(ctx context.Context, text string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.abusive, f.err
}

func (f *fakeAbuse) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeAbuse) set(abusive bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.abusive = abusive
	f.err = err
}

type qualityAnswer struct {
	report *domain.QualityReport
	err    error
}

type qualityCall struct {
	text string
	resp chan qualityAnswer
}

func (c *qualityCall) answer(report *domain.QualityReport, err error) {
	c.resp <- qualityAnswer{report: report, err: err}
}

type fakeQuality struct {
	calls chan *qualityCall
}

func newFakeQuality() *fakeQuality {
	return &fakeQuality{calls: make(chan *qualityCall, 16)}
}

func (f *fakeQuality) CheckQuality(ctx context.Context, text string) (*domain.QualityReport, error) {
	c := &qualityCall{text: text, resp: make(chan qualityAnswer, 1)}
	f.calls <- c
	a := <-c.resp
	return a.report, a.err
}

func (f *fakeQuality) nextCall(t *testing.T) *qualityCall {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("expected a quality call, got none")
		return nil
	}
}

func (f *fakeQuality) expectNoCall(t *testing.T) {
	t.Helper()
	select {
	case c := <-f.calls:
		t.Fatalf("unexpected quality call for %q", c.text)
	case <-time.After(100 * time.Millisecond):
	}
}

type rewriteAnswer struct {
	rewrite string
	err     error
}

type rewriteCall struct {
	text    string
	failing []domain.Criterion
	resp    chan rewriteAnswer
}

func (c *rewriteCall) answer(rewrite string, err error) {
	c.resp <- rewriteAnswer{rewrite: rewrite, err: err}
}

type fakeRewriter struct {
	calls chan *rewriteCall
}

func newFakeRewriter() *fakeRewriter {
	return &fakeRewriter{calls: make(chan *rewriteCall, 16)}
}

func (f *fakeRewriter) Rewrite(ctx context.Context, text string, failing []domain.Criterion) (string, error) {
	c := &rewriteCall{text: text, failing: failing, resp: make(chan rewriteAnswer, 1)}
	f.calls <- c
	a := <-c.resp
	return a.rewrite, a.err
}

func (f *fakeRewriter) nextCall(t *testing.T) *rewriteCall {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("expected a rewrite call, got none")
		return nil
	}
}

func (f *fakeRewriter) expectNoCall(t *testing.T) {
	t.Helper()
	select {
	case c := <-f.calls:
		t.Fatalf("unexpected rewrite call for %q", c.text)
	case <-time.After(100 * time.Millisecond):
	}
}

type completeAnswer struct {
	completion string
	err        error
}

type completeCall struct {
	text    string
	failing []domain.Criterion
	target  domain.Criterion
	resp    chan completeAnswer
}

func (c *completeCall) answer(completion string, err error) {
	c.resp <- completeAnswer{completion: completion, err: err}
}

type fakeCompleter struct {
	calls chan *completeCall
}

func newFakeCompleter() *fakeCompleter {
	return &fakeCompleter{calls: make(chan *completeCall, 16)}
}

func (f *fakeCompleter) Complete(ctx context.Context, text string, failing []domain.Criterion, target domain.Criterion) (string, error) {
	c := &completeCall{text: text, failing: failing, target: target, resp: make(chan completeAnswer, 1)}
	f.calls <- c
	a := <-c.resp
	return a.completion, a.err
}

func (f *fakeCompleter) nextCall(t *testing.T) *completeCall {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("expected a completion call, got none")
		return nil
	}
}

// drain discards completion calls issued as a side effect of earlier cycles.
func (f *fakeCompleter) drain() {
	for {
		select {
		case <-f.calls:
		default:
			return
		}
	}
}

func (f *fakeCompleter) expectNoCall(t *testing.T) {
	t.Helper()
	select {
	case c := <-f.calls:
		t.Fatalf("unexpected completion call for %q", c.text)
	case <-time.After(100 * time.Millisecond):
	}
}

type testRig struct {
	sched     *fakeScheduler
	abuse     *fakeAbuse
	quality   *fakeQuality
	rewriter  *fakeRewriter
	completer *fakeCompleter
	session   *Session
}

func newTestRig() *testRig {
	r := &testRig{
		sched:     newFakeScheduler(),
		abuse:     &fakeAbuse{},
		quality:   newFakeQuality(),
		rewriter:  newFakeRewriter(),
		completer: newFakeCompleter(),
	}
	r.session = NewSession(Deps{
		Abuse:     r.abuse,
		Quality:   r.quality,
		Rewriter:  r.rewriter,
		Completer: r.completer,
		Scheduler: r.sched,
		Intn:      func(n int) int { return 0 },
	}, "Priya Sharma")
	return r
}

// waitSettled blocks until the in-flight validation pair has been applied,
// i.e. the checking indicator cleared.
func (r *testRig) waitSettled(t *testing.T) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !r.session.Snapshot().Checking {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("validation never settled")
}

// runCycle drives one full validation cycle to completion: debounce, paired
// requests, staggered reveal and score animation.
func (r *testRig) runCycle(t *testing.T, text string, rep *domain.QualityReport) {
	t.Helper()
	r.session.OnTextChange(text)
	r.sched.advance(validationDebounce)
	r.quality.nextCall(t).answer(rep, nil)
	r.waitSettled(t)
	r.sched.advance(5 * time.Second)
}

func passMap(beSpecific, highlightImpact, acknowledgeEffort, reinforceConsistency bool) map[domain.Criterion]bool {
	return map[domain.Criterion]bool{
		domain.BeSpecific:           beSpecific,
		domain.HighlightImpact:      highlightImpact,
		domain.AcknowledgeEffort:    acknowledgeEffort,
		domain.ReinforceConsistency: reinforceConsistency,
	}
}

func qualityReport(pass map[domain.Criterion]bool, gt domain.GuidanceType, guidance string) *domain.QualityReport {
	scores := make(map[domain.Criterion]float64, len(pass))
	for c, ok := range pass {
		if ok {
			scores[c] = 0.9
		} else {
			scores[c] = 0.3
		}
	}
	return &domain.QualityReport{
		Pass:         pass,
		Scores:       scores,
		GuidanceType: gt,
		Guidance:     guidance,
	}
}

func statusOf(s State, c domain.Criterion) domain.RuleStatus {
	for _, it := range s.Criteria {
		if it.Label == c {
			return it.Status
		}
	}
	return ""
}
