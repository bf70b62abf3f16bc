// Package engine implements the interactive writing-quality coaching loop
// behind the appreciation editor: a debounced validation pipeline with
// last-submit-wins cancellation, the five-criterion state machine with its
// staggered reveal, weighted scoring, guidance selection, proactive rewrites
// and the independent ghost-text autocomplete pipeline.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/applaudhq/applaud/internal/domain"
)

const (
	validationDebounce   = 1700 * time.Millisecond
	autocompleteDebounce = 500 * time.Millisecond
	criterionStagger     = 100 * time.Millisecond
	scoreTickInterval    = 25 * time.Millisecond

	minValidateLen     = 2
	minAutocompleteLen = 10
)

// AbuseChecker reports whether text contains abusive language.
type AbuseChecker interface {
	CheckAbuse(ctx context.Context, text string) (bool, error)
}

// QualityChecker scores text against the four quality rules. A nil report
// with a nil error means the service declined to judge (success=false); the
// caller fails open.
type QualityChecker interface {
	CheckQuality(ctx context.Context, text string) (*domain.QualityReport, error)
}

// Rewriter produces an AI rewrite targeting the failing quality rules. An
// empty rewrite with a nil error means no rewrite was offered.
type Rewriter interface {
	Rewrite(ctx context.Context, text string, failing []domain.Criterion) (string, error)
}

// Completer produces an inline continuation for the draft, optionally aimed
// at one criterion.
type Completer interface {
	Complete(ctx context.Context, text string, failing []domain.Criterion, target domain.Criterion) (string, error)
}

// Deps are the collaborators a session needs. Intn is the random index source
// for affirmation picks.
type Deps struct {
	Abuse     AbuseChecker
	Quality   QualityChecker
	Rewriter  Rewriter
	Completer Completer
	Scheduler Scheduler
	Intn      func(n int) int
}

// State is a render-safe copy of the session for handlers and components.
type State struct {
	Employee         string
	Text             string
	Checking         bool
	Criteria         [5]domain.GuideItem
	Score            int
	ScoreBand        string
	ScoreFraction    float64
	GuidanceKind     domain.GuidanceKind
	GuidanceType     domain.GuidanceType
	GuidanceText     string
	Congratulated    bool
	AIText           string
	ShowAISuggestion bool
	GhostText        string
	CanSubmit        bool
}

// Session is the aggregate state of one appreciation draft. Every mutation —
// user events, debounce firings, staggered reveals, score ticks and response
// deliveries — runs under mu, and every scheduled or in-flight callback
// carries the generation (and, per pipeline, the sequence number) it was
// issued under. A mismatch on delivery means the callback is stale and is
// dropped, which is the whole cancellation model.
type Session struct {
	mu   sync.Mutex
	deps Deps

	employee string
	closed   bool

	userText         string
	lastValidatedKey string

	criteria *criterionSet
	score    scoreAnimator
	guidance guidanceState

	congratulated    bool
	aiText           string
	showAISuggestion bool
	checking         bool

	ghostText string
	phrases   []phraseBinding

	lastRewriteAtCount int

	gen    int
	valSeq int
	acSeq  int
	rwSeq  int

	valDebounce Timer
	acDebounce  Timer
}

// NewSession opens an editor session for the chosen colleague.
func NewSession(deps Deps, employee string) *Session {
	return &Session{
		deps:               deps,
		employee:           employee,
		criteria:           newCriterionSet(),
		lastRewriteAtCount: -1,
	}
}

// OnTextChange is called on every text-change event. Empty text resets the
// session immediately; otherwise both debounce pipelines re-arm.
func (s *Session) OnTextChange(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	prev := s.userText
	s.userText = text

	if s.ghostText != "" && !ghostSurvivesEdit(prev, text) {
		s.ghostText = ""
	}

	if strings.TrimSpace(text) == "" {
		s.resetLocked()
		return
	}

	gen := s.gen
	if s.valDebounce != nil {
		s.valDebounce.Stop()
	}
	s.valDebounce = s.deps.Scheduler.AfterFunc(validationDebounce, func() {
		s.fireValidation(gen)
	})

	if s.acDebounce != nil {
		s.acDebounce.Stop()
	}
	s.acDebounce = s.deps.Scheduler.AfterFunc(autocompleteDebounce, func() {
		s.fireAutocomplete(gen)
	})
}

// fireValidation runs when the main debounce window closes.
func (s *Session) fireValidation(gen int) {
	s.mu.Lock()

	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}

	text := strings.TrimSpace(s.userText)
	if utf8.RuneCountInString(text) < minValidateLen {
		s.mu.Unlock()
		return
	}

	key := Normalize(text)
	if key == s.lastValidatedKey {
		// Whitespace or trailing-punctuation edit; no request.
		s.mu.Unlock()
		return
	}
	s.lastValidatedKey = key

	s.valSeq++
	seq := s.valSeq
	s.checking = true
	s.mu.Unlock()

	go s.validate(gen, seq, text)
}

// validate issues the abuse and quality checks concurrently and delivers the
// merged pair once both are in.
func (s *Session) validate(gen, seq int, text string) {
	ctx := context.Background()

	var (
		abusive  bool
		abuseErr error
		report   *domain.QualityReport
		qualErr  error
		wg       sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		abusive, abuseErr = s.deps.Abuse.CheckAbuse(ctx, text)
	}()
	go func() {
		defer wg.Done()
		report, qualErr = s.deps.Quality.CheckQuality(ctx, text)
	}()
	wg.Wait()

	s.applyValidation(gen, seq, abusive, report, abuseErr, qualErr)
}

func (s *Session) applyValidation(gen, seq int, abusive bool, report *domain.QualityReport, abuseErr, qualErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.gen || seq != s.valSeq {
		// Superseded by a newer submit; only the latest pair may land.
		return
	}

	s.checking = false

	if abuseErr != nil || qualErr != nil {
		// Fail open: prior criterion and score state stays usable.
		if abuseErr != nil {
			slog.Error(fmt.Sprintf("Error occured: %s", abuseErr.Error()))
		}
		if qualErr != nil {
			slog.Error(fmt.Sprintf("Error occured: %s", qualErr.Error()))
		}
		return
	}

	if abusive {
		s.criteria.applyAbuseVerdict(true)
		s.retargetScoreLocked(gen, 0)
		s.showAISuggestion = false
		s.aiText = ""
		s.lastRewriteAtCount = -1
		s.congratulated = false
		s.ghostText = ""
		s.guidance = guidanceState{Kind: domain.KindBlocked, Text: abusiveGuidance}
		return
	}

	s.criteria.applyAbuseVerdict(false)

	if report == nil {
		return
	}

	if s.congratulated && s.criteria.allPassed() {
		// Perfect state is sticky: a late same-or-worse cycle must not
		// downgrade any criterion or the congratulation.
		return
	}

	s.applyStaggered(gen, qualityUpdates(report.Pass), func() {
		s.finishValidationCycle(gen, report)
	})
}

// applyStaggered schedules the quality statuses to flip one at a time in
// reveal order, then runs onComplete under the lock. Caller holds the lock.
func (s *Session) applyStaggered(gen int, updates []statusUpdate, onComplete func()) {
	for i, u := range updates {
		u := u
		last := i == len(updates)-1
		s.deps.Scheduler.AfterFunc(time.Duration(i)*criterionStagger, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.closed || gen != s.gen {
				return
			}
			status := domain.StatusError
			if u.pass {
				status = domain.StatusSuccess
			}
			s.criteria.set(u.label, status)
			if last && onComplete != nil {
				onComplete()
			}
		})
	}
}

// finishValidationCycle runs once all five statuses are final for the cycle:
// scoring, the auto-rewrite decision, then guidance selection. Lock held.
func (s *Session) finishValidationCycle(gen int, report *domain.QualityReport) {
	s.retargetScoreLocked(gen, s.criteria.weightedScore())

	total := s.criteria.countPassed(true)

	// Drop the suggestion when the draft regresses below the floor and reset
	// the marker so recovery re-triggers.
	if total < autoRewriteFloor {
		s.showAISuggestion = false
		s.lastRewriteAtCount = -1
	}

	if shouldAutoRewrite(total, s.lastRewriteAtCount) {
		s.lastRewriteAtCount = total
		s.requestRewriteLocked(gen)
	}

	if total == 5 || report.GuidanceType == domain.GuidanceNone {
		s.congratulated = true
		s.showAISuggestion = false
		s.ghostText = ""
		s.guidance = guidanceState{Kind: domain.KindCongratulated, Text: pickAffirmation(s.deps.Intn)}
		return
	}

	s.congratulated = false
	if report.GuidanceType == domain.GuidanceSuggestion {
		s.guidance = guidanceState{Kind: domain.KindSuggesting, Type: report.GuidanceType, Text: report.Guidance}
		return
	}

	s.guidance = guidanceState{Kind: domain.KindCoaching, Type: report.GuidanceType, Text: report.Guidance}
	s.learnPhrasesLocked(report)
}

// learnPhrasesLocked associates any "Consider phrases such as:" list with the
// weakest failing criterion so autocomplete can target it later.
func (s *Session) learnPhrasesLocked(report *domain.QualityReport) {
	_, phrases := SplitGuidance(report.Guidance)
	if len(phrases) == 0 {
		return
	}
	weakest, ok := lowestScoringFailing(report)
	if !ok {
		return
	}
	for _, p := range phrases {
		s.phrases = append(s.phrases, phraseBinding{phrase: p, criterion: weakest})
	}
}

// requestRewriteLocked issues a proactive rewrite for the failing quality
// rules. Lock held.
func (s *Session) requestRewriteLocked(gen int) {
	text := strings.TrimSpace(s.userText)
	if utf8.RuneCountInString(text) < minRewriteLen {
		return
	}
	if s.criteria.allPassed() || s.congratulated {
		return
	}

	failing := s.criteria.failingQuality()
	s.rwSeq++
	seq := s.rwSeq
	s.checking = true

	go s.rewrite(gen, seq, text, failing)
}

func (s *Session) rewrite(gen, seq int, text string, failing []domain.Criterion) {
	rewrite, err := s.deps.Rewriter.Rewrite(context.Background(), text, failing)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.gen || seq != s.rwSeq {
		return
	}

	s.checking = false

	if err != nil {
		slog.Error(fmt.Sprintf("Error occured: %s", err.Error()))
		return
	}
	if rewrite == "" {
		return
	}
	if s.congratulated {
		// The draft reached perfect while the rewrite was in flight.
		return
	}

	s.aiText = rewrite
	s.showAISuggestion = true
}

// RewriteWithAI is the user-invoked rewrite: same contract as the proactive
// one minus the passed-count floor.
func (s *Session) RewriteWithAI() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.requestRewriteLocked(s.gen)
}

// UseAIText replaces the draft with the staged suggestion and re-validates
// its quality.
func (s *Session) UseAIText() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.aiText == "" {
		return
	}

	s.userText = s.aiText
	s.showAISuggestion = false
	s.ghostText = ""
	s.checking = true

	text := strings.TrimSpace(s.userText)
	s.lastValidatedKey = Normalize(text)

	gen := s.gen
	s.valSeq++
	seq := s.valSeq

	go s.revalidateQuality(gen, seq, text)
}

// revalidateQuality is the quality-only cycle that follows applying a
// suggestion; the abuse verdict carries over from the last full cycle.
func (s *Session) revalidateQuality(gen, seq int, text string) {
	report, err := s.deps.Quality.CheckQuality(context.Background(), text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.gen || seq != s.valSeq {
		return
	}

	s.checking = false

	if err != nil {
		slog.Error(fmt.Sprintf("Error occured: %s", err.Error()))
		return
	}
	if report == nil {
		return
	}

	s.applyStaggered(gen, qualityUpdates(report.Pass), func() {
		s.retargetScoreLocked(gen, s.criteria.weightedScore())

		if s.criteria.countPassed(true) == 5 {
			s.congratulated = true
			s.ghostText = ""
			s.guidance = guidanceState{Kind: domain.KindCongratulated, Text: pickAffirmation(s.deps.Intn)}
			return
		}

		s.congratulated = false
		kind := domain.KindCoaching
		if report.GuidanceType == domain.GuidanceSuggestion {
			kind = domain.KindSuggesting
		}
		s.guidance = guidanceState{Kind: kind, Type: report.GuidanceType, Text: report.Guidance}
	})
}

// fireAutocomplete runs when the autocomplete debounce window closes. Its
// request lifecycle is independent of the validation pipeline.
func (s *Session) fireAutocomplete(gen int) {
	s.mu.Lock()

	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}

	text := strings.TrimSpace(s.userText)
	if utf8.RuneCountInString(text) < minAutocompleteLen || s.congratulated {
		s.mu.Unlock()
		return
	}

	failing := s.criteria.failingQuality()
	if len(failing) == 0 {
		s.mu.Unlock()
		return
	}

	var target domain.Criterion
	if c, ok := matchPhrase(s.phrases, text); ok {
		target = c
	}

	s.acSeq++
	seq := s.acSeq
	s.mu.Unlock()

	go s.complete(gen, seq, text, failing, target)
}

func (s *Session) complete(gen, seq int, text string, failing []domain.Criterion, target domain.Criterion) {
	completion, err := s.deps.Completer.Complete(context.Background(), text, failing, target)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.gen || seq != s.acSeq {
		return
	}
	if err != nil {
		slog.Error(fmt.Sprintf("Error occured: %s", err.Error()))
		return
	}
	if s.congratulated || completion == "" {
		return
	}

	s.ghostText = completion
}

// AcceptGhost appends the ghost text to the draft and runs it through the
// normal text-change pipeline so the result is itself validated.
func (s *Session) AcceptGhost() {
	s.mu.Lock()

	if s.closed || s.ghostText == "" {
		s.mu.Unlock()
		return
	}

	joined := joinGhost(s.userText, s.ghostText)
	s.ghostText = ""
	s.mu.Unlock()

	s.OnTextChange(joined)
}

// retargetScoreLocked points the displayed score at a new target, starting a
// tick chain if one is not already running. Lock held.
func (s *Session) retargetScoreLocked(gen, target int) {
	if !s.score.retarget(target) {
		return
	}
	s.scheduleScoreTick(gen)
}

func (s *Session) scheduleScoreTick(gen int) {
	s.deps.Scheduler.AfterFunc(scoreTickInterval, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || gen != s.gen {
			return
		}
		if s.score.tick() {
			s.scheduleScoreTick(gen)
		}
	})
}

// CanSubmit reports the sole hard gate: the abuse check passed and the draft
// is non-empty. Quality rules are advisory.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canSubmitLocked()
}

func (s *Session) canSubmitLocked() bool {
	return s.criteria.get(domain.AbusiveCheck) == domain.StatusSuccess &&
		strings.TrimSpace(s.userText) != ""
}

// Submit posts the appreciation if the gate allows it and resets the session
// for the next draft.
func (s *Session) Submit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !s.canSubmitLocked() {
		return false
	}
	s.resetLocked()
	return true
}

// Reset returns the session to its initial state, cancelling all pending
// timers and discarding all in-flight responses.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.gen++
	if s.valDebounce != nil {
		s.valDebounce.Stop()
		s.valDebounce = nil
	}
	if s.acDebounce != nil {
		s.acDebounce.Stop()
		s.acDebounce = nil
	}

	s.userText = ""
	s.lastValidatedKey = ""
	s.criteria.reset()
	s.score.reset()
	s.guidance = guidanceState{}
	s.congratulated = false
	s.aiText = ""
	s.showAISuggestion = false
	s.checking = false
	s.ghostText = ""
	s.phrases = nil
	s.lastRewriteAtCount = -1
}

// Close tears the session down; late callbacks from any pipeline become
// no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.resetLocked()
	s.closed = true
}

// Snapshot copies the current state for rendering.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Employee:         s.employee,
		Text:             s.userText,
		Checking:         s.checking,
		Criteria:         s.criteria.snapshot(),
		Score:            s.score.displayed,
		ScoreBand:        scoreBand(s.score.displayed),
		ScoreFraction:    s.score.fraction(),
		GuidanceKind:     s.guidance.Kind,
		GuidanceType:     s.guidance.Type,
		GuidanceText:     s.guidance.Text,
		Congratulated:    s.congratulated,
		AIText:           s.aiText,
		ShowAISuggestion: s.showAISuggestion,
		GhostText:        s.ghostText,
		CanSubmit:        s.canSubmitLocked(),
	}
}

// Employee returns the colleague this draft is for.
func (s *Session) Employee() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.employee
}
