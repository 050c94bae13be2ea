// Package flexparser implements the parser orchestrator of spec §4.5: it
// runs the full-input strategies (jsonstrategy) and, failing those, the
// extract/clean/repair pipeline (jsonextract + jsonfix) in priority order,
// producing the full set of flexvalue.FlexValue candidates a parse call
// will rank and try to coerce.
package flexparser

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"go.jacobcolvin.com/flexparse/flexvalue"
	"go.jacobcolvin.com/flexparse/jsonextract"
	"go.jacobcolvin.com/flexparse/jsonfix"
	"go.jacobcolvin.com/flexparse/jsonstrategy"
	"go.jacobcolvin.com/flexparse/jsonstrict"
)

// Option configures a Parser, following this repository's functional
// option convention (see log.Publisher's WithBufferSize).
type Option func(*Parser)

// WithMaxCandidates stores n as the Parser's heuristic candidate cap
// (default jsonextract.MaxCandidates, §4.2). The stored value is not
// applied: jsonextract.Heuristic always uses its fixed
// jsonextract.MaxCandidates cap.
func WithMaxCandidates(n int) Option {
	return func(p *Parser) { p.maxCandidates = n }
}

// WithMaxInputSize stores n as the Parser's heuristic size guard (default
// jsonextract.MaxInputSize, §4.2, §5). The stored value is not applied:
// jsonextract.Heuristic always uses its fixed jsonextract.MaxInputSize
// guard.
func WithMaxInputSize(n int) Option {
	return func(p *Parser) { p.maxInputSize = n }
}

// WithRepairAttemptCap overrides the repair orchestrator's combined
// attempt cap (default 10, §4.3, §5).
func WithRepairAttemptCap(n int) Option {
	return func(p *Parser) { p.repairAttemptCap = n }
}

// WithLogger sets the logger used for the Debug-level notice emitted when
// pre-cleaning extracts deeply nested input. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) { p.log = l }
}

// Parser is the flexible, multi-strategy parser described in spec §4.5.
// Safe for concurrent use by multiple goroutines provided it is not
// mutated after construction (§5).
type Parser struct {
	maxCandidates     int
	maxInputSize      int
	repairAttemptCap  int
	log               *slog.Logger
}

// New returns a Parser with the default bounds (§5).
func New(opts ...Option) *Parser {
	p := &Parser{
		maxCandidates:    jsonextract.MaxCandidates,
		maxInputSize:     jsonextract.MaxInputSize,
		repairAttemptCap: 10,
		log:              slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// strategyResult is one priority tier's output, computed independently of
// every other tier (§4.4's strategies are pure functions of the cleaned
// input with no shared mutable state).
type strategyResult struct {
	priority  int
	shortCut  bool
	candidate []*flexvalue.FlexValue
}

// Parse runs every full-input strategy of §4.4 concurrently via
// errgroup.Group — each is a pure function of the same cleaned input, so
// running them in parallel is the one-level-down generalization of §5's
// "multiple parses may run on independent threads" that SPEC_FULL.md's
// domain-stack wiring calls for — then recombines their results in
// priority order, applying the §4.5 short-circuit rule exactly as the
// sequential version would.
//
// It returns every candidate produced, unranked (ranking is flexscore's
// job). Returns an empty slice, never an error, if nothing could be
// extracted — callers surface ErrNoCandidates at the flexparse package
// boundary (§7 NoCandidates).
func (p *Parser) Parse(input string) []*flexvalue.FlexValue {
	cleaned, deepNested := jsonfix.Preclean(input)
	if deepNested {
		p.log.Debug("flexparser: deep nesting extracted", "len", len(cleaned))
	}

	results := make([]strategyResult, 8)

	g, _ := errgroup.WithContext(context.Background())

	g.Go(func() error {
		results[0] = p.runMultipleObjects(cleaned)
		return nil
	})
	g.Go(func() error {
		results[1] = p.runDirectJSON(cleaned)
		return nil
	})
	g.Go(func() error {
		results[2] = p.runMarkdown(cleaned)
		return nil
	})
	g.Go(func() error {
		results[3] = p.runYAML(cleaned)
		return nil
	})
	g.Go(func() error {
		results[4] = p.runJSONFixer(cleaned)
		return nil
	})
	g.Go(func() error {
		results[5] = p.runHeuristic(cleaned)
		return nil
	})
	g.Go(func() error {
		results[6] = p.runRawPrimitive(cleaned)
		return nil
	})
	g.Go(func() error {
		results[7] = p.runStateMachine(cleaned)
		return nil
	})

	_ = g.Wait()

	var candidates []*flexvalue.FlexValue

	fired := false
	shortCircuit := false

	for _, r := range results {
		// MultipleObjects (priority 0) is always retained even after a
		// later short-circuit, since it logically runs "first" (§4.5).
		if r.priority != 0 && shortCircuit {
			continue
		}

		if len(r.candidate) > 0 {
			candidates = append(candidates, r.candidate...)
			fired = true
		}

		if r.shortCut {
			shortCircuit = true
		}
	}

	if !fired {
		candidates = append(candidates, p.extractCleanRepair(cleaned)...)
	}

	return dedup(candidates)
}

func (p *Parser) runMultipleObjects(cleaned string) strategyResult {
	res := strategyResult{priority: 0}

	if fv, ok := jsonstrategy.MultipleObjects(cleaned); ok {
		res.candidate = []*flexvalue.FlexValue{fv}
	}

	return res
}

func (p *Parser) runDirectJSON(cleaned string) strategyResult {
	res := strategyResult{priority: 1}

	if fv, ok := jsonstrategy.DirectJSON(cleaned); ok {
		res.candidate = []*flexvalue.FlexValue{fv}
		res.shortCut = true
	}

	return res
}

func (p *Parser) runMarkdown(cleaned string) strategyResult {
	res := strategyResult{priority: 2}

	for _, block := range jsonextract.Markdown(cleaned) {
		v, err := jsonstrict.Parse(block.Content)
		if err != nil {
			continue
		}

		fv := flexvalue.New(v, flexvalue.Markdown(block.Lang))
		fv.Source.MarkdownScore = scoreMarkdownContext(cleaned, block.Content)
		res.candidate = append(res.candidate, fv)
	}

	return res
}

func (p *Parser) runYAML(cleaned string) strategyResult {
	res := strategyResult{priority: 3}

	if fv, ok := jsonstrategy.YAML(cleaned); ok {
		res.candidate = []*flexvalue.FlexValue{fv}
		res.shortCut = true
	}

	return res
}

func (p *Parser) runJSONFixer(cleaned string) strategyResult {
	res := strategyResult{priority: 3}

	for _, attempt := range jsonfix.Attempts(cleaned, p.repairAttemptCap) {
		v, err := jsonstrict.Parse(attempt.Text)
		if err != nil {
			continue
		}

		res.candidate = append(res.candidate, flexvalue.New(v, flexvalue.Fixed(attempt.Fixes...)))
	}

	return res
}

func (p *Parser) runHeuristic(cleaned string) strategyResult {
	res := strategyResult{priority: 4}

	for _, span := range jsonextract.Heuristic(cleaned) {
		v, err := jsonstrict.Parse(span.Content)
		if err != nil {
			continue
		}

		res.candidate = append(res.candidate, flexvalue.New(v, flexvalue.Heuristic(span.Pattern)))
	}

	return res
}

func (p *Parser) runRawPrimitive(cleaned string) strategyResult {
	res := strategyResult{priority: 5}

	if fv, ok := jsonstrategy.RawPrimitive(cleaned); ok {
		res.candidate = []*flexvalue.FlexValue{fv}
	}

	return res
}

func (p *Parser) runStateMachine(cleaned string) strategyResult {
	res := strategyResult{priority: 15}
	res.candidate = jsonstrategy.StateMachineTolerant(cleaned)

	return res
}

// extractCleanRepair implements the fallback path of §4.5: "run all
// extractors, run each extracted candidate through the cleaner, then
// attempt strict JSON parse, and if that fails, feed the candidate through
// the repair set."
func (p *Parser) extractCleanRepair(input string) []*flexvalue.FlexValue {
	var out []*flexvalue.FlexValue

	var extracted []jsonextract.Candidate

	extracted = append(extracted, jsonextract.Direct(input)...)
	direct := len(extracted)
	extracted = append(extracted, jsonextract.Heuristic(input)...)
	extracted = append(extracted, jsonextract.Markdown(input)...)

	for i, c := range extracted {
		cleaned, _ := jsonfix.Preclean(c.Content)

		if v, err := jsonstrict.Parse(cleaned); err == nil {
			src := candidateSource(c, i < direct)
			out = append(out, flexvalue.New(v, src))

			continue
		}

		for _, attempt := range jsonfix.Attempts(cleaned, p.repairAttemptCap) {
			v, err := jsonstrict.Parse(attempt.Text)
			if err != nil {
				continue
			}

			out = append(out, flexvalue.New(v, flexvalue.Fixed(attempt.Fixes...)))
		}
	}

	return out
}

func candidateSource(c jsonextract.Candidate, direct bool) flexvalue.Source {
	switch {
	case direct:
		return flexvalue.Direct()
	case c.Pattern != "":
		return flexvalue.Heuristic(c.Pattern)
	default:
		return flexvalue.Markdown(c.Lang)
	}
}

// dedup drops candidates whose Value is structurally identical to one
// already kept, preserving the first occurrence's order (stability, §8.9).
func dedup(candidates []*flexvalue.FlexValue) []*flexvalue.FlexValue {
	seen := map[string]bool{}

	var out []*flexvalue.FlexValue

	for _, c := range candidates {
		key := c.Key()
		if seen[key] {
			continue
		}

		seen[key] = true

		out = append(out, c)
	}

	return out
}

// scoreMarkdownContext implements the markdown-block scoring heuristic of
// SPEC_FULL.md §D.4: each devaluing English keyword present in the 80
// characters preceding the block's opening fence subtracts one, each bonus
// keyword present adds one. Advisory only (spec §9).
func scoreMarkdownContext(fullInput, content string) int {
	const window = 80

	end := strings.Index(fullInput, content)
	if end < 0 {
		end = 0
	}

	if fence := strings.LastIndex(fullInput[:end], "```"); fence >= 0 {
		end = fence
	}

	prefix := fullInput[max(end-window, 0):end]

	score := 0

	for _, kw := range []string{"example", "sample", "placeholder"} {
		if containsFold(prefix, kw) {
			score--
		}
	}

	for _, kw := range []string{"real", "final", "actual"} {
		if containsFold(prefix, kw) {
			score++
		}
	}

	return score
}

func containsFold(s, substr string) bool {
	return indexFold(s, substr) >= 0
}

func indexFold(s, substr string) int {
	ls, lsub := len(s), len(substr)
	if lsub == 0 {
		return 0
	}

	for i := 0; i+lsub <= ls; i++ {
		if equalFold(s[i:i+lsub], substr) {
			return i
		}
	}

	return -1
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		ca, cb := a[i], b[i]

		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}

		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}

		if ca != cb {
			return false
		}
	}

	return true
}
