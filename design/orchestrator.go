package design

import (
	"context"
	"strings"
	"sync/atomic"
	"time"
)

// Kind is what a submitted prompt turns into.
type Kind int

const (
	// KindGrid fetches the image group of a predefined grid token.
	KindGrid Kind = iota
	// KindPrompt simulates generation of a single design from free text.
	KindPrompt
)

func (k Kind) String() string {
	if k == KindGrid {
		return "grid"
	}
	return "prompt"
}

// Request is one planned fetch or generation. Seq increases with every
// request so results that arrive after a newer request can be dropped.
type Request struct {
	Seq    uint64
	Kind   Kind
	Prompt string
}

// Result is the outcome of running a Request.
type Result struct {
	Request
	// Designs replaces the list for KindGrid and holds the single new design
	// for KindPrompt.
	Designs []Design
	// Err is set when a grid fetch failed. Designs then holds the fallback
	// placeholders.
	Err error
	// Canceled is set when the context ended before the work finished.
	Canceled bool
}

// OrchestratorOptions configures an Orchestrator.
type OrchestratorOptions struct {
	Fetcher         Fetcher
	Suggestions     []Suggestion
	PlaceholderBase string
	GenerationDelay time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Orchestrator decides between grid fetch and free-text generation and runs
// them. Plan and IsLatest belong to the caller's goroutine; Run is safe to
// call concurrently.
type Orchestrator struct {
	fetcher         Fetcher
	tokens          map[string]bool
	placeholderBase string
	delay           time.Duration
	now             func() time.Time
	seq             atomic.Uint64
}

// NewOrchestrator builds an orchestrator serving the grid tokens of
// opts.Suggestions.
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	tokens := make(map[string]bool, len(opts.Suggestions))
	for _, s := range opts.Suggestions {
		tokens[s.Value] = true
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		fetcher:         opts.Fetcher,
		tokens:          tokens,
		placeholderBase: opts.PlaceholderBase,
		delay:           opts.GenerationDelay,
		now:             now,
	}
}

// Plan turns a submitted prompt into a request. Blank prompts are rejected.
func (o *Orchestrator) Plan(prompt string) (Request, bool) {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return Request{}, false
	}
	if o.tokens[trimmed] {
		return o.PlanGrid(trimmed), true
	}
	return Request{Seq: o.seq.Add(1), Kind: KindPrompt, Prompt: prompt}, true
}

// PlanGrid builds a grid request for token without checking it against the
// suggestion list; selecting a suggestion always fetches.
func (o *Orchestrator) PlanGrid(token string) Request {
	return Request{Seq: o.seq.Add(1), Kind: KindGrid, Prompt: token}
}

// IsLatest reports whether seq belongs to the most recent request.
func (o *Orchestrator) IsLatest(seq uint64) bool {
	return seq == o.seq.Load()
}

// Run executes req. Grid failures never surface as a missing result: the
// fallback designs are returned alongside the error.
func (o *Orchestrator) Run(ctx context.Context, req Request) Result {
	if req.Kind == KindGrid {
		return o.runGrid(ctx, req)
	}
	return o.runPrompt(ctx, req)
}

func (o *Orchestrator) runGrid(ctx context.Context, req Request) Result {
	res := Result{Request: req}
	descs, err := o.fetcher.FetchGroup(ctx, req.Prompt)
	if err != nil {
		if ctx.Err() != nil {
			res.Canceled = true
		}
		res.Err = err
		res.Designs = Fallback(req.Prompt, o.placeholderBase, o.now())
		return res
	}
	res.Designs = FromDescriptors(req.Prompt, descs, o.now())
	return res
}

func (o *Orchestrator) runPrompt(ctx context.Context, req Request) Result {
	res := Result{Request: req}
	if o.delay > 0 {
		select {
		case <-ctx.Done():
			res.Canceled = true
			return res
		case <-time.After(o.delay):
		}
	}
	res.Designs = []Design{FromPrompt(req.Prompt, o.placeholderBase, o.now())}
	return res
}
