package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kbukum/promptprobe/llm"
	"github.com/kbukum/promptprobe/logger"
	"github.com/kbukum/promptprobe/observability"
	"github.com/kbukum/promptprobe/provider"
)

// ErrUnknownProbe is returned by Run for an id outside the suite.
var ErrUnknownProbe = errors.New("probe: unknown test")

// Client is the provider the suite talks to; *llm.Adapter satisfies it.
type Client = provider.Streamable[llm.CompletionRequest, llm.CompletionResponse, llm.StreamChunk]

// Probe ids.
const (
	BaseCase = iota + 1
	FunctionCalling
	ParameterCase
	StructuredOutput
	SimpleStructuredOutput
)

// Probe is one check of the suite.
type Probe struct {
	ID    int
	Title string
	// header is the banner printed before the probe runs.
	header string
	// note is printed after the error line when the probe fails.
	note string
	run  func(ctx context.Context, s *Suite) error
}

// Outcome records how one probe ended.
type Outcome struct {
	ID       int
	Title    string
	Err      error
	Duration time.Duration
}

// Executor sends one non-streaming completion.
type Executor = provider.RequestResponse[llm.CompletionRequest, llm.CompletionResponse]

// Suite runs probes against one client and writes their output to out.
type Suite struct {
	client Client
	// exec is client wrapped in the configured middleware; non-streaming
	// requests go through it.
	exec   Executor
	mws    []provider.Middleware[llm.CompletionRequest, llm.CompletionResponse]
	out    io.Writer
	log    *logger.Logger
	probes []Probe
}

// Option configures a Suite.
type Option func(*Suite)

// WithLogger sets the logger for per-probe diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(s *Suite) {
		if l != nil {
			s.log = l.WithComponent("probe")
		}
	}
}

// WithMiddleware wraps every non-streaming request, e.g. with
// provider.WithLogging or provider.WithTracing. The first middleware is
// outermost.
func WithMiddleware(mws ...provider.Middleware[llm.CompletionRequest, llm.CompletionResponse]) Option {
	return func(s *Suite) {
		s.mws = append(s.mws, mws...)
	}
}

// NewSuite creates a suite that sends its requests through c.
func NewSuite(c Client, out io.Writer, opts ...Option) *Suite {
	s := &Suite{
		client: c,
		out:    out,
		log:    logger.NewNop(),
		probes: []Probe{
			{ID: BaseCase, Title: "Base Case", run: runBaseCase},
			{ID: FunctionCalling, Title: "Function Calling", run: runFunctionCalling},
			{ID: ParameterCase, Title: "Parameter Case", run: runParameterCase},
			{
				ID: StructuredOutput, Title: "Structured Output",
				header: "=== Test 4: Structured Output Case ===",
				note:   "Note: Structured output may not be supported by this model/API",
				run:    runStructuredOutput,
			},
			{
				ID: SimpleStructuredOutput, Title: "Simple Structured Output",
				header: "=== Simple Structured Output Test ===",
				run:    runSimpleStructuredOutput,
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.exec = provider.Chain(s.mws...)(c)
	return s
}

// Probes lists the suite in run order.
func (s *Suite) Probes() []Probe {
	out := make([]Probe, len(s.probes))
	copy(out, s.probes)
	return out
}

// Run executes the probe with the given id. The probe's own failure has
// already been printed when it is returned; only ErrUnknownProbe means
// nothing ran.
func (s *Suite) Run(ctx context.Context, id int) error {
	for _, p := range s.probes {
		if p.ID == id {
			return s.run(ctx, p).Err
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownProbe, id)
}

// RunAll executes every probe in order. One probe failing does not stop
// the others.
func (s *Suite) RunAll(ctx context.Context) []Outcome {
	outcomes := make([]Outcome, 0, len(s.probes))
	for _, p := range s.probes {
		if ctx.Err() != nil {
			break
		}
		outcomes = append(outcomes, s.run(ctx, p))
	}
	return outcomes
}

func (s *Suite) run(ctx context.Context, p Probe) Outcome {
	ctx, span := observability.StartSpan(ctx, observability.SpanProbe)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrOperationName, p.Title)

	header := p.header
	if header == "" {
		header = fmt.Sprintf("=== Test %d: %s ===", p.ID, p.Title)
	}
	if p.ID != BaseCase {
		header = "\n" + header
	}
	s.println(header)

	start := time.Now()
	err := p.run(ctx, s)
	out := Outcome{ID: p.ID, Title: p.Title, Err: err, Duration: time.Since(start)}

	fields := logger.DurationFields(p.Title, out.Duration)
	if err != nil {
		observability.SetSpanError(ctx, err)
		s.printf("Error: %v\n", err)
		if p.note != "" {
			s.println(p.note)
		}
		s.log.Warn("probe failed", logger.MergeWithError(fields, err))
	} else {
		s.log.Debug("probe finished", fields)
	}
	return out
}

func (s *Suite) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *Suite) println(line string) {
	_, _ = io.WriteString(s.out, line+"\n")
}

// stream prints each fragment as it arrives and returns the whole text.
func (s *Suite) stream(ctx context.Context, req llm.CompletionRequest) (string, error) {
	ch, err := s.client.Stream(ctx, req)
	if err != nil {
		return "", err
	}
	text, err := llm.CollectFunc(ch, func(fragment string) {
		_, _ = io.WriteString(s.out, fragment)
	})
	if err != nil {
		return text, err
	}
	s.printf("\n\n")
	return text, nil
}
