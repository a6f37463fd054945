// Package repl drives the read-parse-execute-report cycle over a commit store.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/forkline/internal/command"
	"github.com/zjrosen/forkline/internal/log"
	"github.com/zjrosen/forkline/internal/store"
)

// FailureLine is emitted when a line fails to parse or execute.
const FailureLine = "Error"

// Session is one interpreter instance with its own store.
type Session struct {
	id        string
	store     *store.Store
	out       store.Emitter
	prompt    string
	promptOut io.Writer
	verbose   bool
	tracer    trace.Tracer
	renderer  store.Renderer
}

// Option configures a Session.
type Option func(*Session)

// WithPrompt writes a blank line and prompt to w before each read. A nil w
// disables the prompt.
func WithPrompt(w io.Writer, prompt string) Option {
	return func(s *Session) {
		s.promptOut = w
		s.prompt = prompt
	}
}

// WithVerboseErrors appends the failure reason to the failure line.
func WithVerboseErrors(verbose bool) Option {
	return func(s *Session) { s.verbose = verbose }
}

// WithRenderer sets the examine renderer.
func WithRenderer(r store.Renderer) Option {
	return func(s *Session) { s.renderer = r }
}

// WithTracer records a span for every executed line.
func WithTracer(t trace.Tracer) Option {
	return func(s *Session) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(s *Session) { s.id = id }
}

// NewSession seeds a fresh store with rootData on the master branch. The
// seed's feedback line is emitted to out before NewSession returns.
func NewSession(rootData string, out store.Emitter, opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		out:    out,
		tracer: noop.NewTracerProvider().Tracer(""),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.store = store.New(rootData, out, store.WithRenderer(s.renderer))
	log.Info(log.CatREPL, "Session started", "session", s.id)
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Store returns the session's commit store.
func (s *Session) Store() *store.Store { return s.store }

// Result describes the outcome of one line.
type Result struct {
	Line string
	Cmd  command.Cmd // nil when the line did not parse
	Err  error
}

// OK reports whether the line executed successfully.
func (r Result) OK() bool { return r.Err == nil }

// Execute trims, parses and applies one line. On failure it emits the failure
// line; on success the store's own feedback is the only output.
func (s *Session) Execute(ctx context.Context, line string) Result {
	line = strings.TrimSpace(line)
	_, span := s.tracer.Start(ctx, "forkline.execute", trace.WithAttributes(
		attribute.String("forkline.session_id", s.id),
		attribute.String("forkline.line", line),
	))
	defer span.End()

	res := Result{Line: line}
	res.Cmd, res.Err = command.Parse(line)
	if res.Err == nil {
		span.SetAttributes(
			attribute.String("forkline.command", res.Cmd.String()),
			attribute.String("forkline.kind", command.Kind(res.Cmd)),
		)
		res.Err = s.store.Apply(res.Cmd)
	}

	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
		log.Debug(log.CatREPL, "Command failed", "session", s.id, "line", line, "error", res.Err.Error())
		s.out.Emit(s.failureLine(res.Err))
		return res
	}

	log.Debug(log.CatREPL, "Command executed", "session", s.id, "command", res.Cmd.String())
	return res
}

func (s *Session) failureLine(err error) string {
	if !s.verbose {
		return FailureLine
	}
	return fmt.Sprintf("%s: %v", FailureLine, err)
}

// Run executes lines from src until it is exhausted. End of input ends the
// loop with a nil error; any other read error is returned.
func (s *Session) Run(ctx context.Context, src LineSource) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.promptOut != nil {
			fmt.Fprintf(s.promptOut, "\n%s", s.prompt)
		}

		line, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			log.Info(log.CatREPL, "Input exhausted", "session", s.id)
			return nil
		}
		if err != nil {
			log.ErrorErr(log.CatREPL, "Failed to read input", err, "session", s.id)
			return fmt.Errorf("reading input: %w", err)
		}

		s.Execute(ctx, line)
	}
}
