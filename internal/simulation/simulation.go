// simulation/simulation.go
package simulation

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mockinterview/backend/internal/domain/interview"
	"github.com/mockinterview/backend/internal/domain/questionbank"
	"github.com/mockinterview/backend/internal/resume"
	"github.com/mockinterview/backend/internal/service"
	"github.com/mockinterview/backend/internal/watch"
)

// Answer is one scripted reply. An Auto answer is only typed as a draft and
// left for the timer to submit.
type Answer struct {
	Text  string
	Auto  bool
	Think time.Duration
}

type Script struct {
	ResumeName string
	ResumeText string
	// Contact is typed, in order, while the session asks for missing
	// contact fields.
	Contact []string
	Answers []Answer
}

// DefaultScript is a candidate whose resume lacks a phone number, who
// mistypes it once and lets the third question time out.
func DefaultScript() Script {
	return Script{
		ResumeName: "grace-hopper.txt",
		ResumeText: "Grace Hopper\ngrace@navy.mil\nRear Admiral, compiler pioneer\n",
		Contact:    []string{"555", "+1 202 555 0147"},
		Answers: []Answer{
			{Think: 12 * time.Second, Text: "var is function scoped and hoisted while let and const are block scope; const cannot be reassigned."},
			{Think: 9 * time.Second, Text: "JSX is a syntax extension for React that Babel will transpile into createElement calls."},
			{Auto: true, Text: "useEffect with a cleanup function and a dependency array to fetch data"},
			{Think: 40 * time.Second, Text: "Middleware gets the request and response plus next; a logging middleware prints the request then calls next."},
			{Think: 90 * time.Second, Text: "Issue a short jwt access token and a refresh token in an httpOnly cookie, and check expiry in middleware."},
			{Think: 75 * time.Second, Text: "Use memo, useMemo and useCallback, split context, add a selector and start with profiling."},
		},
	}
}

type Options struct {
	Store  service.StateStore
	Logger *zap.Logger
	Out    io.Writer
	Start  time.Time
}

type Result struct {
	Candidate interview.Candidate
	Notices   []service.Notice
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// Run plays script against a fresh service on a simulated clock and
// returns the finished candidate.
func Run(ctx context.Context, sc Script, opts Options) (Result, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Start.IsZero() {
		opts.Start = time.Now()
	}
	clock := &fakeClock{t: opts.Start}

	svc := service.NewInterviewService(ctx, service.Deps{
		Store:  opts.Store,
		Bank:   questionbank.Default().WithPicker(func(int) int { return 0 }),
		Now:    clock.Now,
		Logger: opts.Logger,
	})
	defer svc.Close()

	var res Result
	watcher := watch.New(svc, time.Second, func(n service.Notice) {
		res.Notices = append(res.Notices, n)
	}, opts.Logger)

	c, err := svc.StartSession(ctx, resume.File{
		Name:      sc.ResumeName,
		MediaType: "text/plain",
		Data:      []byte(sc.ResumeText),
	})
	if err != nil {
		return res, fmt.Errorf("start session: %w", err)
	}
	id := c.ID

	for _, input := range sc.Contact {
		clock.advance(2 * time.Second)
		if c, err = svc.SubmitAnswer(ctx, input); err != nil {
			return res, fmt.Errorf("contact %q: %w", input, err)
		}
	}
	if c.Stage() != interview.StageAnswering {
		return res, fmt.Errorf("contact details incomplete, stuck at %s", c.Stage())
	}

	for i, a := range sc.Answers {
		if a.Auto {
			if err := svc.SetDraft(ctx, a.Text); err != nil {
				return res, fmt.Errorf("answer %d: %w", i+1, err)
			}
			if err := waitForTimeout(ctx, clock, watcher, c.Interview.CurrentIndex); err != nil {
				return res, fmt.Errorf("answer %d: %w", i+1, err)
			}
		} else {
			clock.advance(a.Think)
			watcher.RunOnce(ctx)
			if _, err := svc.SubmitAnswer(ctx, a.Text); err != nil {
				return res, fmt.Errorf("answer %d: %w", i+1, err)
			}
		}
		if c, err = svc.Candidate(id); err != nil {
			return res, err
		}
		if c.Status == interview.StatusCompleted {
			break
		}
	}

	res.Candidate = c
	writeTranscript(opts.Out, c)
	return res, nil
}

// waitForTimeout ticks once per simulated second until the question at
// index is auto-submitted.
func waitForTimeout(ctx context.Context, clock *fakeClock, w *watch.Watcher, index int) error {
	limit := int(questionbank.DurationFor(questionbank.Hard)/time.Second) + 2
	for range limit {
		if err := ctx.Err(); err != nil {
			return err
		}
		clock.advance(time.Second)
		for _, n := range w.RunOnce(ctx) {
			if n.Kind == service.NoticeAutoSubmitted && n.Index == index {
				return nil
			}
		}
	}
	return fmt.Errorf("question %d never timed out", index+1)
}

func writeTranscript(out io.Writer, c interview.Candidate) {
	for _, m := range c.Chat {
		fmt.Fprintf(out, "[%s] %s\n", m.Role, m.Text)
	}
}
