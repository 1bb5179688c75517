// Package analysis runs phantom analysis jobs off the interactive control
// flow. A worker executes the load, measure and summarize sequence as one
// synchronous unit of work on its own goroutine and reports back through a
// single-writer event channel: zero or more progress events, then exactly
// one of result or failure, then exactly one finished event, then channel
// close. Jobs cannot be cancelled once started and are never retried.
package analysis

import (
	"strings"
	"sync/atomic"

	"ctqa/pkg/catphan"
	"ctqa/pkg/phantom"
	"ctqa/pkg/presentation"
)

// State is the lifecycle state of a worker.
type State int32

const (
	// Idle means no job has been started yet.
	Idle State = iota

	// Running means a job is in flight.
	Running

	// Completed means the last job produced a result.
	Completed

	// Failed means the last job ended with a failure event.
	Failed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// EventKind discriminates worker events.
type EventKind int

const (
	// EventProgress carries a transient status message.
	EventProgress EventKind = iota

	// EventResult carries the completed analysis result. Emitted at most
	// once per run.
	EventResult

	// EventFailure carries the terminal error description. Emitted at
	// most once per run, mutually exclusive with EventResult.
	EventFailure

	// EventFinished is the terminal event of every run, emitted exactly
	// once after the result or failure so the caller can always release
	// the execution context deterministically.
	EventFinished
)

// Event is one message on a worker's event channel.
type Event struct {
	Kind    EventKind
	Message string
	Result  *Result
}

// Result is the output of one successful analysis run: the ordered summary
// rows plus the presentation bundle that exclusively owns the analyzed
// phantom record, kept so plots and report images can be regenerated on
// demand. Immutable once produced.
type Result struct {
	// Rows are the display-ready summary rows in deterministic order.
	Rows []presentation.Row

	// Bundle owns the analyzed results record and its lazy renders.
	Bundle *presentation.Bundle
}

// Worker runs one analysis job at a time. Starting a second job while one is
// running is the caller's responsibility to prevent; the state is tracked so
// the interactive side can disable re-submission until the finished event
// arrives, but no internal lock enforces it.
type Worker struct {
	state atomic.Int32

	// resolve maps a phantom kind to its analyzer factory. Tests swap
	// this to inject failures past the load stage.
	resolve func(phantom.Kind) (catphan.Factory, error)
}

// NewWorker creates a worker backed by the catphan registry.
func NewWorker() *Worker {
	return &Worker{resolve: catphan.Resolve}
}

// State returns the worker's current lifecycle state.
func (w *Worker) State() State {
	return State(w.state.Load())
}

// Run starts one analysis job and returns its event channel. The channel is
// closed after the finished event; events arrive in emission order. The
// returned channel must be drained by a single consumer.
func (w *Worker) Run(datasetPath string, kind phantom.Kind) <-chan Event {
	events := make(chan Event, 8)
	w.state.Store(int32(Running))

	go func() {
		defer close(events)

		result, err := w.analyze(datasetPath, kind, events)
		if err != nil {
			w.state.Store(int32(Failed))
			events <- Event{Kind: EventFailure, Message: lastLine(err)}
		} else {
			w.state.Store(int32(Completed))
			events <- Event{Kind: EventResult, Result: result}
		}

		events <- Event{Kind: EventFinished}
	}()

	return events
}

// analyze performs the load, measure and summarize sequence. Any failure
// terminates the job with no partial results.
func (w *Worker) analyze(datasetPath string, kind phantom.Kind, events chan<- Event) (*Result, error) {
	events <- Event{Kind: EventProgress, Message: "Loading CT dataset..."}

	factory, err := w.resolve(kind)
	if err != nil {
		return nil, err
	}

	p, err := factory(datasetPath)
	if err != nil {
		return nil, err
	}

	events <- Event{Kind: EventProgress, Message: "Analyzing CT dataset..."}

	results, err := p.Analyze()
	if err != nil {
		return nil, err
	}

	bundle := presentation.NewBundle(results)
	return &Result{
		Rows:   bundle.SummaryRows(),
		Bundle: bundle,
	}, nil
}

// lastLine reduces an error to the last non-empty line of its description,
// which is what gets surfaced to the user.
func lastLine(err error) string {
	lines := strings.Split(err.Error(), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return err.Error()
}
