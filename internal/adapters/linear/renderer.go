// Package linear provides a synchronous, line-oriented progress renderer.
package linear

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/masq/internal/core/ports"
	"go.trai.ch/masq/internal/ui/output"
	"go.trai.ch/masq/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer with chronological, prefixed lines.
type Renderer struct {
	w      io.Writer
	output *termenv.Output

	mu        sync.Mutex
	tasks     map[string]*taskState // spanID -> task state
	succeeded int
	failed    int
}

type taskState struct {
	name      string
	startTime time.Time
}

// NewRenderer creates a new Renderer writing to w, or stderr if w is nil.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stderr
	}

	return &Renderer{
		w:      w,
		output: output.NewWithProfile(w, output.ColorProfileANSI),
		tasks:  make(map[string]*taskState),
	}
}

// Stop prints a summary of the completed tasks.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := r.succeeded + r.failed
	if total == 0 {
		return nil
	}
	_, err := fmt.Fprintf(r.w, "Processed %d file(s): %d succeeded, %d failed\n", total, r.succeeded, r.failed)
	return err
}

// OnPlanEmit prints the number of planned files.
func (r *Renderer) OnPlanEmit(files []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.w, "Processing %d file(s)\n", len(files))
}

// OnTaskStart prints a start message.
func (r *Renderer) OnTaskStart(spanID, _ /* parentID */, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[spanID] = &taskState{name: name, startTime: startTime}

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.w, "%s Starting...\n", prefix)
}

// OnTaskComplete prints the completion status.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	delete(r.tasks, spanID)

	duration := endTime.Sub(task.startTime)
	prefix := fmt.Sprintf("[%s]", task.name)

	if err != nil {
		r.failed++
		symbol := r.output.String(style.Failed.Glyph).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.w, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
		return
	}

	r.succeeded++
	symbol := r.output.String(style.Done.Glyph).Foreground(termenv.ANSIGreen).String()
	_, _ = fmt.Fprintf(r.w, "%s %s Completed in %v\n", prefix, symbol, duration)
}
