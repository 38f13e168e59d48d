package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line on w while a slow operation runs. Nothing
// is drawn until delay has passed, so fast layouts leave no trace.
type spinner struct {
	w       io.Writer
	message string
	delay   time.Duration

	stop    context.CancelFunc
	stopped chan struct{}

	mu    sync.Mutex
	drawn bool
}

// startSpinner starts a spinner that stops on its own when ctx ends.
func startSpinner(ctx context.Context, w io.Writer, message string, delay time.Duration) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		w:       w,
		message: message,
		delay:   delay,
		stop:    cancel,
		stopped: make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.stopped)

	select {
	case <-ctx.Done():
		return
	case <-time.After(s.delay):
	}

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()
	for i := 0; ; i++ {
		s.mu.Lock()
		fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), styleDim.Render(s.message))
		s.drawn = true
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Stop halts the animation and clears the line if anything was drawn.
// It is safe to call more than once.
func (s *spinner) Stop() {
	s.stop()
	<-s.stopped

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drawn {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
		s.drawn = false
	}
}

// StopWithError stops the spinner and reports msg as a failure.
func (s *spinner) StopWithError(msg string) {
	s.Stop()
	printError("%s", msg)
}
