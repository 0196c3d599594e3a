package cli

import (
	"context"
	"fmt"
	"os"
	"time"
)

// spinner is a minimal stderr progress indicator with context
// cancellation support. Output interleaves safely with the logger only
// because both write whole lines; Stop clears the spinner line first.
type spinner struct {
	message string
	cancel  context.CancelFunc
	stopped chan struct{}
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// startSpinner begins animating message on stderr until Stop is called
// or ctx is cancelled.
func startSpinner(ctx context.Context, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{message: message, cancel: cancel, stopped: make(chan struct{})}

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				fmt.Fprint(os.Stderr, "\r\033[K")
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(os.Stderr, "\r%s %s", stylePackage.Render(frame), styleDim.Render(s.message))
			}
		}
	}()

	return s
}

// Stop ends the animation and clears the spinner line.
func (s *spinner) Stop() {
	s.cancel()
	<-s.stopped
}
