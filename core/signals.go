package core

import (
	"os"
	"os/signal"
)

// notifyInterrupts catches interrupts for the lifetime of the session. The
// handler only flags the interrupt, the loop redraws its prompt at the start
// of the next iteration.
func (s *Shell) notifyInterrupts() (stop func()) {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, os.Interrupt)

	go func() {
		for {
			select {
			case <-sigs:
				s.interrupted.Set()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// takeInterrupt reports and clears a pending interrupt.
func (s *Shell) takeInterrupt() bool {
	return s.interrupted.SetToIf(true, false)
}
