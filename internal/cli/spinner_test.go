package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("working...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	// Stop cancels the spinner's own context, so Cancelled reports
	// true after a plain Stop too.
	if !s.Cancelled() {
		t.Error("Stop should tear down the spinner context")
	}
}

func TestSpinnerParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "rendering...")
	s.Start()
	cancel()

	time.Sleep(100 * time.Millisecond)
	if !s.Cancelled() {
		t.Error("spinner should observe parent context cancellation")
	}
	s.Stop()
}

func TestSpinnerParentTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "rendering...")
	s.Start()

	time.Sleep(100 * time.Millisecond)
	if !s.Cancelled() {
		t.Error("spinner should observe parent context timeout")
	}
	s.Stop()
}

func TestSpinnerStopTwice(t *testing.T) {
	s := newSpinner("working...")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopMessages(t *testing.T) {
	s := newSpinner("saving...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("saved")

	s = newSpinner("saving...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("save failed")
}
