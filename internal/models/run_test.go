package models

import (
	"sync"
	"testing"
)

func TestRunStateLifecycle(t *testing.T) {
	state := NewRunState()

	snap := state.Snapshot()
	if snap.Status != "Ready" || snap.InProgress || snap.Progress != 0 {
		t.Fatalf("unexpected idle snapshot %+v", snap)
	}

	state.Begin("Starting download...")
	snap = state.Snapshot()
	if !snap.InProgress {
		t.Error("Begin should raise the in-progress flag")
	}
	if snap.Status != "Starting download..." || snap.Progress != 0 {
		t.Errorf("unexpected snapshot after Begin: %+v", snap)
	}

	state.SetProgress(42.5)
	state.SetStatus("Downloading...")
	snap = state.Snapshot()
	if snap.Progress != 42.5 || snap.Status != "Downloading..." {
		t.Errorf("unexpected snapshot after updates: %+v", snap)
	}

	state.Finish("Download failed: ERROR: boom")
	snap = state.Snapshot()
	if snap.InProgress {
		t.Error("Finish should clear the in-progress flag")
	}
	if snap.Progress != 42.5 {
		t.Errorf("Finish must not touch progress, got %v", snap.Progress)
	}
}

func TestRunStateFinishCompleteForcesFullProgress(t *testing.T) {
	state := NewRunState()
	state.Begin("Starting download...")
	state.SetProgress(50)

	state.FinishComplete("Download complete!")

	snap := state.Snapshot()
	if snap.Progress != 100 {
		t.Errorf("expected progress forced to 100, got %v", snap.Progress)
	}
	if snap.InProgress {
		t.Error("in-progress flag not cleared")
	}
}

func TestRunStateConcurrentWriters(t *testing.T) {
	state := NewRunState()
	state.Begin("Starting download...")

	// Two writers and a reader, the shape the supervisor produces.
	// Run with -race to catch unsynchronized access.
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			state.SetProgress(float64(i % 100))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			state.SetStatus("Downloading...")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = state.Snapshot()
		}
	}()
	wg.Wait()

	snap := state.Snapshot()
	if snap.Progress < 0 || snap.Progress > 100 {
		t.Errorf("progress out of range: %v", snap.Progress)
	}
}
