package process

import (
	"errors"
	"os"
	"testing"
	"time"
)

// fakeFinder reports pid as alive for the first aliveFor polls.
type fakeFinder struct {
	aliveFor int
	name     string
	existErr error
	polls    int
}

func (f *fakeFinder) Exists(pid int) (bool, error) {
	f.polls++
	if f.existErr != nil {
		return false, f.existErr
	}
	return f.polls <= f.aliveFor, nil
}

func (f *fakeFinder) Name(pid int) (string, error) {
	return f.name, nil
}

type sleepRecorder struct {
	calls []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.calls = append(s.calls, d)
}

func TestWaiter_Wait(t *testing.T) {
	tests := []struct {
		name       string
		aliveFor   int
		retries    int
		wantErr    error
		wantSleeps int
		wantPolls  int
	}{
		{"already gone", 0, 5, nil, 0, 1},
		{"exits after three retries", 3, 5, nil, 3, 4},
		{"exits on last retry", 5, 5, nil, 5, 6},
		{"never exits", 100, 5, ErrWaitTimeout, 5, 6},
		{"single retry timeout", 100, 1, ErrWaitTimeout, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := &fakeFinder{aliveFor: tt.aliveFor, name: "sealdice-core"}
			rec := &sleepRecorder{}
			w := NewWaiter(WaiterOptions{
				Finder:   finder,
				SelfPID:  1,
				SelfName: "sealupd",
				Retries:  tt.retries,
				Interval: 250 * time.Millisecond,
				Sleep:    rec.sleep,
			})

			err := w.Wait(4242)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Wait() error = %v, want %v", err, tt.wantErr)
			}
			if len(rec.calls) != tt.wantSleeps {
				t.Errorf("sleeps = %d, want %d", len(rec.calls), tt.wantSleeps)
			}
			if finder.polls != tt.wantPolls {
				t.Errorf("polls = %d, want %d", finder.polls, tt.wantPolls)
			}
			for _, d := range rec.calls {
				if d != 250*time.Millisecond {
					t.Errorf("sleep duration = %v, want 250ms", d)
				}
			}
		})
	}
}

func TestWaiter_SelfPID(t *testing.T) {
	finder := &fakeFinder{aliveFor: 100}
	rec := &sleepRecorder{}
	w := NewWaiter(WaiterOptions{
		Finder:  finder,
		SelfPID: 777,
		Retries: 3,
		Sleep:   rec.sleep,
	})

	if err := w.Wait(777); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if len(rec.calls) != 0 || finder.polls != 0 {
		t.Errorf("own pid should return without polling, got %d sleeps %d polls", len(rec.calls), finder.polls)
	}
}

func TestWaiter_RecycledOntoUpdater(t *testing.T) {
	finder := &fakeFinder{aliveFor: 100, name: "sealupd"}
	rec := &sleepRecorder{}
	w := NewWaiter(WaiterOptions{
		Finder:   finder,
		SelfPID:  1,
		SelfName: "sealupd",
		Retries:  3,
		Sleep:    rec.sleep,
	})

	if err := w.Wait(4242); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("sleeps = %d, want 0", len(rec.calls))
	}
}

func TestWaiter_QueryErrorKeepsWaiting(t *testing.T) {
	finder := &fakeFinder{existErr: errors.New("permission denied")}
	rec := &sleepRecorder{}
	w := NewWaiter(WaiterOptions{Finder: finder, Retries: 2, Sleep: rec.sleep})

	if err := w.Wait(4242); !errors.Is(err, ErrWaitTimeout) {
		t.Fatalf("Wait() error = %v, want ErrWaitTimeout", err)
	}
	if len(rec.calls) != 2 {
		t.Errorf("sleeps = %d, want 2", len(rec.calls))
	}
}

func TestNewWaiter_Defaults(t *testing.T) {
	w := NewWaiter(WaiterOptions{})
	if w.retries != DefaultRetries {
		t.Errorf("retries = %d, want %d", w.retries, DefaultRetries)
	}
	if w.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", w.interval, DefaultInterval)
	}
	if w.finder == nil || w.sleep == nil || w.logger == nil {
		t.Error("defaults should fill finder, sleep and logger")
	}
}

func TestSystemFinder(t *testing.T) {
	f := NewSystemFinder()

	exists, err := f.Exists(os.Getpid())
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("the test process should exist")
	}

	name, err := f.Name(os.Getpid())
	if err != nil {
		t.Fatalf("Name() error = %v", err)
	}
	if name == "" {
		t.Error("Name() returned an empty name")
	}

	if _, err := f.Exists(0); err == nil {
		t.Error("Exists(0) should be rejected")
	}
}
