package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_SuccessOnFirstAttempt(t *testing.T) {
	var calls int
	err := Do(context.Background(), DefaultRetryConfig(), func(_ context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_SuccessAfterRetry(t *testing.T) {
	var calls int
	cfg := RetryConfig{MaxAttempts: 3, Delay: 1 * time.Millisecond}

	err := Do(context.Background(), cfg, func(_ context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("temporary")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDo_ExhaustsRetries(t *testing.T) {
	var calls int
	cfg := RetryConfig{MaxAttempts: 3, Delay: 1 * time.Millisecond}

	err := Do(context.Background(), cfg, func(_ context.Context) error {
		calls++
		return errors.New("always fails")
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}

	var ee *ExhaustedError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *ExhaustedError, got %T", err)
	}
	if ee.Attempts != 3 {
		t.Errorf("expected 3 recorded attempts, got %d", ee.Attempts)
	}
}

func TestDo_FixedDelayObserved(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, Delay: 20 * time.Millisecond}

	start := time.Now()
	_ = Do(context.Background(), cfg, func(_ context.Context) error {
		return errors.New("always fails")
	})
	elapsed := time.Since(start)

	// Two sleeps between three attempts.
	if elapsed < 40*time.Millisecond {
		t.Errorf("expected at least 40ms of delay, got %v", elapsed)
	}
}

func TestDo_PermanentError_NoRetry(t *testing.T) {
	var calls int
	cfg := RetryConfig{MaxAttempts: 5, Delay: 1 * time.Millisecond}

	permErr := NewPermanentError(errors.New("bad credentials"))
	err := Do(context.Background(), cfg, func(_ context.Context) error {
		calls++
		return permErr
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	var ee *ExhaustedError
	if errors.As(err, &ee) {
		t.Error("permanent error must not be reported as exhaustion")
	}
}

func TestDo_ContextCancelStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls int
	cfg := RetryConfig{MaxAttempts: 5, Delay: 50 * time.Millisecond}

	err := Do(ctx, cfg, func(_ context.Context) error {
		calls++
		cancel()
		return errors.New("failure then cancel")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_ShouldRetryOverride(t *testing.T) {
	var calls int
	cfg := RetryConfig{
		MaxAttempts: 5,
		Delay:       1 * time.Millisecond,
		ShouldRetry: func(err error) bool { return false },
	}

	err := Do(context.Background(), cfg, func(_ context.Context) error {
		calls++
		return errors.New("nope")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestIsPermanent(t *testing.T) {
	if IsPermanent(nil) {
		t.Error("nil must not be permanent")
	}
	if IsPermanent(errors.New("transient-ish")) {
		t.Error("plain error must not be permanent")
	}
	if !IsPermanent(NewPermanentError(errors.New("config"))) {
		t.Error("wrapped permanent error must be permanent")
	}
	if !IsPermanent(context.Canceled) {
		t.Error("context.Canceled must be permanent")
	}
}
