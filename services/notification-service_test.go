package services

import (
	"errors"
	"testing"
)

func TestNotificationBreaker(t *testing.T) {
	t.Run("deliveries pass through while the relay is healthy", func(t *testing.T) {
		var sent int
		svc := NewNotificationService(func(to, subject, body string) error {
			sent++
			return nil
		})

		for i := 0; i < 5; i++ {
			if err := svc.Send("asha@example.com", "s", "b"); err != nil {
				t.Fatalf("send %d failed: %v", i, err)
			}
		}
		if sent != 5 {
			t.Errorf("expected 5 deliveries, got %d", sent)
		}
	})

	t.Run("breaker opens after consecutive failures", func(t *testing.T) {
		var attempts int
		svc := NewNotificationService(func(to, subject, body string) error {
			attempts++
			return errors.New("relay down")
		})

		for i := 0; i < 3; i++ {
			if err := svc.Send("asha@example.com", "s", "b"); err == nil {
				t.Fatalf("send %d should fail", i)
			}
		}
		attemptsBeforeOpen := attempts

		// The breaker is open now: further sends fail without dialing.
		if err := svc.Send("asha@example.com", "s", "b"); err == nil {
			t.Fatal("send through an open breaker should fail")
		}
		if attempts != attemptsBeforeOpen {
			t.Errorf("open breaker still dialed the relay (%d attempts)", attempts)
		}
	})
}
