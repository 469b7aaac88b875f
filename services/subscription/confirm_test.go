package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	"pagex/models"
)

func TestConfirmRedirect(t *testing.T) {
	ctx := context.Background()

	t.Run("Given the webhook already settled When ConfirmRedirect called Then it returns immediately", func(t *testing.T) {
		repo := newMockUserRepo(&models.User{ID: "u1", SubscriptionStatus: models.SubscriptionActive})
		svc := &DefaultSubscriptionService{Users: repo, ConfirmWait: time.Second, PollInterval: 10 * time.Millisecond}

		if err := svc.ConfirmRedirect(ctx, "u1", "cs_test_1"); err != nil {
			t.Fatalf("ConfirmRedirect failed: %v", err)
		}
	})

	t.Run("Given the webhook lands mid-wait When ConfirmRedirect polls Then it observes activation", func(t *testing.T) {
		repo := newMockUserRepo(&models.User{ID: "u1", SubscriptionStatus: models.SubscriptionPending})
		svc := &DefaultSubscriptionService{Users: repo, ConfirmWait: time.Second, PollInterval: 5 * time.Millisecond}

		go func() {
			time.Sleep(25 * time.Millisecond)
			_ = repo.SetSubscriptionStatus("u1", models.SubscriptionActive)
		}()

		if err := svc.ConfirmRedirect(ctx, "u1", "cs_test_1"); err != nil {
			t.Fatalf("ConfirmRedirect should succeed once the webhook settles: %v", err)
		}
	})

	t.Run("Given the webhook never lands When the wait elapses Then ErrConfirmationTimeout and status unchanged", func(t *testing.T) {
		repo := newMockUserRepo(&models.User{ID: "u1", SubscriptionStatus: models.SubscriptionPending})
		svc := &DefaultSubscriptionService{Users: repo, ConfirmWait: 30 * time.Millisecond, PollInterval: 5 * time.Millisecond}

		err := svc.ConfirmRedirect(ctx, "u1", "cs_test_1")

		if !errors.Is(err, ErrConfirmationTimeout) {
			t.Fatalf("expected ErrConfirmationTimeout, got %v", err)
		}
		if got := repo.status("u1"); got != models.SubscriptionPending {
			t.Errorf("a redirect alone must never change status, got %q", got)
		}
	})

	t.Run("Given the caller navigates away When ctx is cancelled Then the wait aborts with ctx.Err", func(t *testing.T) {
		repo := newMockUserRepo(&models.User{ID: "u1", SubscriptionStatus: models.SubscriptionPending})
		svc := &DefaultSubscriptionService{Users: repo, ConfirmWait: time.Second, PollInterval: 5 * time.Millisecond}

		callerCtx, cancel := context.WithCancel(ctx)
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		err := svc.ConfirmRedirect(callerCtx, "u1", "cs_test_1")

		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("Given no session id When ConfirmRedirect called Then it fails without polling", func(t *testing.T) {
		repo := newMockUserRepo(&models.User{ID: "u1", SubscriptionStatus: models.SubscriptionPending})
		svc := &DefaultSubscriptionService{Users: repo}

		if err := svc.ConfirmRedirect(ctx, "u1", ""); err == nil {
			t.Fatal("expected an error for a missing session id")
		}
	})

	t.Run("Given an unknown user When ConfirmRedirect called Then ErrUserNotFound", func(t *testing.T) {
		svc := &DefaultSubscriptionService{Users: newMockUserRepo(), ConfirmWait: 30 * time.Millisecond, PollInterval: 5 * time.Millisecond}

		if err := svc.ConfirmRedirect(ctx, "missing", "cs_test_1"); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}
