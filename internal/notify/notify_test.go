package notify

import (
	"testing"
	"time"
)

func TestShowExpiresAfterTTL(t *testing.T) {
	center := NewCenter(50 * time.Millisecond)
	center.Success("saved")

	visible := center.Visible()
	if len(visible) != 1 {
		t.Fatalf("expected 1 visible notification, got %d", len(visible))
	}
	if visible[0].Kind != Success {
		t.Fatalf("expected kind %q, got %q", Success, visible[0].Kind)
	}

	waitForEmpty(t, center)
}

func TestTimersAreIndependent(t *testing.T) {
	center := NewCenter(60 * time.Millisecond)
	center.Error("first")
	time.Sleep(30 * time.Millisecond)
	center.Error("second")

	// A later notification must not extend the first one's lifetime.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		visible := center.Visible()
		if len(visible) == 1 {
			if visible[0].Message != "second" {
				t.Fatalf("expected %q to outlive %q, got %q", "second", "first", visible[0].Message)
			}
			waitForEmpty(t, center)
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("first notification never expired ahead of the second")
}

func TestVisibleKeepsInsertionOrder(t *testing.T) {
	center := NewCenter(time.Minute)
	center.Success("a")
	center.Error("b")
	center.Success("c")

	visible := center.Visible()
	if len(visible) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(visible))
	}
	for i, want := range []string{"a", "b", "c"} {
		if visible[i].Message != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, visible[i].Message)
		}
	}
	if visible[0].ID == visible[1].ID || visible[1].ID == visible[2].ID {
		t.Fatalf("expected unique ids, got %d %d %d", visible[0].ID, visible[1].ID, visible[2].ID)
	}
}

func TestDismissRemovesOnlyTarget(t *testing.T) {
	center := NewCenter(time.Minute)
	center.Success("keep")
	center.Error("drop")

	visible := center.Visible()
	center.Dismiss(visible[1].ID)

	visible = center.Visible()
	if len(visible) != 1 || visible[0].Message != "keep" {
		t.Fatalf("expected only %q to remain, got %v", "keep", visible)
	}
}

func TestOnChangeFires(t *testing.T) {
	center := NewCenter(time.Minute)
	changes := make(chan struct{}, 8)
	center.OnChange(func() { changes <- struct{}{} })

	center.Success("hello")
	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatalf("expected OnChange after Show")
	}

	center.Dismiss(center.Visible()[0].ID)
	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatalf("expected OnChange after Dismiss")
	}
}

func waitForEmpty(t *testing.T, center *Center) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(center.Visible()) == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("notifications never expired")
}
