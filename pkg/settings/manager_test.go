package settings

import (
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "bot.db"))
	if err != nil {
		t.Fatalf("creating manager: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestToggleFollow(t *testing.T) {
	m := newTestManager(t)

	following, err := m.ToggleFollow("user1", "User One", "chat1", "VER")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !following {
		t.Error("expected following after first toggle")
	}

	following, err = m.ToggleFollow("user1", "User One", "chat1", "VER")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if following {
		t.Error("expected unfollowed after second toggle")
	}
}

func TestListFollowedDrivers(t *testing.T) {
	m := newTestManager(t)

	for _, driver := range []string{"VER", "LEC"} {
		if _, err := m.ToggleFollow("user1", "User One", "chat1", driver); err != nil {
			t.Fatalf("toggle %s: %v", driver, err)
		}
	}
	if _, err := m.ToggleFollow("user2", "User Two", "chat2", "HAM"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	drivers, err := m.ListFollowedDrivers("user1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(drivers) != 2 || drivers[0] != "LEC" || drivers[1] != "VER" {
		t.Errorf("drivers: got %v", drivers)
	}
}

func TestListFollowers(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.ToggleFollow("user1", "User One", "chat1", "VER"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := m.ToggleFollow("user2", "User Two", "chat2", "VER"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	users, err := m.ListFollowers("VER")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("followers: got %d, want 2", len(users))
	}

	users, err = m.ListFollowers("LEC")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("followers of LEC: got %d, want 0", len(users))
	}
}
