package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModelRendersResult(t *testing.T) {
	m := newModel(context.Background(), "abn check", time.Second, func(context.Context) ([]string, error) {
		return []string{"valid: true"}, nil
	})
	if view := m.View(); !strings.Contains(view, "running") {
		t.Fatalf("expected running view, got %q", view)
	}

	msg := m.Init()()
	next, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatal("expected quit command after result")
	}
	view := next.View()
	if !strings.Contains(view, "OK") || !strings.Contains(view, "valid: true") {
		t.Fatalf("unexpected view %q", view)
	}
}

func TestModelRendersFailure(t *testing.T) {
	m := newModel(context.Background(), "health", time.Second, func(context.Context) ([]string, error) {
		return []string{"db: down"}, errors.New("unhealthy")
	})
	next, _ := m.Update(m.Init()())
	view := next.View()
	if !strings.Contains(view, "FAILED") || !strings.Contains(view, "unhealthy") || !strings.Contains(view, "db: down") {
		t.Fatalf("unexpected view %q", view)
	}
}

func TestModelCtrlCCancels(t *testing.T) {
	m := newModel(context.Background(), "health", time.Second, nil)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if res := next.(model); !errors.Is(res.err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", res.err)
	}
}
