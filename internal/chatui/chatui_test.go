package chatui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/feelfree/ff/internal/models"
)

func TestEnterAppendsUserMessageAndWaits(t *testing.T) {
	m := New(nil, "s-1", nil)
	m.ready = true
	m.viewport.Width = 80
	m.viewport.Height = 20
	m.input.SetValue("hello")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := next.(Model)

	if len(got.Messages()) != 1 || got.Messages()[0].Sender != "user" || got.Messages()[0].Text != "hello" {
		t.Fatalf("messages: %v", got.Messages())
	}
	if !got.waiting {
		t.Fatal("should be waiting for the reply")
	}
	if cmd == nil {
		t.Fatal("enter should produce a send command")
	}
	if got.input.Value() != "" {
		t.Fatalf("input not cleared: %q", got.input.Value())
	}
}

func TestBlankInputIsIgnored(t *testing.T) {
	m := New(nil, "s-1", nil)
	m.input.SetValue("   ")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := next.(Model)
	if len(got.Messages()) != 0 || cmd != nil {
		t.Fatalf("blank send: messages=%v cmd=%v", got.Messages(), cmd)
	}
}

func TestReplyAppendsBotMessage(t *testing.T) {
	m := New(nil, "s-1", []models.ChatMessage{{Sender: "user", Text: "hi"}})
	m.waiting = true

	next, _ := m.Update(replyMsg{text: "hello there"})
	got := next.(Model)
	if got.waiting {
		t.Fatal("waiting should be cleared")
	}
	last := got.Messages()[len(got.Messages())-1]
	if last.Sender != "bot" || last.Text != "hello there" {
		t.Fatalf("bot message: %+v", last)
	}
}

func TestReplyErrorSurfacesInTranscript(t *testing.T) {
	m := New(nil, "s-1", nil)
	m.waiting = true

	next, _ := m.Update(replyMsg{err: errors.New("backend unavailable")})
	got := next.(Model)
	last := got.Messages()[len(got.Messages())-1]
	if last.Sender != "bot" || !strings.Contains(last.Text, "backend unavailable") {
		t.Fatalf("error message: %+v", last)
	}
}

func TestRenderTranscriptSeparatesSenders(t *testing.T) {
	out := renderTranscript([]models.ChatMessage{
		{Sender: "user", Text: "how are you"},
		{Sender: "bot", Text: "doing well"},
	}, 60)
	if !strings.Contains(out, "how are you") || !strings.Contains(out, "doing well") {
		t.Fatalf("transcript: %q", out)
	}
}
