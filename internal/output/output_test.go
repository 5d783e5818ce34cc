package output

import (
	"strings"
	"testing"
	"time"

	"github.com/feelfree/ff/internal/models"
)

func TestGoalLine(t *testing.T) {
	g := models.Goal{
		ID:        "0193b2ea-aaaa-bbbb-cccc-111122223333",
		Title:     "Meditate",
		Frequency: models.FrequencyDaily,
	}

	line := GoalLine(g, false)
	if !strings.Contains(line, "[ ]") || !strings.Contains(line, "Meditate") {
		t.Fatalf("pending line: %q", line)
	}
	if !strings.Contains(line, "(daily)") {
		t.Fatalf("frequency tag: %q", line)
	}
	if !strings.Contains(line, "0193b2ea") || strings.Contains(line, "1111") {
		t.Fatalf("short id: %q", line)
	}

	if line := GoalLine(g, true); !strings.Contains(line, "[x]") {
		t.Fatalf("done line: %q", line)
	}
}

func TestContactLine(t *testing.T) {
	personal := models.SosContact{ID: "c1", Name: "Sam", Phone: "555-0101", Type: models.ContactPersonal}
	helpline := models.SosContact{ID: "c2", Name: "KIRAN", Phone: "18005990019", Type: models.ContactHelpline}

	if line := ContactLine(personal); !strings.Contains(line, "[personal]") || !strings.Contains(line, "555-0101") {
		t.Fatalf("personal: %q", line)
	}
	if line := ContactLine(helpline); !strings.Contains(line, "[helpline]") || !strings.Contains(line, "KIRAN") {
		t.Fatalf("helpline: %q", line)
	}
}

func TestMoodLineIncludesNote(t *testing.T) {
	m := models.MoodEntry{Date: "2024-03-15", Mood: "happy", Note: "sunny walk"}
	line := MoodLine(m)
	if !strings.Contains(line, "2024-03-15") || !strings.Contains(line, "sunny walk") {
		t.Fatalf("mood line: %q", line)
	}
}

func TestSessionLineStates(t *testing.T) {
	start := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	active := models.Session{ID: "s1", StartedAt: start}
	if line := SessionLine(active); !strings.Contains(line, "active") {
		t.Fatalf("active session: %q", line)
	}

	end := start.Add(time.Hour)
	ended := models.Session{ID: "s2", StartedAt: start, EndedAt: &end}
	if line := SessionLine(ended); !strings.Contains(line, "ended") {
		t.Fatalf("ended session: %q", line)
	}
}

func TestRenderMarkdownWithWidth(t *testing.T) {
	out, err := RenderMarkdownWithWidth("# Hello\n\nsome *text*", 40)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Hello") {
		t.Fatalf("rendered: %q", out)
	}

	empty, err := RenderMarkdownWithWidth("   ", 40)
	if err != nil || empty != "" {
		t.Fatalf("blank input: %q err=%v", empty, err)
	}
}
