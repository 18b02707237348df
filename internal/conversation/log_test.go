package conversation

import (
	"testing"

	"contextify/internal/llm"
)

func TestTurnLogAppendsInPairs(t *testing.T) {
	var l TurnLog
	l.Append(
		llm.Turn{Role: llm.RoleUser, Text: "q"},
		llm.Turn{Role: llm.RoleModel, Text: `{"status":"COMPLETE","message":"a"}`},
	)
	if l.Len() != 2 {
		t.Fatalf("len = %d, want 2", l.Len())
	}
	snap := l.Snapshot()
	if snap[0].Role != llm.RoleUser || snap[1].Role != llm.RoleModel {
		t.Fatalf("roles = %s/%s", snap[0].Role, snap[1].Role)
	}
}

func TestTurnLogSnapshotIsACopy(t *testing.T) {
	var l TurnLog
	l.Append(llm.Turn{Role: llm.RoleUser, Text: "q"}, llm.Turn{Role: llm.RoleModel, Text: "a"})
	snap := l.Snapshot()
	snap[0].Text = "mutated"
	if l.Snapshot()[0].Text != "q" {
		t.Fatal("snapshot aliases the log")
	}
}

func TestTurnLogReset(t *testing.T) {
	var l TurnLog
	l.Append(llm.Turn{}, llm.Turn{})
	l.Reset()
	if l.Len() != 0 {
		t.Fatalf("len after reset = %d", l.Len())
	}
}
