package entity

import "testing"

func TestParseTaskSort(t *testing.T) {
	tests := map[string]TaskSort{
		"status":   SortStatus,
		" Status ": SortStatus,
		"priority": SortPriority,
		"PRIORITY": SortPriority,
		"estimate": SortEstimate,
		"":         SortEstimate,
		"due_date": SortEstimate,
	}

	for raw, want := range tests {
		if got := ParseTaskSort(raw); got != want {
			t.Errorf("ParseTaskSort(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestTaskStatusValid(t *testing.T) {
	for _, status := range Statuses {
		if !status.Valid() {
			t.Errorf("%q should be valid", status)
		}
	}
	if TaskStatus("archived").Valid() {
		t.Error("archived should not be valid")
	}
}

func TestFreetimeIDs(t *testing.T) {
	task := &Task{Freetimes: []Freetime{{ID: 3}, {ID: 1}}}
	ids := task.FreetimeIDs()
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 1 {
		t.Errorf("FreetimeIDs() = %v, want [3 1]", ids)
	}
}
