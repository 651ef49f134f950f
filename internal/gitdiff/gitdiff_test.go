package gitdiff

import (
	"testing"

	"vpager/internal/buffer"
)

func TestParseDiffEmpty(t *testing.T) {
	m, err := parseDiff("")
	if err != nil {
		t.Fatalf("parseDiff: %v", err)
	}
	if m != nil {
		t.Fatalf("expected nil map for empty diff, got %v", m)
	}
}

func TestParseDiffAddition(t *testing.T) {
	diff := "diff --git a/file.go b/file.go\n" +
		"--- a/file.go\n" +
		"+++ b/file.go\n" +
		"@@ -4,0 +5,3 @@ func foo() {\n" +
		"+line1\n" +
		"+line2\n" +
		"+line3\n"

	m, err := parseDiff(diff)
	if err != nil {
		t.Fatalf("parseDiff: %v", err)
	}
	for _, row := range []int{4, 5, 6} {
		if m[row] != buffer.ChangeAdded {
			t.Errorf("row %d = %v, want ChangeAdded", row, m[row])
		}
	}
}

func TestParseDiffDeletion(t *testing.T) {
	diff := "@@ -8,2 +10,0 @@ func bar() {\n-old1\n-old2\n"

	m, err := parseDiff(diff)
	if err != nil {
		t.Fatalf("parseDiff: %v", err)
	}
	if m[9] != buffer.ChangeDeletedBefore {
		t.Errorf("row 9 = %v, want ChangeDeletedBefore", m[9])
	}
}

func TestParseDiffModification(t *testing.T) {
	diff := "@@ -7,2 +7,3 @@ func baz() {\n-old\n-old2\n+new1\n+new2\n+new3\n"

	m, err := parseDiff(diff)
	if err != nil {
		t.Fatalf("parseDiff: %v", err)
	}
	for _, row := range []int{6, 7, 8} {
		if m[row] != buffer.ChangeModified {
			t.Errorf("row %d = %v, want ChangeModified", row, m[row])
		}
	}
}

func TestParseDiffSingleLineNoComma(t *testing.T) {
	diff := "@@ -5 +5 @@\n-old\n+new\n"

	m, err := parseDiff(diff)
	if err != nil {
		t.Fatalf("parseDiff: %v", err)
	}
	if m[4] != buffer.ChangeModified {
		t.Errorf("row 4 = %v, want ChangeModified", m[4])
	}
}

func TestChangesUsesInjectedRunner(t *testing.T) {
	prev := runFn
	defer func() { runFn = prev }()

	runFn = func(path string) (string, error) {
		if path != "tracked.go" {
			t.Fatalf("runFn called with %q, want %q", path, "tracked.go")
		}
		return "@@ -1,0 +1,1 @@\n+hello\n", nil
	}

	m, err := New().Changes("tracked.go")
	if err != nil {
		t.Fatalf("Changes: %v", err)
	}
	if m[0] != buffer.ChangeAdded {
		t.Fatalf("Changes = %v, want row 0 ChangeAdded", m)
	}
}
