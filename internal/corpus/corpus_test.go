package corpus

import (
	"strings"
	"testing"
)

func TestParseConfusionSet(t *testing.T) {
	contents := "their there they're\nyour you're\n"
	cs, err := parseConfusionSet(strings.NewReader(contents))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cs) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(cs))
	}
	if len(cs[0]) != 3 || cs[0][0] != "their" {
		t.Fatalf("unexpected first group: %v", cs[0])
	}
}

func TestConfusionSet_Group(t *testing.T) {
	cs := ConfusionSet{{"their", "there"}, {"your", "you're"}}

	group := cs.Group("THEIR")
	if group == nil {
		t.Fatal("expected case-insensitive match for THEIR")
	}

	if cs.Group("nonexistent") != nil {
		t.Fatal("expected nil group for unknown word")
	}
}

func TestParseCounts(t *testing.T) {
	contents := "1 1000000\n2 100000\n3 10000\n"
	counts, err := parseCounts(strings.NewReader(contents))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts[1] != 1_000_000 || counts[2] != 100_000 || counts[3] != 10_000 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestParseCounts_RejectsInvalidArity(t *testing.T) {
	contents := "4 500\n"
	if _, err := parseCounts(strings.NewReader(contents)); err == nil {
		t.Fatal("expected error for n=4")
	}
}

func TestParseCounts_RejectsMalformedLine(t *testing.T) {
	contents := "1 notanumber\n"
	if _, err := parseCounts(strings.NewReader(contents)); err == nil {
		t.Fatal("expected error for malformed count")
	}
}
