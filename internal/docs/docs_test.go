package docs

import (
	"sort"
	"strings"
	"testing"
)

func TestTopicsListsEveryEmbeddedPage(t *testing.T) {
	topics := Topics()
	if len(topics) == 0 {
		t.Fatalf("no embedded topics")
	}
	if !sort.SliceIsSorted(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name }) {
		t.Fatalf("topics not sorted: %+v", topics)
	}

	byName := map[string]Topic{}
	for _, tp := range topics {
		byName[tp.Name] = tp
	}
	if got, ok := byName["getting-started"]; !ok || got.Title != "Getting started" {
		t.Fatalf("getting-started = %+v, ok=%v", got, ok)
	}
	if got, ok := byName["keybindings"]; !ok || got.Title != "Keybindings" {
		t.Fatalf("keybindings = %+v, ok=%v", got, ok)
	}
}

func TestGetReturnsBodyAndNormalizesName(t *testing.T) {
	body, err := Get("  Filters ")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !strings.HasPrefix(body, "# Filters") {
		t.Fatalf("unexpected body start: %q", body[:min(len(body), 40)])
	}
}

func TestGetRejectsUnknownAndEmptyTopics(t *testing.T) {
	if _, err := Get("no-such-page"); err == nil {
		t.Fatalf("unknown topic accepted")
	}
	if _, err := Get("   "); err == nil {
		t.Fatalf("empty topic accepted")
	}
}
