// Package docs bundles the help pages shipped inside the binary so the
// `docs` command works offline.
package docs

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Topic is one embedded help page. Title comes from the page's first
// markdown heading, falling back to the name.
type Topic struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Topics lists every embedded page, sorted by name.
func Topics() []Topic {
	entries, err := contentFS.ReadDir("content")
	if err != nil {
		return nil
	}
	topics := make([]Topic, 0, len(entries))
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".md")
		if !ok || name == "" {
			continue
		}
		t := Topic{Name: name, Title: name}
		if b, err := contentFS.ReadFile("content/" + e.Name()); err == nil {
			if h := firstHeading(b); h != "" {
				t.Title = h
			}
		}
		topics = append(topics, t)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics
}

// Get returns the markdown body for name.
func Get(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", fmt.Errorf("empty docs topic")
	}
	b, err := contentFS.ReadFile("content/" + name + ".md")
	if err != nil {
		return "", fmt.Errorf("unknown docs topic %q", name)
	}
	return string(b), nil
}

func firstHeading(b []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if rest, ok := strings.CutPrefix(line, "#"); ok {
			return strings.TrimSpace(strings.TrimLeft(rest, "#"))
		}
	}
	return ""
}
