package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"taskdeck/internal/model"
)

type WriteOptions struct {
	RenderOptions
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteProject renders the report and writes it under toDir/reports/. It
// refuses to clobber an existing file unless Overwrite is set.
func WriteProject(toDir string, p model.Project, stats model.ProjectStats, team []model.TeamMember, tasks []model.Task, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	md := ProjectMarkdown(p, stats, team, tasks, opt.RenderOptions)

	outDir := filepath.Join(toDir, "reports")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	outPath := filepath.Join(outDir, fmt.Sprintf("project-%d.md", p.ID))
	if err := writeFile(outPath, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
