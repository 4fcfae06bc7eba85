package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

// ReportStore persists and retrieves analysis reports so a report produced
// in CI can be inspected later with the view command.
type ReportStore interface {
	// SaveReport writes the report into dir and returns the file it created.
	SaveReport(dir m.Path, report m.AnalysisReport) (m.Path, error)

	// LoadLatest reads the most recently written report in dir.
	LoadLatest(dir m.Path) (m.AnalysisReport, error)
}

// LocalReportStore stores each report as a YAML file named by a short hash
// of its content.
type LocalReportStore struct{}

// NewLocalReportStore constructs a LocalReportStore.
func NewLocalReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

const reportFileExt = ".yaml"

// SaveReport serializes the report to YAML under dir, creating the directory
// if needed.
func (rs *LocalReportStore) SaveReport(dir m.Path, report m.AnalysisReport) (m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("creating reports dir: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}

	name := computeReportHash(data) + reportFileExt
	path := filepath.Join(string(dir), name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	return m.Path(path), nil
}

// LoadLatest returns the report file with the newest modification time.
func (rs *LocalReportStore) LoadLatest(dir m.Path) (m.AnalysisReport, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return m.AnalysisReport{}, fmt.Errorf("reading reports dir: %w", err)
	}

	var latest string

	var latestMod int64

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), reportFileExt) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if mod := info.ModTime().UnixNano(); latest == "" || mod > latestMod {
			latest = entry.Name()
			latestMod = mod
		}
	}

	if latest == "" {
		return m.AnalysisReport{}, fmt.Errorf("no reports found in %s", dir)
	}

	data, err := os.ReadFile(filepath.Join(string(dir), latest))
	if err != nil {
		return m.AnalysisReport{}, fmt.Errorf("reading report: %w", err)
	}

	var report m.AnalysisReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.AnalysisReport{}, fmt.Errorf("unmarshaling report %s: %w", latest, err)
	}

	return report, nil
}

// computeReportHash returns a short stable fingerprint for the serialized
// report, used as its filename.
func computeReportHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16]
}
