package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SuiteResult summarizes a directory of scenarios.
type SuiteResult struct {
	Total    int             `json:"total"`
	Passed   int             `json:"passed"`
	Failed   int             `json:"failed"`
	Failures []SuiteFailure  `json:"failures,omitempty"`
	Results  []ScenarioEntry `json:"results"`
}

// ScenarioEntry is the outcome of one scenario file.
type ScenarioEntry struct {
	File string `json:"file"`
	Name string `json:"name"`
	Pass bool   `json:"pass"`
}

// SuiteFailure explains why one scenario failed.
type SuiteFailure struct {
	File   string   `json:"file"`
	Name   string   `json:"name,omitempty"`
	Errors []string `json:"errors"`
}

// OK reports whether every scenario passed.
func (r *SuiteResult) OK() bool {
	return r.Failed == 0
}

// ScenarioFiles lists the *.yaml and *.yml files of dir, sorted. A path to a
// single file is returned as is.
func ScenarioFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("scenario path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// RunDir runs every scenario under path. Scenarios that fail to load or run
// count as failures; the error is non-nil only when path cannot be listed.
func RunDir(path string, opts ...Option) (*SuiteResult, error) {
	files, err := ScenarioFiles(path)
	if err != nil {
		return nil, err
	}

	suite := &SuiteResult{Results: []ScenarioEntry{}}
	for _, file := range files {
		suite.Total++
		entry := ScenarioEntry{File: file}

		scenario, err := LoadScenario(file)
		if err != nil {
			suite.fail(entry, []string{err.Error()})
			continue
		}
		entry.Name = scenario.Name

		result, err := Run(scenario, opts...)
		if err != nil {
			suite.fail(entry, []string{err.Error()})
			continue
		}
		if !result.Pass {
			suite.fail(entry, result.Errors)
			continue
		}

		entry.Pass = true
		suite.Passed++
		suite.Results = append(suite.Results, entry)
	}
	return suite, nil
}

func (r *SuiteResult) fail(entry ScenarioEntry, errs []string) {
	r.Failed++
	r.Results = append(r.Results, entry)
	r.Failures = append(r.Failures, SuiteFailure{File: entry.File, Name: entry.Name, Errors: errs})
}
