package ioloader_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var docs = map[string]string{
	"/manifest.json": `{
		"version": "2025-09",
		"subjects": [
			{"subject": "信息科技", "subject_slug": "it", "record_count": 2,
			 "domains": {"数据与编码": 1, "算法": 1}},
			{"subject": "数学", "subject_slug": "math", "record_count": 1},
			{"subject": "体育", "subject_slug": "pe", "record_count": 1}
		]
	}`,
	"/subjects_meta.json": `{"subjects_meta": [
		{"subject_slug": "it", "subject_cn": "信息科技"},
		{"subject_slug": "math", "subject_cn": "数学"}
	]}`,
	"/skills_meta.json": `{
		"meta": {"version": "1.0"},
		"competencies": [{"code": "TS3", "name_en": "Problem solving",
			"subskills": [{"code": "TS3.2", "name_en": "Decompose"}]}]
	}`,
	"/by_subject/it.json": `{"standards": [
		{"code": "IT-H2-001", "subject_slug": "it", "grade_band": "H2",
		 "domain": "算法", "standard": "Describe an algorithm",
		 "ts_primary": ["TS3.2"], "ts_secondary": "TS1"},
		{"code": "IT-H3-001", "subject_slug": "it", "grade_band": "H3",
		 "domain": "数据与编码", "ts_primary": ["TS6"]}
	]}`,
	"/by_subject/math.json": `{"standards": [
		{"code": "ML-H1-001", "subject_slug": "math", "grade_band": "H1",
		 "ts_primary": ["TS3"]}
	]}`,
	"/by_subject/pe.json": `{"standards": [
		{"code": "PE-H1-001", "subject_slug": "pe", "grade_band": "H1",
		 "ts_primary": ["TS5"]}
	]}`,
	"/by_subject/broken.json": `[1, 2`,
	"/indexes/skill_to_subjects.json": `{
		"TS1": ["it"], "TS3": ["it", "math"], "TS5": ["pe"], "TS6": ["it"]
	}`,
	"/indexes/subject_stats.json": `{
		"it": {"total": 2, "domains": 2, "grade_bands": {"H2": 1, "H3": 1},
		       "skill_coverage": {"TS1": 1, "TS3": 1, "TS6": 1}}
	}`,
	"/indexes/code_to_subject.json": `{"IT-H2-001": "it", "ML-H1-001": "math"}`,
}

// fakeFetcher serves documents from memory and counts requests.
type fakeFetcher struct {
	mu    sync.Mutex
	calls map[string]int
	fails map[string]int
	// gate, when set, holds every fetch until it is closed.
	gate chan struct{}
}

func newFetcher() *fakeFetcher {
	return &fakeFetcher{
		calls: make(map[string]int),
		fails: make(map[string]int),
	}
}

func (f *fakeFetcher) Fetch(_ context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	f.calls[path]++
	fail := f.fails[path] > 0
	if fail {
		f.fails[path]--
	}
	doc, ok := docs[path]
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if fail {
		return nil, errors.New("connection reset")
	}
	if !ok {
		return nil, errors.New("404 Not Found")
	}
	return []byte(doc), nil
}

func (f *fakeFetcher) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}
