package service

import (
	"sort"
	"sync"

	"go-market-reporter/internal/reporter/dto"
)

// ReportStore keeps the most recent rendered report per type so the
// HTTP surface can serve it without touching the filesystem.
type ReportStore struct {
	mu     sync.RWMutex
	latest map[string]dto.Report
}

// NewReportStore creates an empty store.
func NewReportStore() *ReportStore {
	return &ReportStore{latest: make(map[string]dto.Report)}
}

// Put replaces the stored report for its type.
func (s *ReportStore) Put(report dto.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[report.Type] = report
}

// Latest returns the stored report for a type.
func (s *ReportStore) Latest(reportType string) (dto.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.latest[reportType]
	return report, ok
}

// Types lists the report types with a stored report, sorted.
func (s *ReportStore) Types() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	types := make([]string, 0, len(s.latest))
	for t := range s.latest {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
