package series

import (
	"fmt"
	"sort"
)

// Store holds the national series and the per-state series built from the
// most recent successful fetch of each. Either may be absent.
//
// Store is not safe for concurrent use. Callers serialize ingestion with the
// rest of the selection calls.
type Store struct {
	national Series
	states   map[string]Series
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// IngestNational stores raw as the national series in chronological order,
// replacing any previous series. An empty input leaves the store unchanged.
func (s *Store) IngestNational(raw []DailyRecord, newestFirst bool) error {
	if len(raw) == 0 {
		return fmt.Errorf("ingest national: %w", ErrEmptyDataset)
	}
	s.national = chronological(raw, newestFirst)
	return nil
}

// IngestStates groups raw by state after putting it in chronological order.
// Relative order within each state is preserved. The previous mapping is
// replaced wholesale.
func (s *Store) IngestStates(raw []DailyRecord, newestFirst bool) error {
	if len(raw) == 0 {
		return fmt.Errorf("ingest states: %w", ErrEmptyDataset)
	}
	s.states = GroupByState(chronological(raw, newestFirst))
	return nil
}

// National returns the national series and whether it has been ingested.
func (s *Store) National() (Series, bool) {
	return s.national, s.national != nil
}

// States returns the per-state mapping and whether it has been ingested.
func (s *Store) States() (map[string]Series, bool) {
	return s.states, s.states != nil
}

// State returns the series for one state code.
func (s *Store) State(code string) (Series, bool) {
	ser, ok := s.states[code]
	return ser, ok
}

// StateCodes returns the ingested state codes in sorted order.
func (s *Store) StateCodes() []string {
	return SortedCodes(s.states)
}

// GroupByState splits s by State, keeping each group's records in the order
// they appear in s.
func GroupByState(s Series) map[string]Series {
	groups := make(map[string]Series)
	for _, r := range s {
		groups[r.State] = append(groups[r.State], r)
	}
	return groups
}

// SortedCodes returns the keys of m in sorted order.
func SortedCodes(m map[string]Series) []string {
	codes := make([]string, 0, len(m))
	for code := range m {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
