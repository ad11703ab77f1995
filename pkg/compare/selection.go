package compare

import (
	"slices"
	"strings"
	"sync"
)

// Selection is the transient basket of trek ids marked for side by side
// comparison. Insertion order is preserved for the navigation target.
type Selection struct {
	mu  sync.Mutex
	ids []string
}

func NewSelection() *Selection {
	return &Selection{}
}

// Toggle adds the id when absent and removes it when present. Returns true
// when the id is selected after the call.
func (s *Selection) Toggle(id string) bool {
	if id == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = nil
}

func (s *Selection) Ids() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ids)
}

func (s *Selection) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// CanCompare reports whether enough treks are selected for a side by side
// view.
func (s *Selection) CanCompare() bool {
	return s.Size() >= 2
}

// Target builds the comparison navigation target. The second return is
// false while fewer than two treks are selected.
func (s *Selection) Target() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ids) < 2 {
		return "", false
	}
	return "/compare?ids=" + strings.Join(s.ids, ","), true
}
