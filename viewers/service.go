package viewers

import (
	"sync"

	"snake-sim/models"
)

// Service is the registry of connected viewers, kept in join order so
// broadcasts hit first-joined viewers first.
type Service struct {
	mu      sync.RWMutex
	viewers map[string]*models.Viewer
	order   []string
}

func NewService() *Service {
	return &Service{
		viewers: make(map[string]*models.Viewer),
		order:   make([]string, 0),
	}
}

func (s *Service) Add(viewer *models.Viewer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.viewers[viewer.ID]; exists {
		return false
	}

	s.viewers[viewer.ID] = viewer
	s.order = append(s.order, viewer.ID)
	return true
}

func (s *Service) Remove(viewerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.viewers, viewerID)
	for i, id := range s.order {
		if id == viewerID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Service) Get(viewerID string) (*models.Viewer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	viewer, exists := s.viewers[viewerID]
	return viewer, exists
}

func (s *Service) Snapshot() []*models.Viewer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Viewer, 0, len(s.order))
	for _, id := range s.order {
		if viewer, exists := s.viewers[id]; exists {
			result = append(result, viewer)
		}
	}
	return result
}

func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.viewers)
}
