package scheduler

import "maps"

// GetTargetStatusMap returns a copy of the internal target status map.
// This is exported for testing purposes only.
func (s *Scheduler) GetTargetStatusMap() map[string]TargetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.targetStatus)
}
