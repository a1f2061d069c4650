package bough

// InjectData queues a replacement tree. Queued trees are applied one per
// Update, before animations advance, as if SetData had been called at the
// start of that frame.
func (s *Scene) InjectData(root *Node) {
	s.injectQueue = append(s.injectQueue, root)
}

// InjectSeries queues a copy of the most recently queued (or current) tree
// with the data of every leaf named name replaced. It reports whether such a
// leaf exists.
func (s *Scene) InjectSeries(name string, data []Datum) bool {
	var base *Node
	switch {
	case len(s.injectQueue) > 0:
		base = s.injectQueue[len(s.injectQueue)-1]
	case s.transition != nil:
		base = s.transition.Current()
	}
	if base == nil {
		return false
	}
	next := base.Clone()
	found := false
	for _, leaf := range next.Leaves() {
		if leaf.Name == name {
			leaf.Data = data
			found = true
		}
	}
	if !found {
		return false
	}
	s.InjectData(next)
	return true
}

// PendingInjections returns the number of queued trees.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjections pops one tree from the inject queue and applies it.
// Returns true if a tree was consumed.
func (s *Scene) processInjections() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	root := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue[len(s.injectQueue)-1] = nil
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if err := s.SetData(root); err != nil {
		s.logger.Error("injected tree rejected", "error", err)
	}
	return true
}
