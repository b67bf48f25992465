package ecs

// Stage runs a named group of systems as one step of the world update, in
// the order they were added.
type Stage struct {
	name    string
	systems []System
}

func NewStage(name string, systems ...System) *Stage {
	s := &Stage{name: name}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Stage) Name() string {
	return s.name
}

func (s *Stage) Add(sys System) {
	if sys != nil {
		s.systems = append(s.systems, sys)
	}
}

func (s *Stage) Len() int {
	return len(s.systems)
}

func (s *Stage) Update(w *World) {
	for _, sys := range s.systems {
		sys.Update(w)
	}
}
