package interview

import "slices"

// State is the whole application state and the unit of persistence.
// Candidates are ordered most recent first.
type State struct {
	Candidates       []Candidate `json:"candidates"`
	CurrentSessionID *string     `json:"currentSessionId"`
}

// Empty is the state used when nothing was persisted yet.
func Empty() State {
	return State{Candidates: []Candidate{}}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := State{
		Candidates:       slices.Clone(s.Candidates),
		CurrentSessionID: clonePtr(s.CurrentSessionID),
	}
	for i, c := range out.Candidates {
		out.Candidates[i] = c.Clone()
	}
	return out
}

// Find returns the candidate with the given id.
func (s State) Find(id string) (*Candidate, bool) {
	for i := range s.Candidates {
		if s.Candidates[i].ID == id {
			return &s.Candidates[i], true
		}
	}
	return nil, false
}

// Active returns the candidate of the current session.
func (s State) Active() (*Candidate, bool) {
	if s.CurrentSessionID == nil {
		return nil, false
	}
	return s.Find(*s.CurrentSessionID)
}

// Unfinished returns the most recent candidate whose interview is still in
// progress.
func (s State) Unfinished() (*Candidate, bool) {
	for i := range s.Candidates {
		if s.Candidates[i].Status == StatusInProgress {
			return &s.Candidates[i], true
		}
	}
	return nil, false
}
