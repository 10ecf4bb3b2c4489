package ordering

// Sequence is an ordered list of post identifiers held by an editing client.
// It exists so drag-reordering is a value operation separate from persistence:
// the client splices locally, submits the whole result, then confirms
// convergence against a re-fetch.
type Sequence []string

// MoveElement returns a new sequence with the element at from spliced in at
// to. Out-of-range indexes return the receiver unchanged.
func (s Sequence) MoveElement(from, to int) Sequence {
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) {
		return s
	}
	result := make(Sequence, 0, len(s))
	result = append(result, s[:from]...)
	result = append(result, s[from+1:]...)
	moved := s[from]
	result = append(result[:to], append(Sequence{moved}, result[to:]...)...)
	return result
}

// Equal is the convergence check of the reorder protocol: the submitted
// sequence must match the ids of a subsequent ordered fetch exactly.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Duplicates returns the first identifier that appears more than once, if any.
func (s Sequence) Duplicates() (string, bool) {
	seen := make(map[string]struct{}, len(s))
	for _, id := range s {
		if _, ok := seen[id]; ok {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return "", false
}
