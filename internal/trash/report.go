package trash

// Status is where a target ended up.
type Status int

const (
	// StatusFailed means the target hit a per-target error (see Outcome.Err).
	StatusFailed Status = iota
	// StatusMoved means the target is in the trash under its own name.
	StatusMoved
	// StatusRenamed means the target is in the trash under a numbered name.
	StatusRenamed
	// StatusOverwritten means an older trash entry was removed to make room.
	StatusOverwritten
	// StatusSkipped means the name was taken and the target was left alone.
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusMoved:
		return "moved"
	case StatusRenamed:
		return "moved-renamed"
	case StatusOverwritten:
		return "overwritten"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Outcome records what happened to one target.
type Outcome struct {
	// Source is the target path as given on the command line.
	Source string
	// Dest is the path inside the trash folder; empty unless moved.
	Dest   string
	Status Status
	// Err is set when Status is StatusFailed.
	Err error
	// Planned is true for dry runs: Dest is where the target would go.
	Planned bool
}

// Report is the aggregate result of one run, one Outcome per processed
// target in input order. Targets after a fatal abort have no Outcome.
type Report struct {
	Outcomes []Outcome
}

func (r *Report) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Failed reports whether any target hit an error.
func (r *Report) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Err != nil {
			return true
		}
	}
	return false
}

// Count returns how many outcomes have status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}
