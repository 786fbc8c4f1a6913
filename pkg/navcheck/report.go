package navcheck

import "time"

// Report collects the results of one Run.
type Report struct {
	RunID    string
	BaseURL  string
	Started  time.Time
	Finished time.Time
	Results  []Result
}

// Passed returns the number of cases that passed.
func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed() {
			n++
		}
	}
	return n
}

// Failed returns the number of cases that failed.
func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// OK reports whether the run had at least one case and every case passed.
func (r *Report) OK() bool {
	return len(r.Results) > 0 && r.Failed() == 0
}

// Failures returns the failed results in run order.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Passed() {
			out = append(out, res)
		}
	}
	return out
}

// Elapsed returns the wall time of the run.
func (r *Report) Elapsed() time.Duration {
	return r.Finished.Sub(r.Started)
}
