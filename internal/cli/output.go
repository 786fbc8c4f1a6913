package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/liamsorsby/website-e2e/pkg/navcheck"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
)

func printHeader(w io.Writer, s navcheck.Suite) {
	fmt.Fprintf(w, "Navigation checks against %s (%d cases)\n\n", s.BaseURL, len(s.Cases))
}

func printResult(w io.Writer, res navcheck.Result) {
	if res.Passed() {
		fmt.Fprintf(w, "%s %s %s\n", green("✓"), res.Case.Name, dim(fmt.Sprintf("(%s)", round(res.Duration))))
		return
	}
	fmt.Fprintf(w, "%s %s %s\n", red("✗"), res.Case.Name, dim(fmt.Sprintf("(%s)", round(res.Duration))))
	fmt.Fprintf(w, "    %s: %v\n", navcheck.Kind(res.Err), res.Err)
	if res.URL != "" {
		fmt.Fprintf(w, "    url: %s\n", res.URL)
	}
}

func printSummary(w io.Writer, r *navcheck.Report) {
	fmt.Fprintln(w)

	status := green("PASS")
	if !r.OK() {
		status = red("FAIL")
	}
	fmt.Fprintf(w, "%s %d passed, %d failed %s\n", status, r.Passed(), r.Failed(), dim(fmt.Sprintf("(%s)", round(r.Elapsed()))))
	fmt.Fprintf(w, "Run ID: %s\n", r.RunID)
}

type jsonResult struct {
	Name       string `json:"name"`
	Passed     bool   `json:"passed"`
	URL        string `json:"url,omitempty"`
	Kind       string `json:"kind,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

type jsonReport struct {
	RunID    string       `json:"run_id"`
	BaseURL  string       `json:"base_url"`
	Started  time.Time    `json:"started"`
	Finished time.Time    `json:"finished"`
	Passed   int          `json:"passed"`
	Failed   int          `json:"failed"`
	Results  []jsonResult `json:"results"`
}

func printJSON(w io.Writer, r *navcheck.Report) error {
	out := jsonReport{
		RunID:    r.RunID,
		BaseURL:  r.BaseURL,
		Started:  r.Started.UTC(),
		Finished: r.Finished.UTC(),
		Passed:   r.Passed(),
		Failed:   r.Failed(),
		Results:  make([]jsonResult, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		jr := jsonResult{
			Name:       res.Case.Name,
			Passed:     res.Passed(),
			URL:        res.URL,
			Kind:       navcheck.Kind(res.Err),
			DurationMS: res.Duration.Milliseconds(),
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		out.Results = append(out.Results, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func round(d time.Duration) time.Duration {
	return d.Round(time.Millisecond)
}
