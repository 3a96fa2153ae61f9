// Package suite runs YAML files of pattern test cases.
//
//	cases:
//	  - pattern: "a*bc"
//	    accept: ["bc", "abc"]
//	    reject: ["a", ""]
package suite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"

	"github.com/sourcegraph/conc/pool"
	"gopkg.in/yaml.v2"

	"gregex"
)

type Case struct {
	Pattern string   `yaml:"pattern"`
	Accept  []string `yaml:"accept"`
	Reject  []string `yaml:"reject"`
}

type Suite struct {
	Cases []Case `yaml:"cases"`
}

// Failure is one unexpected outcome. Err is set when the pattern did not compile.
type Failure struct {
	Case    int
	Pattern string
	Input   string
	Want    bool
	Err     error
}

func (f Failure) String() string {
	if f.Err != nil {
		return fmt.Sprintf("case %d: pattern %q: %v", f.Case, f.Pattern, f.Err)
	}
	return fmt.Sprintf("case %d: pattern %q on %q: want %v got %v", f.Case, f.Pattern, f.Input, f.Want, !f.Want)
}

type Result struct {
	Checks   int
	Failures []Failure
}

func (r *Result) OK() bool { return len(r.Failures) == 0 }

func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func Decode(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.UnmarshalStrict(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

type caseResult struct {
	checks   int
	failures []Failure
}

// Run checks every case using at most workers goroutines; workers <= 0
// means GOMAXPROCS. Cases not yet started when ctx is done are skipped and
// ctx.Err() is returned.
func Run(ctx context.Context, s *Suite, workers int) (*Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := pool.New().WithMaxGoroutines(workers)
	results := make(chan caseResult, len(s.Cases))

	for i, c := range s.Cases {
		i, c := i, c
		p.Go(func() {
			if ctx.Err() != nil {
				return
			}
			results <- runCase(i, c)
		})
	}

	p.Wait()
	close(results)

	res := &Result{}
	for r := range results {
		res.Checks += r.checks
		res.Failures = append(res.Failures, r.failures...)
	}
	sort.SliceStable(res.Failures, func(i, j int) bool { return res.Failures[i].Case < res.Failures[j].Case })
	return res, ctx.Err()
}

func runCase(i int, c Case) caseResult {
	re, err := gregex.Parse(c.Pattern)
	if err != nil {
		return caseResult{checks: 1, failures: []Failure{{Case: i, Pattern: c.Pattern, Err: err}}}
	}

	var out caseResult
	check := func(input string, want bool) {
		out.checks++
		if re.Match(input) != want {
			out.failures = append(out.failures, Failure{Case: i, Pattern: c.Pattern, Input: input, Want: want})
		}
	}
	for _, in := range c.Accept {
		check(in, true)
	}
	for _, in := range c.Reject {
		check(in, false)
	}
	slog.Debug("suite case done", "case", i, "pattern", c.Pattern, "checks", out.checks, "failures", len(out.failures))
	return out
}
