package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"storecheck/internal/config"
	"storecheck/internal/history"
	"storecheck/internal/verify"
)

// Outcome is the result of one scenario execution.
type Outcome struct {
	Name    string        `json:"name"`
	Pass    bool          `json:"pass"`
	Branch  verify.Branch `json:"branch,omitempty"`
	Errors  []string      `json:"errors,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
}

// Summary is the aggregate result of a suite run.
type Summary struct {
	Session  string    `json:"session"`
	Seed     int64     `json:"seed"`
	Outcomes []Outcome `json:"outcomes"`
	Passed   int       `json:"passed"`
	Failed   int       `json:"failed"`
	Total    int       `json:"total"`
}

// Runner executes registered scenarios sequentially. Scenarios share no
// state, so a parallel runner would be safe, but nothing in the suite
// requires one and no concurrency control exists here.
type Runner struct {
	Cfg    config.Session
	Log    *slog.Logger
	Filter string // glob on scenario names; empty runs everything

	// History, when set, records every outcome. Entity data is never
	// persisted; only suite verdicts are.
	History *history.Store
}

// Run executes the (filtered) registry and returns the summary. A scenario
// failure is reflected in the summary, not in the returned error; the
// error is reserved for runner-level problems such as a bad filter.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	log := r.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	seed := r.Cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sum := &Summary{
		Session: uuid.NewString(),
		Seed:    seed,
	}

	for _, sc := range Registry() {
		if r.Filter != "" {
			matched, err := filepath.Match(r.Filter, sc.Name)
			if err != nil {
				return nil, fmt.Errorf("invalid filter pattern %q: %w", r.Filter, err)
			}
			if !matched {
				continue
			}
		}

		log.Info("scenario starting", "name", sc.Name, "session", sum.Session)
		started := time.Now()
		env := NewEnv(r.Cfg, sc.Name, seed, log)
		rep := sc.Run(env)
		elapsed := time.Since(started)

		outcome := Outcome{
			Name:    sc.Name,
			Pass:    rep.Pass,
			Branch:  rep.Branch,
			Errors:  rep.Errors,
			Elapsed: elapsed,
		}
		sum.Outcomes = append(sum.Outcomes, outcome)
		sum.Total++
		if rep.Pass {
			sum.Passed++
		} else {
			sum.Failed++
		}
		log.Info("scenario finished",
			"name", sc.Name,
			"pass", rep.Pass,
			"branch", rep.Branch,
			"elapsed", elapsed,
		)

		if r.History != nil {
			if err := r.History.Record(ctx, history.Entry{
				Session:   sum.Session,
				Scenario:  sc.Name,
				Pass:      rep.Pass,
				Branch:    string(rep.Branch),
				Errors:    strings.Join(rep.Errors, "; "),
				StartedAt: started,
				Elapsed:   elapsed,
			}); err != nil {
				return nil, fmt.Errorf("record outcome for %s: %w", sc.Name, err)
			}
		}
	}

	return sum, nil
}
