package verify

// Branch identifies which arm of the two-tier durability check resolved a
// mutation.
type Branch string

const (
	// BranchNone means no durability probe has run yet.
	BranchNone Branch = ""

	// BranchDurable means the direct re-fetch confirmed the mutation:
	// a not-found signal after a delete, or the written fields after a
	// create.
	BranchDurable Branch = "durable"

	// BranchStaleEcho means the re-fetch returned pre-mutation data despite
	// the mutation's success status, and the verdict came from the fallback
	// listing scan instead. This is the signature of a non-persistent
	// backend and is an expected outcome, not an error.
	BranchStaleEcho Branch = "stale-echo"
)

// Step records one verification action for the report trace.
type Step struct {
	Kind   string `json:"kind"`             // "immediate-check", "probe", "listing-scan", ...
	Target string `json:"target,omitempty"` // request path or rule name
	Detail string `json:"detail,omitempty"`
}

// Report is the outcome of verifying one mutation (or one whole scenario).
// It starts passing; every recorded error flips it to failed.
type Report struct {
	Pass   bool     `json:"pass"`
	Branch Branch   `json:"branch,omitempty"`
	Steps  []Step   `json:"steps"`
	Errors []string `json:"errors,omitempty"`
}

// NewReport creates a passing, empty report.
func NewReport() *Report {
	return &Report{
		Pass:  true,
		Steps: []Step{},
	}
}

// AddStep appends a trace step.
func (r *Report) AddStep(kind, target, detail string) {
	r.Steps = append(r.Steps, Step{Kind: kind, Target: target, Detail: detail})
}

// AddError records a verification failure and marks the report failed.
func (r *Report) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// Fail records err as a verification failure. A nil err is ignored.
func (r *Report) Fail(err error) {
	if err != nil {
		r.AddError(err.Error())
	}
}
