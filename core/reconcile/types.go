package reconcile

import (
	"time"

	"github.com/google/uuid"
)

// MatchKind is the outcome of matching a remote record against local items.
type MatchKind int

const (
	// Unmatched means no local item corresponds to the remote record; a new one is created.
	Unmatched MatchKind = iota
	// MatchedUpdate means an existing local item is updated in place.
	MatchedUpdate
	// MatchedVariantLink means an existing variant child was linked to the remote variant.
	MatchedVariantLink
)

// String returns the snake_case name used in logs.
func (k MatchKind) String() string {
	switch k {
	case MatchedUpdate:
		return "matched_update"
	case MatchedVariantLink:
		return "matched_variant_link"
	default:
		return "unmatched"
	}
}

// ActionType represents the type of mutation performed during a run.
type ActionType string

const (
	// ActionCreateLocal creates a local item from a remote record.
	ActionCreateLocal ActionType = "create_local"
	// ActionUpdateLocal updates a local item from a remote record.
	ActionUpdateLocal ActionType = "update_local"
	// ActionLinkVariant links an existing local variant to a remote variant.
	ActionLinkVariant ActionType = "link_variant"
	// ActionCreateRemote creates a remote product from a local item.
	ActionCreateRemote ActionType = "create_remote"
	// ActionReplaceRemote replaces a remote product with the local projection.
	ActionReplaceRemote ActionType = "replace_remote"
	// ActionPushStock sends a quantity-only update to the remote platform.
	ActionPushStock ActionType = "push_stock"
	// ActionAddImage attaches an image to a remote product.
	ActionAddImage ActionType = "add_image"
)

// Action records a mutation performed during a run.
type Action struct {
	// Type specifies the action performed.
	Type ActionType `json:"type"`

	// Key is the local item code.
	Key string `json:"key"`

	// RemoteID is the remote product id involved, if any.
	RemoteID int64 `json:"remote_id,omitempty"`

	// Reason is a short human readable note.
	Reason string `json:"reason,omitempty"`
}

// Failure records a record skipped because of a validation problem.
type Failure struct {
	// Key identifies the record (item code or remote product id).
	Key string `json:"key"`

	// Stage is the pass or sub-step that rejected the record (pull, push, image, stock).
	Stage string `json:"stage"`

	// Reason is the error text.
	Reason string `json:"reason"`
}

// PassSummary provides aggregate counts for one pass of a run.
type PassSummary struct {
	// Name is the pass name (pull, push, stock).
	Name string `json:"name"`

	// Processed counts records examined by the pass.
	Processed int `json:"processed"`

	// Actions counts performed actions by type.
	Actions map[ActionType]int `json:"actions"`

	// Skipped counts records rejected with a validation error.
	Skipped int `json:"skipped"`
}

// RunStatus is the final status of a run.
type RunStatus string

const (
	// StatusComplete means every record was processed.
	StatusComplete RunStatus = "complete"
	// StatusPartial means the run finished but skipped some records.
	StatusPartial RunStatus = "partial"
	// StatusFailed means the run was aborted.
	StatusFailed RunStatus = "failed"
)

// RunResult is the report returned by every sync entry point.
type RunResult struct {
	// RunID uniquely identifies the run in logs.
	RunID string `json:"run_id"`

	// Kind names the entry point (products, pull, push, stock).
	Kind string `json:"kind"`

	// Status is set by Finish.
	Status RunStatus `json:"status"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Passes holds one summary per executed pass, in execution order.
	Passes []PassSummary `json:"passes"`

	// Actions lists every mutation in execution order.
	Actions []Action `json:"actions"`

	// Failures lists skipped records.
	Failures []Failure `json:"failures"`

	// Error is the abort reason when Status is failed.
	Error string `json:"error,omitempty"`
}

// NewRun starts a run report with a fresh run id.
func NewRun(kind string) *RunResult {
	return &RunResult{
		RunID:     uuid.NewString(),
		Kind:      kind,
		StartedAt: time.Now(),
		Actions:   []Action{},
		Failures:  []Failure{},
	}
}

// BeginPass opens a new pass; subsequent records are counted against it.
func (r *RunResult) BeginPass(name string) {
	r.Passes = append(r.Passes, PassSummary{Name: name, Actions: make(map[ActionType]int)})
}

func (r *RunResult) currentPass() *PassSummary {
	if len(r.Passes) == 0 {
		r.BeginPass(r.Kind)
	}
	return &r.Passes[len(r.Passes)-1]
}

// Processed counts one examined record in the current pass.
func (r *RunResult) Processed() {
	r.currentPass().Processed++
}

// Record appends an action and counts it in the current pass.
func (r *RunResult) Record(a Action) {
	r.Actions = append(r.Actions, a)
	r.currentPass().Actions[a.Type]++
}

// Skip records a validation failure for key.
func (r *RunResult) Skip(key, stage string, err error) {
	r.Failures = append(r.Failures, Failure{Key: key, Stage: stage, Reason: err.Error()})
	r.currentPass().Skipped++
}

// Count returns how many actions of type t were recorded across all passes.
func (r *RunResult) Count(t ActionType) int {
	n := 0
	for _, a := range r.Actions {
		if a.Type == t {
			n++
		}
	}
	return n
}

// Finish stamps the run and derives its status from err and the recorded failures.
func (r *RunResult) Finish(err error) *RunResult {
	r.FinishedAt = time.Now()
	switch {
	case err != nil:
		r.Status = StatusFailed
		r.Error = err.Error()
	case len(r.Failures) > 0:
		r.Status = StatusPartial
	default:
		r.Status = StatusComplete
	}
	return r
}
