package reconcile

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunResult_Finish(t *testing.T) {
	t.Run("Complete", func(t *testing.T) {
		run := NewRun("products")
		run.BeginPass("pull")
		run.Processed()
		run.Record(Action{Type: ActionCreateLocal, Key: "A"})

		run.Finish(nil)
		assert.Equal(t, StatusComplete, run.Status)
		assert.Empty(t, run.Error)
		assert.False(t, run.FinishedAt.Before(run.StartedAt))
		_, err := uuid.Parse(run.RunID)
		assert.NoError(t, err)
	})

	t.Run("Partial", func(t *testing.T) {
		run := NewRun("pull")
		run.Skip("100", "pull", NewValidationError("option1", "unknown value %q", "XL"))

		run.Finish(nil)
		assert.Equal(t, StatusPartial, run.Status)
		require.Len(t, run.Failures, 1)
		assert.Equal(t, "100", run.Failures[0].Key)
		assert.Contains(t, run.Failures[0].Reason, "XL")
	})

	t.Run("Failed", func(t *testing.T) {
		run := NewRun("push")
		run.Finish(errors.New("boom"))
		assert.Equal(t, StatusFailed, run.Status)
		assert.Equal(t, "boom", run.Error)
	})
}

func TestRunResult_PassCounts(t *testing.T) {
	run := NewRun("products")

	run.BeginPass("pull")
	run.Processed()
	run.Processed()
	run.Record(Action{Type: ActionCreateLocal, Key: "A"})
	run.Record(Action{Type: ActionUpdateLocal, Key: "B"})

	run.BeginPass("push")
	run.Processed()
	run.Record(Action{Type: ActionCreateRemote, Key: "C", RemoteID: 7})
	run.Skip("D", "push", NewValidationError("", "template has no variants"))

	require.Len(t, run.Passes, 2)
	assert.Equal(t, "pull", run.Passes[0].Name)
	assert.Equal(t, 2, run.Passes[0].Processed)
	assert.Equal(t, 1, run.Passes[0].Actions[ActionCreateLocal])
	assert.Equal(t, 1, run.Passes[1].Actions[ActionCreateRemote])
	assert.Equal(t, 1, run.Passes[1].Skipped)
	assert.Equal(t, 1, run.Count(ActionUpdateLocal))
	assert.Equal(t, 0, run.Count(ActionAddImage))
}

func TestRunResult_ImplicitPass(t *testing.T) {
	run := NewRun("stock")
	run.Record(Action{Type: ActionPushStock, Key: "A"})
	require.Len(t, run.Passes, 1)
	assert.Equal(t, "stock", run.Passes[0].Name)
}

func TestMatchKind_String(t *testing.T) {
	assert.Equal(t, "unmatched", Unmatched.String())
	assert.Equal(t, "matched_update", MatchedUpdate.String())
	assert.Equal(t, "matched_variant_link", MatchedVariantLink.String())
}

func TestTouchedSet(t *testing.T) {
	s := NewTouchedSet()
	s.Add("B")
	s.Add("A")
	s.Add("B")
	s.Add("")

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("A"))
	assert.False(t, s.Has("C"))
	assert.False(t, s.Has(""))
	assert.Equal(t, []string{"A", "B"}, s.Keys())

	other := NewTouchedSet()
	assert.False(t, other.Has("A"), "sets must not share state")
}
