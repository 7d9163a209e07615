package gitctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentrules/hookctl/pkg/hooks/action"
	"github.com/agentrules/hookctl/pkg/hooks/event"
)

func TestExtraFields_NestsUnderGitKey(t *testing.T) {
	snap := &action.RepoSnapshot{Branch: "main", HeadCommit: "abc123", DirtyFiles: []string{"a.go", "b.go"}}
	var p Provider
	fields := p.ExtraFields(snap)

	git, ok := fields["git"].(map[string]event.Value)
	require.True(t, ok)
	assert.Equal(t, "main", git["branch"])
	assert.Equal(t, "abc123", git["head_commit"])
	assert.Equal(t, float64(2), git["dirty_count"])
}

func TestExtraFields_NilSnapshotYieldsNil(t *testing.T) {
	var p Provider
	assert.Nil(t, p.ExtraFields(nil))
}

func TestIsRepo_FalseOutsideAnyRepo(t *testing.T) {
	assert.False(t, IsRepo("/nonexistent-path-for-test"))
}
