package unlock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/catalog"
)

func lessons() []catalog.LessonTemplate {
	return []catalog.LessonTemplate{
		{ID: "l0", BaseDifficulty: catalog.Beginner},
		{ID: "l1", BaseDifficulty: catalog.Intermediate},
		{ID: "l2", BaseDifficulty: catalog.Beginner},
		{ID: "l3", BaseDifficulty: catalog.Advanced, Prerequisites: []string{"l0"}},
	}
}

func TestIsLocked_FirstLessonNeverLocked(t *testing.T) {
	ls := lessons()
	ls[0].BaseDifficulty = catalog.Expert
	assert.False(t, IsLocked(ls, 0, Set{}, false))
}

func TestIsLocked_PredecessorGating(t *testing.T) {
	ls := lessons()

	assert.True(t, IsLocked(ls, 1, Set{}, false), "predecessor incomplete, no entitlement")
	assert.False(t, IsLocked(ls, 1, Set{"l0": true}, false), "predecessor complete")
	assert.False(t, IsLocked(ls, 1, Set{}, true), "entitlement unlocks")
}

func TestIsLocked_BeginnerNeverLocked(t *testing.T) {
	ls := lessons()
	for _, completed := range []Set{{}, {"l1": true}, {"l0": true, "l1": true}} {
		for _, entitled := range []bool{false, true} {
			assert.False(t, IsLocked(ls, 2, completed, entitled))
		}
	}
}

func TestIsLocked_IgnoresPrerequisites(t *testing.T) {
	ls := lessons()
	// l3 declares l0 as a prerequisite; completing it must not unlock l3.
	assert.True(t, IsLocked(ls, 3, Set{"l0": true}, false))
	// Completing the positional predecessor unlocks it even though the
	// declared prerequisite is incomplete.
	assert.False(t, IsLocked(ls, 3, Set{"l2": true}, false))
}

func TestIsLocked_PropertyOverCatalog(t *testing.T) {
	ls := catalog.AllLessons()
	sets := []Set{{}, {ls[0].ID: true}, {ls[3].ID: true, ls[4].ID: true}}

	for _, completed := range sets {
		for _, entitled := range []bool{false, true} {
			for i := 1; i < len(ls); i++ {
				got := IsLocked(ls, i, completed, entitled)
				if ls[i].BaseDifficulty == catalog.Beginner {
					assert.False(t, got, "beginner lesson %s locked", ls[i].ID)
					continue
				}
				want := !completed.Has(ls[i-1].ID) && !entitled
				assert.Equal(t, want, got, "lesson %s", ls[i].ID)
			}
		}
	}
}

func TestResolve(t *testing.T) {
	ls := lessons()
	statuses := Resolve(ls, Set{"l0": true}, 16, false)
	require.Len(t, statuses, len(ls))

	assert.True(t, statuses[0].IsCompleted)
	assert.False(t, statuses[0].IsLocked)
	assert.Equal(t, catalog.Advanced, statuses[0].EffectiveDifficulty)

	assert.False(t, statuses[1].IsLocked)
	assert.False(t, statuses[1].IsCompleted)
	assert.Equal(t, catalog.Expert, statuses[1].EffectiveDifficulty)

	assert.True(t, statuses[3].IsLocked)
	assert.Equal(t, catalog.Professional, statuses[3].EffectiveDifficulty)
}
