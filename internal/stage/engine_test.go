package stage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/process-tracker/internal/domain"
	apperrors "github.com/spec-kit/process-tracker/pkg/util"
)

var t0 = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

func TestSetSubItemStampsOnFirstCheck(t *testing.T) {
	set, err := SetSubItem(domain.StageSet{}, "contractSigned", true, t0)
	require.NoError(t, err)
	assert.True(t, set.ContractSigned)
	require.NotNil(t, set.ContractSignedAt)
	assert.Equal(t, t0, *set.ContractSignedAt)
}

func TestSetSubItemKeepsStampOnUncheck(t *testing.T) {
	set, err := SetSubItem(domain.StageSet{}, "tagAudit", true, t0)
	require.NoError(t, err)

	later := t0.Add(48 * time.Hour)
	set, err = SetSubItem(set, "tagAudit", false, later)
	require.NoError(t, err)
	assert.False(t, set.TagAudit)
	require.NotNil(t, set.TagAuditAt, "stamp is evidence, not live state")
	assert.Equal(t, t0, *set.TagAuditAt)

	// checking again re-stamps with the new instant
	set, err = SetSubItem(set, "tagAudit", true, later)
	require.NoError(t, err)
	assert.Equal(t, later, *set.TagAuditAt)
}

func TestSetSubItemRepeatedTrueKeepsOriginalStamp(t *testing.T) {
	set, err := SetSubItem(domain.StageSet{}, "welcomeCall", true, t0)
	require.NoError(t, err)
	set, err = SetSubItem(set, "welcomeCall", true, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, t0, *set.WelcomeCallAt)
}

func TestSetSubItemUnknownField(t *testing.T) {
	_, err := SetSubItem(domain.StageSet{}, "doorbellInstalled", true, t0)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNKNOWN_FIELD"))
}

func TestFieldNamesRoundTrip(t *testing.T) {
	for _, name := range FieldNames() {
		set, err := SetSubItem(domain.StageSet{}, name, true, t0)
		require.NoError(t, err, name)
		set, err = SetSubItem(set, name, false, t0)
		require.NoError(t, err, name)
	}
}

func TestStagePredicates(t *testing.T) {
	check := func(set domain.StageSet, fields ...string) domain.StageSet {
		for _, f := range fields {
			var err error
			set, err = SetSubItem(set, f, true, t0)
			require.NoError(t, err)
		}
		return set
	}

	tests := []struct {
		name   string
		stage  int
		fields []string
	}{
		{"stage 1", 1, []string{"contractSigned"}},
		{"stage 2", 2, []string{"contractRegistered"}},
		{"stage 3", 3, []string{"welcomeCall", "systemRegistration", "residentAppInstall", "tagAudit"}},
		{"stage 4", 4, []string{"projectCheck", "visitScheduled", "visitReport"}},
		{"stage 5", 5, []string{"installerReport", "glazierReport", "locksmithReport", "supervisorReport"}},
		{"stage 6", 6, []string{"programmingCheck", "financialActivationConfirmed"}},
		{"stage 7", 7, []string{"commercialVisitScheduled", "commercialVisitReport"}},
		{"stage 9", 9, []string{"completed"}},
		{"stage 10", 10, []string{"satisfactionSurveyDone"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var set domain.StageSet
			assert.False(t, Complete(set, tt.stage))

			// all but the last sub-item is not enough
			set = check(domain.StageSet{}, tt.fields[:len(tt.fields)-1]...)
			assert.False(t, Complete(set, tt.stage))

			set = check(set, tt.fields[len(tt.fields)-1])
			assert.True(t, Complete(set, tt.stage))
		})
	}
}

func TestStageEightNeedsAnInteraction(t *testing.T) {
	var set domain.StageSet
	assert.False(t, Complete(set, 8))

	set, err := AppendInteraction(set, "ana", "resident called about gate sensor", t0)
	require.NoError(t, err)
	assert.True(t, Complete(set, 8))
}

// A stage predicate depends only on its own sub-items: flipping every other
// recognized field must not change it.
func TestStagePredicateIndependence(t *testing.T) {
	own := map[int][]string{
		1: {"contractSigned"},
		2: {"contractRegistered"},
		3: {"welcomeCall", "systemRegistration", "residentAppInstall", "tagAudit"},
		4: {"projectCheck", "visitScheduled", "visitReport"},
		5: {"installerReport", "glazierReport", "locksmithReport", "supervisorReport"},
		6: {"programmingCheck", "financialActivationConfirmed"},
		7: {"commercialVisitScheduled", "commercialVisitReport"},
		9: {"completed"},
	}
	for stage, fields := range own {
		ownSet := map[string]bool{}
		for _, f := range fields {
			ownSet[f] = true
		}
		var set domain.StageSet
		for _, name := range FieldNames() {
			if ownSet[name] {
				continue
			}
			var err error
			set, err = SetSubItem(set, name, true, t0)
			require.NoError(t, err)
			assert.False(t, Complete(set, stage), "stage %d flipped by %s", stage, name)
		}
	}
}

func TestProgressRatio(t *testing.T) {
	var set domain.StageSet
	assert.Zero(t, ProgressRatio(set))

	set, err := SetSubItem(set, "contractSigned", true, t0)
	require.NoError(t, err)
	set, err = SetSubItem(set, "contractRegistered", true, t0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/9.0, ProgressRatio(set), 1e-9)

	// the survey stage never feeds the nine-stage ratio
	set, err = RecordSurvey(set, 9, true, t0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/9.0, ProgressRatio(set), 1e-9)
}

func TestProgressRatioAllDone(t *testing.T) {
	var set domain.StageSet
	var err error
	for _, name := range FieldNames() {
		set, err = SetSubItem(set, name, true, t0)
		require.NoError(t, err)
	}
	set, err = AppendInteraction(set, "ana", "kickoff call", t0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ProgressRatio(set), 1e-9)
}

func TestAppendInteractionValidation(t *testing.T) {
	_, err := AppendInteraction(domain.StageSet{}, "ana", "   ", t0)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestAppendInteractionRebasesWindow(t *testing.T) {
	now1 := t0
	set, err := AppendInteraction(domain.StageSet{}, "ana", "first contact", now1)
	require.NoError(t, err)
	require.NotNil(t, set.AssistedOpStartAt)
	require.NotNil(t, set.AssistedOpEndAt)
	assert.Equal(t, now1, *set.AssistedOpStartAt)
	assert.Equal(t, now1.Add(30*24*time.Hour), *set.AssistedOpEndAt)

	now2 := now1.AddDate(0, 0, 5)
	set, err = AppendInteraction(set, "bruno", "follow-up visit", now2)
	require.NoError(t, err)
	assert.Equal(t, now1, *set.AssistedOpStartAt, "start stamped once")
	assert.Equal(t, now2.Add(30*24*time.Hour), *set.AssistedOpEndAt, "end re-based, not extended")
	require.Len(t, set.Interactions, 2)
	assert.Equal(t, "first contact", set.Interactions[0].Note)
	assert.Equal(t, "bruno", set.Interactions[1].Author)
}

func TestAppendInteractionDoesNotAliasPriorSnapshot(t *testing.T) {
	first, err := AppendInteraction(domain.StageSet{}, "ana", "one", t0)
	require.NoError(t, err)

	_, err = AppendInteraction(first, "ana", "two", t0.Add(time.Hour))
	require.NoError(t, err)
	_, err = AppendInteraction(first, "ana", "three", t0.Add(2*time.Hour))
	require.NoError(t, err)

	require.Len(t, first.Interactions, 1)
	assert.Equal(t, "one", first.Interactions[0].Note)
}

func TestMarkCompleteHasNoGate(t *testing.T) {
	set := MarkComplete(domain.StageSet{}, t0)
	assert.True(t, set.Completed)
	require.NotNil(t, set.CompletedAt)
	assert.Equal(t, t0, *set.CompletedAt)
	assert.True(t, Complete(set, 9))
}

func TestRecordSurvey(t *testing.T) {
	set, err := RecordSurvey(domain.StageSet{}, 8, true, t0)
	require.NoError(t, err)
	assert.True(t, set.SatisfactionSurveyDone)
	require.NotNil(t, set.SatisfactionScore)
	assert.Equal(t, 8, *set.SatisfactionScore)
	require.NotNil(t, set.WouldRecommend)
	assert.True(t, *set.WouldRecommend)
	assert.True(t, Complete(set, 10))

	for _, score := range []int{0, 11, -3} {
		_, err := RecordSurvey(domain.StageSet{}, score, false, t0)
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"), "score %d", score)
	}
}
