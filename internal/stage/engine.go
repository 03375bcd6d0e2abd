// Package stage drives the 10-stage implementation checklist. Operations are
// snapshot-in/snapshot-out and take now as a parameter; the calling layer
// persists the returned snapshot.
package stage

import (
	"sort"
	"strings"
	"time"

	"github.com/spec-kit/process-tracker/internal/domain"
	apperrors "github.com/spec-kit/process-tracker/pkg/util"
)

// StageCount is the number of tracked stages. Stage 10 (satisfaction survey)
// is tracked like the others but excluded from the progress ratio; dashboards
// have always shown x/9 and changing that would shift visible metrics.
const (
	StageCount    = 10
	RatedStages   = 9
	assistedOpLen = 30 * 24 * time.Hour
)

type subItem struct {
	get   func(*domain.StageSet) bool
	set   func(*domain.StageSet, bool)
	stamp func(*domain.StageSet, time.Time)
}

var subItems = map[string]subItem{
	"contractSigned": {
		get:   func(s *domain.StageSet) bool { return s.ContractSigned },
		set:   func(s *domain.StageSet, v bool) { s.ContractSigned = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.ContractSignedAt = &t },
	},
	"contractRegistered": {
		get:   func(s *domain.StageSet) bool { return s.ContractRegistered },
		set:   func(s *domain.StageSet, v bool) { s.ContractRegistered = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.ContractRegisteredAt = &t },
	},
	"welcomeCall": {
		get:   func(s *domain.StageSet) bool { return s.WelcomeCall },
		set:   func(s *domain.StageSet, v bool) { s.WelcomeCall = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.WelcomeCallAt = &t },
	},
	"systemRegistration": {
		get:   func(s *domain.StageSet) bool { return s.SystemRegistration },
		set:   func(s *domain.StageSet, v bool) { s.SystemRegistration = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.SystemRegistrationAt = &t },
	},
	"residentAppInstall": {
		get:   func(s *domain.StageSet) bool { return s.ResidentAppInstall },
		set:   func(s *domain.StageSet, v bool) { s.ResidentAppInstall = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.ResidentAppInstallAt = &t },
	},
	"tagAudit": {
		get:   func(s *domain.StageSet) bool { return s.TagAudit },
		set:   func(s *domain.StageSet, v bool) { s.TagAudit = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.TagAuditAt = &t },
	},
	"projectCheck": {
		get:   func(s *domain.StageSet) bool { return s.ProjectCheck },
		set:   func(s *domain.StageSet, v bool) { s.ProjectCheck = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.ProjectCheckAt = &t },
	},
	"visitScheduled": {
		get:   func(s *domain.StageSet) bool { return s.VisitScheduled },
		set:   func(s *domain.StageSet, v bool) { s.VisitScheduled = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.VisitScheduledAt = &t },
	},
	"visitReport": {
		get:   func(s *domain.StageSet) bool { return s.VisitReport },
		set:   func(s *domain.StageSet, v bool) { s.VisitReport = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.VisitReportAt = &t },
	},
	"installerReport": {
		get:   func(s *domain.StageSet) bool { return s.InstallerReport },
		set:   func(s *domain.StageSet, v bool) { s.InstallerReport = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.InstallerReportAt = &t },
	},
	"glazierReport": {
		get:   func(s *domain.StageSet) bool { return s.GlazierReport },
		set:   func(s *domain.StageSet, v bool) { s.GlazierReport = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.GlazierReportAt = &t },
	},
	"locksmithReport": {
		get:   func(s *domain.StageSet) bool { return s.LocksmithReport },
		set:   func(s *domain.StageSet, v bool) { s.LocksmithReport = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.LocksmithReportAt = &t },
	},
	"supervisorReport": {
		get:   func(s *domain.StageSet) bool { return s.SupervisorReport },
		set:   func(s *domain.StageSet, v bool) { s.SupervisorReport = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.SupervisorReportAt = &t },
	},
	"programmingCheck": {
		get:   func(s *domain.StageSet) bool { return s.ProgrammingCheck },
		set:   func(s *domain.StageSet, v bool) { s.ProgrammingCheck = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.ProgrammingCheckAt = &t },
	},
	"financialActivationConfirmed": {
		get:   func(s *domain.StageSet) bool { return s.FinancialActivationConfirmed },
		set:   func(s *domain.StageSet, v bool) { s.FinancialActivationConfirmed = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.FinancialActivationConfirmedAt = &t },
	},
	"commercialVisitScheduled": {
		get:   func(s *domain.StageSet) bool { return s.CommercialVisitScheduled },
		set:   func(s *domain.StageSet, v bool) { s.CommercialVisitScheduled = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.CommercialVisitScheduledAt = &t },
	},
	"commercialVisitReport": {
		get:   func(s *domain.StageSet) bool { return s.CommercialVisitReport },
		set:   func(s *domain.StageSet, v bool) { s.CommercialVisitReport = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.CommercialVisitReportAt = &t },
	},
	"completed": {
		get:   func(s *domain.StageSet) bool { return s.Completed },
		set:   func(s *domain.StageSet, v bool) { s.Completed = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.CompletedAt = &t },
	},
	"satisfactionSurveyDone": {
		get:   func(s *domain.StageSet) bool { return s.SatisfactionSurveyDone },
		set:   func(s *domain.StageSet, v bool) { s.SatisfactionSurveyDone = v },
		stamp: func(s *domain.StageSet, t time.Time) { s.SatisfactionSurveyDoneAt = &t },
	},
}

// FieldNames lists every recognized sub-item name, sorted.
func FieldNames() []string {
	names := make([]string, 0, len(subItems))
	for name := range subItems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetSubItem sets the named boolean. A false→true transition stamps the
// paired timestamp with now; the stamp is evidence the item was once done
// and is never cleared by the reverse transition.
func SetSubItem(set domain.StageSet, field string, value bool, now time.Time) (domain.StageSet, error) {
	item, ok := subItems[field]
	if !ok {
		return set, apperrors.NewUnknownFieldError(field)
	}
	wasSet := item.get(&set)
	item.set(&set, value)
	if value && !wasSet {
		item.stamp(&set, now)
	}
	return set, nil
}

// Complete reports whether stage n (1..10) is satisfied. Each predicate is a
// pure conjunction over its own sub-items; stages outside the range are
// never complete.
func Complete(set domain.StageSet, n int) bool {
	switch n {
	case 1:
		return set.ContractSigned
	case 2:
		return set.ContractRegistered
	case 3:
		return set.WelcomeCall && set.SystemRegistration && set.ResidentAppInstall && set.TagAudit
	case 4:
		return set.ProjectCheck && set.VisitScheduled && set.VisitReport
	case 5:
		return set.InstallerReport && set.GlazierReport && set.LocksmithReport && set.SupervisorReport
	case 6:
		return set.ProgrammingCheck && set.FinancialActivationConfirmed
	case 7:
		return set.CommercialVisitScheduled && set.CommercialVisitReport
	case 8:
		return len(set.Interactions) > 0
	case 9:
		return set.Completed
	case 10:
		return set.SatisfactionSurveyDone
	}
	return false
}

// ProgressRatio is the fraction of stages 1..9 complete, always k/9.
func ProgressRatio(set domain.StageSet) float64 {
	done := 0
	for n := 1; n <= RatedStages; n++ {
		if Complete(set, n) {
			done++
		}
	}
	return float64(done) / float64(RatedStages)
}

// AppendInteraction logs a customer contact during assisted operation. The
// window start is stamped once; the end is re-based to now+30d on every
// append. The re-base (rather than extending from the original start) is
// long-observed behavior and must not change without product sign-off.
func AppendInteraction(set domain.StageSet, author, text string, now time.Time) (domain.StageSet, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return set, apperrors.NewValidationError("interaction text required", nil)
	}
	entries := make([]domain.Interaction, 0, len(set.Interactions)+1)
	entries = append(entries, set.Interactions...)
	set.Interactions = append(entries, domain.Interaction{At: now, Author: strings.TrimSpace(author), Note: text})

	if set.AssistedOpStartAt == nil {
		start := now
		set.AssistedOpStartAt = &start
	}
	end := now.Add(assistedOpLen)
	set.AssistedOpEndAt = &end
	return set, nil
}

// MarkComplete checks stage 9. There is deliberately no gate on stages 1..8;
// completion is an advisory status, not a state-machine transition.
func MarkComplete(set domain.StageSet, now time.Time) domain.StageSet {
	updated, _ := SetSubItem(set, "completed", true, now)
	return updated
}

// RecordSurvey captures the stage-10 satisfaction survey.
func RecordSurvey(set domain.StageSet, score int, wouldRecommend bool, now time.Time) (domain.StageSet, error) {
	if score < 1 || score > 10 {
		return set, apperrors.NewValidationError("satisfaction score must be between 1 and 10", map[string]any{"score": score})
	}
	set.SatisfactionScore = &score
	set.WouldRecommend = &wouldRecommend
	updated, err := SetSubItem(set, "satisfactionSurveyDone", true, now)
	if err != nil {
		return set, err
	}
	return updated, nil
}
