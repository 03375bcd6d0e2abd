package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/process-tracker/internal/domain"
	"github.com/spec-kit/process-tracker/internal/events"
	"github.com/spec-kit/process-tracker/internal/repository"
	"github.com/spec-kit/process-tracker/internal/stage"
)

// ImplantationService drives the 10-stage checklist for projects.
type ImplantationService struct {
	stageSets  repository.StageSetRepository
	projects   repository.ProjectRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// ImplantationDependencies bundles collaborators.
type ImplantationDependencies struct {
	StageSetRepo repository.StageSetRepository
	ProjectRepo  repository.ProjectRepository
	Dispatcher   events.Dispatcher
	Now          func() time.Time
}

// NewImplantationService constructs the service.
func NewImplantationService(deps ImplantationDependencies) *ImplantationService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &ImplantationService{
		stageSets:  deps.StageSetRepo,
		projects:   deps.ProjectRepo,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// ChecklistView is the derived read model for one project's checklist.
type ChecklistView struct {
	StageSet      domain.StageSet
	Stages        [stage.StageCount]bool
	ProgressRatio float64
}

// GetChecklist loads the stage set with derived stage states.
func (s *ImplantationService) GetChecklist(ctx context.Context, projectID string) (*ChecklistView, error) {
	set, err := s.stageSets.GetByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return buildChecklistView(*set), nil
}

// CheckItem sets one named sub-item and persists the new snapshot.
func (s *ImplantationService) CheckItem(ctx context.Context, operatorID, projectID, field string, value bool) (*ChecklistView, error) {
	set, err := s.stageSets.GetByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	updated, err := stage.SetSubItem(*set, field, value, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.stageSets.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventStageItemChecked,
		SubjectID: updated.ID,
		Actor:     operatorActor(operatorID),
		Payload: events.StageItemCheckedPayload{
			ProjectID:     projectID,
			Field:         field,
			Value:         value,
			ProgressRatio: stage.ProgressRatio(updated),
		},
	})
	return buildChecklistView(updated), nil
}

// LogInteraction appends an assisted-operation interaction.
func (s *ImplantationService) LogInteraction(ctx context.Context, operatorID, projectID, author, text string) (*ChecklistView, error) {
	set, err := s.stageSets.GetByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	updated, err := stage.AppendInteraction(*set, author, text, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.stageSets.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventInteractionLogged,
		SubjectID: updated.ID,
		Actor:     operatorActor(operatorID),
		Payload: events.InteractionLoggedPayload{
			ProjectID: projectID,
			Author:    author,
			Preview:   stringPreview(text, 120),
		},
	})
	return buildChecklistView(updated), nil
}

// RecordSurvey captures the satisfaction survey for stage 10.
func (s *ImplantationService) RecordSurvey(ctx context.Context, operatorID, projectID string, score int, wouldRecommend bool) (*ChecklistView, error) {
	set, err := s.stageSets.GetByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	updated, err := stage.RecordSurvey(*set, score, wouldRecommend, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.stageSets.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return buildChecklistView(updated), nil
}

// MarkComplete checks stage 9 for the project. Stages 1..8 are advisory;
// callers may short-circuit.
func (s *ImplantationService) MarkComplete(ctx context.Context, operatorID, projectID string) (*ChecklistView, error) {
	set, err := s.stageSets.GetByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	updated := stage.MarkComplete(*set, s.now())
	if err := s.stageSets.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventProjectCompleted,
		SubjectID: updated.ID,
		Actor:     operatorActor(operatorID),
		Payload: events.ProjectCompletedPayload{
			ProjectID:     projectID,
			ProgressRatio: stage.ProgressRatio(updated),
		},
	})
	return buildChecklistView(updated), nil
}

// InitChecklist creates an empty stage set for a new project.
func (s *ImplantationService) InitChecklist(ctx context.Context, projectID string) (*ChecklistView, error) {
	set := &domain.StageSet{ProjectID: projectID}
	if err := s.stageSets.Create(ctx, set); err != nil {
		return nil, err
	}
	return buildChecklistView(*set), nil
}

func buildChecklistView(set domain.StageSet) *ChecklistView {
	view := &ChecklistView{
		StageSet:      set,
		ProgressRatio: stage.ProgressRatio(set),
	}
	for n := 1; n <= stage.StageCount; n++ {
		view.Stages[n-1] = stage.Complete(set, n)
	}
	return view
}

func (s *ImplantationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
