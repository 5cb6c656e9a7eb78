package service

import (
	"context"
	"encoding/json"
	"time"

	"copygate-be/internal/config"
	"copygate-be/internal/dto"
	"copygate-be/internal/entity"
	"copygate-be/internal/pkg/logger"
	"copygate-be/internal/repository/contract"
	"copygate-be/internal/repository/specification"
	"copygate-be/internal/repository/unitofwork"
	"copygate-be/pkg/gate"
	"copygate-be/pkg/scoring"
	"copygate-be/pkg/store"
	"copygate-be/pkg/voice"

	"github.com/google/uuid"
)

type IGateService interface {
	Check(ctx context.Context, req *dto.CheckGateRequest) (*dto.CheckGateResponse, error)
	CheckSection(ctx context.Context, req *dto.CheckSectionRequest) (*dto.CheckGateResponse, error)
	ShowRun(ctx context.Context, id uuid.UUID) (*dto.ShowGateRunResponse, error)
	ListRuns(ctx context.Context, jobID, status string, limit int) ([]*dto.GateRunSummaryResponse, error)
}

type gateService struct {
	uowFactory       unitofwork.RepositoryFactory
	caches           []contract.ProfileCache
	publisherService IPublisherService
	gateConfig       config.GateConfig
	logger           logger.ILogger
	auditLogger      logger.ILogger
}

func NewGateService(
	uowFactory unitofwork.RepositoryFactory,
	caches []contract.ProfileCache,
	publisherService IPublisherService,
	gateConfig config.GateConfig,
	log logger.ILogger,
	auditLog logger.ILogger,
) IGateService {
	return &gateService{
		uowFactory:       uowFactory,
		caches:           caches,
		publisherService: publisherService,
		gateConfig:       gateConfig,
		logger:           log,
		auditLogger:      auditLog,
	}
}

func (s *gateService) Check(ctx context.Context, req *dto.CheckGateRequest) (*dto.CheckGateResponse, error) {
	var profile *voice.Profile
	if req.ProfileID != "" {
		snap, err := s.loadProfile(ctx, req.ProfileID)
		if err != nil {
			return nil, err
		}
		if snap == nil {
			// A named profile that cannot be loaded is an ERROR, not a
			// silent Pass 1 only run. The gate stays closed.
			return s.record(ctx, req, s.profileMissingResult(req.ProfileID))
		}
		profile = snap.Profile
	}

	g := gate.New(gate.Config{
		Profile:        profile,
		Pass1Threshold: s.gateConfig.Pass1Threshold,
		Pass2Threshold: s.gateConfig.Pass2Threshold,
	})
	result := g.Run([]scoring.Section(req.Sections), req.Override, req.OverrideNote)

	return s.record(ctx, req, result)
}

func (s *gateService) CheckSection(ctx context.Context, req *dto.CheckSectionRequest) (*dto.CheckGateResponse, error) {
	return s.Check(ctx, &dto.CheckGateRequest{
		JobID:        req.JobID,
		PropertySlug: req.PropertySlug,
		ProfileID:    req.ProfileID,
		Sections:     dto.OrderedSections{{Name: req.Section, Text: req.Text}},
		Override:     req.Override,
		OverrideNote: req.OverrideNote,
	})
}

func (s *gateService) ShowRun(ctx context.Context, id uuid.UUID) (*dto.ShowGateRunResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	run, err := uow.GateRunRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, nil
	}

	return &dto.ShowGateRunResponse{
		GateRunSummaryResponse: toRunSummary(run),
		Result:                 run.Result,
	}, nil
}

func (s *gateService) ListRuns(ctx context.Context, jobID, status string, limit int) ([]*dto.GateRunSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := make([]specification.Specification, 0, 2)
	if jobID != "" {
		specs = append(specs, specification.ByJobID{JobID: jobID})
	}
	if status != "" {
		specs = append(specs, specification.ByGateStatus{Status: status})
	}
	if limit <= 0 {
		limit = 50
	}

	runs, err := uow.GateRunRepository().FindRecent(ctx, limit, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GateRunSummaryResponse, 0, len(runs))
	for _, run := range runs {
		summary := toRunSummary(run)
		result = append(result, &summary)
	}
	return result, nil
}

// loadProfile walks the cache chain before touching the database. Every
// level that missed gets backfilled on a database hit.
func (s *gateService) loadProfile(ctx context.Context, profileID string) (*store.ProfileSnapshot, error) {
	missed := make([]contract.ProfileCache, 0, len(s.caches))
	for _, c := range s.caches {
		if snap, found := c.Get(ctx, profileID); found && snap.Profile != nil {
			for _, m := range missed {
				m.Set(ctx, snap)
			}
			return snap, nil
		}
		missed = append(missed, c)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	row, err := uow.VoiceProfileRepository().FindOne(ctx, specification.ByProfileID{ProfileID: profileID})
	if err != nil {
		return nil, err
	}
	if row == nil || row.Document == nil {
		return nil, nil
	}

	snap := &store.ProfileSnapshot{
		ProfileID: profileID,
		Profile:   row.Document,
		Source:    store.SourceDatabase,
		LoadedAt:  time.Now().UTC(),
	}
	for _, c := range s.caches {
		c.Set(ctx, snap)
	}
	return snap, nil
}

func (s *gateService) record(ctx context.Context, req *dto.CheckGateRequest, result gate.Result) (*dto.CheckGateResponse, error) {
	runId := uuid.New()

	s.logger.Info("gate_service", "Gate checked", map[string]interface{}{
		"run_id":      runId.String(),
		"job_id":      req.JobID,
		"gate_status": result.GateStatus,
		"gate_open":   result.GateOpen,
	})
	if result.OverrideApplied {
		s.auditLogger.Info("gate_audit", "Gate override applied", map[string]interface{}{
			"run_id":        runId.String(),
			"job_id":        req.JobID,
			"property_slug": req.PropertySlug,
			"override_note": result.OverrideNote,
		})
	}

	msg := dto.PublishGateRunMessage{
		RunId:        runId,
		JobID:        req.JobID,
		PropertySlug: req.PropertySlug,
		ProfileID:    req.ProfileID,
		Result:       result,
	}
	msgJson, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	return &dto.CheckGateResponse{
		RunId:  runId,
		Result: result,
	}, nil
}

func (s *gateService) profileMissingResult(profileID string) gate.Result {
	now := time.Now().UTC().Format(time.RFC3339)
	return gate.Result{
		GateOpen:         false,
		GateStatus:       gate.StatusError,
		OverrideEligible: true,
		Pass1:            gate.PassSummary{SectionsFailed: []string{}},
		Pass2:            gate.PassSummary{SectionsFailed: []string{}},
		Sections:         map[string]gate.SectionSummary{},
		SectionOrder:     []string{},
		Note:             "Voice profile " + profileID + " could not be loaded.",
		Summary:          "Gate errored: voice profile " + profileID + " not found.",
		ActionRequired:   "Extract the profile or correct the profile id, then rerun the gate.",
		Timestamp:        now,
	}
}

func toRunSummary(run *entity.GateRun) dto.GateRunSummaryResponse {
	return dto.GateRunSummaryResponse{
		Id:           run.Id,
		JobID:        run.JobID,
		PropertySlug: run.PropertySlug,
		ProfileID:    run.ProfileID,
		GateStatus:   run.GateStatus,
		GateOpen:     run.GateOpen,
		Pass1Score:   run.Pass1Score,
		Pass2Score:   run.Pass2Score,
		OverrideNote: run.OverrideNote,
		CreatedAt:    run.CreatedAt,
	}
}
