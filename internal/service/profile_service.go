package service

import (
	"context"
	"fmt"
	"time"

	"copygate-be/internal/dto"
	"copygate-be/internal/entity"
	"copygate-be/internal/pkg/logger"
	"copygate-be/internal/repository/contract"
	"copygate-be/internal/repository/specification"
	"copygate-be/internal/repository/unitofwork"
	"copygate-be/pkg/events"
	"copygate-be/pkg/voice"

	"github.com/google/uuid"
)

// IEventPublisher sends domain events to the external bus. A nil
// publisher means events are skipped, never an error.
type IEventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IProfileService interface {
	Extract(ctx context.Context, req *dto.ExtractProfileRequest) (*dto.ExtractProfileResponse, error)
	Update(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error)
	Show(ctx context.Context, profileID string) (*dto.ShowProfileResponse, error)
	List(ctx context.Context, clientSlug string, limit, offset int) ([]*dto.ListProfilesResponse, error)
	Delete(ctx context.Context, profileID string) error
	SetNegativeSpace(ctx context.Context, req *dto.SetNegativeSpaceRequest) (*dto.ProfileFieldResponse, error)
	LockField(ctx context.Context, req *dto.LockFieldRequest) (*dto.ProfileFieldResponse, error)
	UnlockField(ctx context.Context, req *dto.LockFieldRequest) (*dto.ProfileFieldResponse, error)
}

type profileService struct {
	uowFactory     unitofwork.RepositoryFactory
	caches         []contract.ProfileCache
	eventPublisher IEventPublisher
	extractor      *voice.Extractor
	logger         logger.ILogger
}

func NewProfileService(
	uowFactory unitofwork.RepositoryFactory,
	caches []contract.ProfileCache,
	eventPublisher IEventPublisher,
	log logger.ILogger,
) IProfileService {
	return &profileService{
		uowFactory:     uowFactory,
		caches:         caches,
		eventPublisher: eventPublisher,
		extractor:      voice.NewExtractor(),
		logger:         log,
	}
}

func (s *profileService) Extract(ctx context.Context, req *dto.ExtractProfileRequest) (*dto.ExtractProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profileID := fmt.Sprintf("%s-%s", req.ClientSlug, req.BrandSlug)
	existing, err := uow.VoiceProfileRepository().FindOne(ctx, specification.ByProfileID{ProfileID: profileID})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("profile %s already exists, use update to re-extract", profileID)
	}

	profile := s.extractor.Extract(voice.ExtractInput{
		Text:               req.Text,
		ClientSlug:         req.ClientSlug,
		BrandSlug:          req.BrandSlug,
		BrandDisplayName:   req.BrandDisplayName,
		SourceURL:          req.SourceURL,
		SourcePagesSampled: req.SourcePagesSampled,
		TierScope:          req.TierScope,
		CaptureMethod:      req.CaptureMethod,
	})

	row := entity.VoiceProfile{
		Id:         uuid.New(),
		ProfileID:  profile.ProfileID,
		ClientSlug: req.ClientSlug,
		BrandSlug:  req.BrandSlug,
		Document:   profile,
		CreatedAt:  time.Now(),
	}
	if err := uow.VoiceProfileRepository().Create(ctx, &row); err != nil {
		return nil, err
	}

	confidence := ""
	wordCount := 0
	if profile.CaptureConfidence != nil {
		confidence = profile.CaptureConfidence.Overall
		wordCount = profile.CaptureConfidence.SourceWordCount
	}

	s.logger.Info("profile_service", "Profile extracted", map[string]interface{}{
		"profile_id": profile.ProfileID,
		"confidence": confidence,
		"word_count": wordCount,
	})
	s.publishEvent(ctx, events.NewProfileExtractedEvent(
		profile.ProfileID, req.ClientSlug, req.BrandSlug, confidence, wordCount))

	return &dto.ExtractProfileResponse{
		Id:         row.Id,
		ProfileID:  profile.ProfileID,
		Confidence: confidence,
		WordCount:  wordCount,
	}, nil
}

func (s *profileService) Update(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	row, err := uow.VoiceProfileRepository().FindOne(ctx, specification.ByProfileID{ProfileID: req.ProfileID})
	if err != nil {
		return nil, err
	}
	if row == nil || row.Document == nil {
		return nil, nil
	}

	row.Document = s.extractor.Update(row.Document, req.Text)
	now := time.Now()
	row.UpdatedAt = &now

	if err := uow.VoiceProfileRepository().Update(ctx, row); err != nil {
		return nil, err
	}
	s.invalidate(ctx, req.ProfileID)

	s.logger.Info("profile_service", "Profile re-extracted", map[string]interface{}{
		"profile_id":    req.ProfileID,
		"locked_fields": row.Document.LockedFields,
	})
	s.publishEvent(ctx, events.NewProfileUpdatedEvent(req.ProfileID, row.Document.LockedFields))

	return &dto.UpdateProfileResponse{
		Id:        row.Id,
		ProfileID: row.ProfileID,
	}, nil
}

func (s *profileService) Show(ctx context.Context, profileID string) (*dto.ShowProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	row, err := uow.VoiceProfileRepository().FindOne(ctx, specification.ByProfileID{ProfileID: profileID})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	return &dto.ShowProfileResponse{
		Id:        row.Id,
		ProfileID: row.ProfileID,
		Profile:   row.Document,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (s *profileService) List(ctx context.Context, clientSlug string, limit, offset int) ([]*dto.ListProfilesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if limit <= 0 {
		limit = 50
	}
	specs := make([]specification.Specification, 0, 3)
	if clientSlug != "" {
		specs = append(specs, specification.ByClientSlug{ClientSlug: clientSlug})
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)

	rows, err := uow.VoiceProfileRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ListProfilesResponse, 0, len(rows))
	for _, row := range rows {
		res := &dto.ListProfilesResponse{
			Id:         row.Id,
			ProfileID:  row.ProfileID,
			ClientSlug: row.ClientSlug,
			BrandSlug:  row.BrandSlug,
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
		}
		if row.Document != nil && row.Document.CaptureConfidence != nil {
			res.Confidence = row.Document.CaptureConfidence.Overall
		}
		result = append(result, res)
	}

	return result, nil
}

func (s *profileService) Delete(ctx context.Context, profileID string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	row, err := uow.VoiceProfileRepository().FindOne(ctx, specification.ByProfileID{ProfileID: profileID})
	if err != nil {
		return err
	}
	if row == nil {
		return nil
	}

	if err := uow.VoiceProfileRepository().Delete(ctx, row.Id); err != nil {
		return err
	}
	s.invalidate(ctx, profileID)
	return nil
}

func (s *profileService) SetNegativeSpace(ctx context.Context, req *dto.SetNegativeSpaceRequest) (*dto.ProfileFieldResponse, error) {
	return s.editProfile(ctx, req.ProfileID, func(p *voice.Profile) {
		p.SetNegativeSpace(req.Items, req.Note, req.ChangedBy)
	})
}

func (s *profileService) LockField(ctx context.Context, req *dto.LockFieldRequest) (*dto.ProfileFieldResponse, error) {
	return s.editProfile(ctx, req.ProfileID, func(p *voice.Profile) {
		p.Lock(req.Field, req.Note, req.ChangedBy)
	})
}

func (s *profileService) UnlockField(ctx context.Context, req *dto.LockFieldRequest) (*dto.ProfileFieldResponse, error) {
	return s.editProfile(ctx, req.ProfileID, func(p *voice.Profile) {
		p.Unlock(req.Field, req.Note, req.ChangedBy)
	})
}

func (s *profileService) editProfile(ctx context.Context, profileID string, edit func(*voice.Profile)) (*dto.ProfileFieldResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	row, err := uow.VoiceProfileRepository().FindOne(ctx, specification.ByProfileID{ProfileID: profileID})
	if err != nil {
		return nil, err
	}
	if row == nil || row.Document == nil {
		return nil, nil
	}

	edit(row.Document)
	now := time.Now()
	row.UpdatedAt = &now

	if err := uow.VoiceProfileRepository().Update(ctx, row); err != nil {
		return nil, err
	}
	s.invalidate(ctx, profileID)

	return &dto.ProfileFieldResponse{
		ProfileID:    row.ProfileID,
		LockedFields: row.Document.LockedFields,
	}, nil
}

func (s *profileService) invalidate(ctx context.Context, profileID string) {
	for _, c := range s.caches {
		c.Invalidate(ctx, profileID)
	}
}

func (s *profileService) publishEvent(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("profile_service", "Failed to publish event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}
