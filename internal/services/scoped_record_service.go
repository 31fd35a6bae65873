package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ArowuTest/paymethods-config-backend/internal/repositories"
	"github.com/ArowuTest/paymethods-config-backend/internal/scoped"
)

// ScopedRecordService defines the interface for editing credentials or bank accounts in grouped form
type ScopedRecordService interface {
	Get(ctx context.Context, providerCode string) ([]scoped.RecordGroup, error)
	// Replace stores groups as flat records and returns the stored state regrouped
	Replace(ctx context.Context, providerCode string, groups []scoped.RecordGroup) ([]scoped.RecordGroup, error)
}

type scopedRecordService struct {
	kind         string
	providerRepo repositories.ProviderRepository
	recordRepo   repositories.ScopedRecordRepository
	log          *logrus.Logger
}

// NewScopedRecordService creates a ScopedRecordService. kind names the records in logs.
func NewScopedRecordService(kind string, providerRepo repositories.ProviderRepository, recordRepo repositories.ScopedRecordRepository, log *logrus.Logger) ScopedRecordService {
	return &scopedRecordService{
		kind:         kind,
		providerRepo: providerRepo,
		recordRepo:   recordRepo,
		log:          log,
	}
}

func (s *scopedRecordService) Get(ctx context.Context, providerCode string) ([]scoped.RecordGroup, error) {
	provider, err := findProvider(ctx, s.providerRepo, providerCode)
	if err != nil {
		return nil, err
	}
	stored, err := s.recordRepo.FindByProvider(ctx, provider.ID)
	if err != nil {
		return nil, err
	}
	return scoped.Group(toScopedRecords(stored)), nil
}

func (s *scopedRecordService) Replace(ctx context.Context, providerCode string, groups []scoped.RecordGroup) ([]scoped.RecordGroup, error) {
	provider, err := findProvider(ctx, s.providerRepo, providerCode)
	if err != nil {
		return nil, err
	}

	records := fromScopedRecords(provider.ID, scoped.Ungroup(groups))
	if err := s.recordRepo.ReplaceForProvider(ctx, provider.ID, records); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"provider": provider.Code,
		"kind":     s.kind,
		"groups":   len(groups),
		"records":  len(records),
	}).Info("Replaced scoped records")
	return scoped.Group(toScopedRecords(records)), nil
}
