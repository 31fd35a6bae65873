package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/paymethods-config-backend/internal/apperrors"
	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/internal/repositories"
)

// ReorderService defines the interface for ordering a provider's methods
type ReorderService interface {
	// Reorder sets the display order of payout or refund configs. methodIDs must
	// name every method of the provider exactly once.
	Reorder(ctx context.Context, providerCode string, txType models.TransactionType, methodIDs []string) error
}

type reorderService struct {
	providerRepo repositories.ProviderRepository
	configRepo   repositories.TransactionConfigRepository
	log          *logrus.Logger
}

// NewReorderService creates a new ReorderService implementation
func NewReorderService(providerRepo repositories.ProviderRepository, configRepo repositories.TransactionConfigRepository, log *logrus.Logger) ReorderService {
	return &reorderService{
		providerRepo: providerRepo,
		configRepo:   configRepo,
		log:          log,
	}
}

func (s *reorderService) Reorder(ctx context.Context, providerCode string, txType models.TransactionType, methodIDs []string) error {
	if txType != models.TransactionTypePayout && txType != models.TransactionTypeRefund {
		return apperrors.NewValidation(fmt.Sprintf("Only payout and refund methods can be ordered, got %q", txType))
	}

	provider, err := findProvider(ctx, s.providerRepo, providerCode)
	if err != nil {
		return err
	}
	methods, err := s.providerRepo.FindMethods(ctx, provider.ID)
	if err != nil {
		return err
	}

	stored := make(map[primitive.ObjectID]struct{}, len(methods))
	for _, m := range methods {
		stored[m.ID] = struct{}{}
	}

	ids := make([]primitive.ObjectID, 0, len(methodIDs))
	seen := make(map[primitive.ObjectID]struct{}, len(methodIDs))
	for _, raw := range methodIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return apperrors.NewValidation("Invalid method id").WithMeta("method", raw)
		}
		if _, ok := seen[id]; ok {
			return apperrors.NewConflict("Methods list contain duplicates").WithMeta("method", raw)
		}
		if _, ok := stored[id]; !ok {
			return apperrors.NewConflict("Methods list does not match provider methods").WithMeta("method", raw)
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) != len(stored) {
		return apperrors.NewConflict("Methods list does not match provider methods").
			WithMeta("expected", fmt.Sprint(len(stored))).
			WithMeta("got", fmt.Sprint(len(ids)))
	}

	if err := s.configRepo.UpdateOrder(ctx, txType, ids); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"provider": provider.Code,
		"type":     txType,
		"methods":  len(ids),
	}).Info("Reordered provider methods")
	return nil
}
