package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/paymethods-config-backend/internal/apperrors"
	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/internal/repositories"
)

func findProvider(ctx context.Context, repo repositories.ProviderRepository, code string) (*models.Provider, error) {
	provider, err := repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFound("Provider not found").WithMeta("provider", code)
		}
		return nil, err
	}
	return provider, nil
}

// findMethod loads a method and checks it belongs to provider
func findMethod(ctx context.Context, repo repositories.ProviderRepository, provider *models.Provider, methodID string) (*models.ProviderMethod, error) {
	notFound := apperrors.NewNotFound("Provider method not found").
		WithMeta("provider", provider.Code).
		WithMeta("method", methodID)

	id, err := primitive.ObjectIDFromHex(methodID)
	if err != nil {
		return nil, notFound
	}
	method, err := repo.FindMethodByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	if method.ProviderID != provider.ID {
		return nil, notFound
	}
	return method, nil
}
