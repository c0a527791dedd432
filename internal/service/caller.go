package service

import (
	"context"
	"errors"

	"gymhub/gym-api/internal/domain"
	"gymhub/gym-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// resolveManager re-resolves the authenticated manager record from its token
// subject ID. Tokens are not revoked, so a manager deleted after issuance is
// caught here.
func resolveManager(ctx context.Context, repo repository.ManagerRepository, id primitive.ObjectID) (*domain.Manager, error) {
	manager, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrManagerNotFound
		}
		return nil, err
	}
	return manager, nil
}
