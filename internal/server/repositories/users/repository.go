package users

import (
	"context"

	"github.com/dmitrijs2005/mindwell/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.UserSummary, error)
	SetProfilePic(ctx context.Context, id string, key string) error
	Touch(ctx context.Context, id string) error
}
