package accounts

import (
	"context"
	"curebird-service/internal/app/models"
)

type AccountRepository interface {
	CreateAccount(ctx context.Context, account *models.Account) (accountID string, err error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*models.Account, error)
	FindByUID(ctx context.Context, uid string) (*models.Account, error)
	UpdateAccount(ctx context.Context, account *models.Account) error
}
