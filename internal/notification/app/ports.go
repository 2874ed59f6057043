package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/notification/domain"
)

type OutboxRepo interface {
	Append(ctx context.Context, rec domain.ConfirmationRecord) error
	List(ctx context.Context) ([]domain.ConfirmationRecord, error)
}
