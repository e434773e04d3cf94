package inbound

import (
	"context"

	"github.com/albanyauto/vsm/internal/notification/entity"
	"github.com/albanyauto/vsm/internal/notification/usecase"
)

type uc interface {
	ConsumeUserRegistered(ctx context.Context, in usecase.ConsumeUserRegisteredInput) error
	ListNotifications(ctx context.Context) ([]entity.Notification, error)
	MarkRead(ctx context.Context, in usecase.MarkReadInput) error
}
