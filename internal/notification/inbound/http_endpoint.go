package inbound

import (
	"github.com/albanyauto/vsm/internal/notification/entity"
	"github.com/albanyauto/vsm/internal/notification/usecase"
	"github.com/albanyauto/vsm/internal/pkg/router"
	"github.com/samber/lo"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) ListNotifications(r *router.Request) (any, error) {
	notifications, err := h.uc.ListNotifications(r.Context())
	if err != nil {
		return nil, err
	}

	return lo.Map(notifications, func(n entity.Notification, _ int) NotificationResponse {
		return NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Body:      n.Body,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		}
	}), nil
}

func (h *HTTPEndpoint) MarkRead(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.MarkRead(r.Context(), usecase.MarkReadInput{ID: id}); err != nil {
		return nil, err
	}

	return MarkReadResponse{}, nil
}
