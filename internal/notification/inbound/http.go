package inbound

import (
	"github.com/albanyauto/vsm/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/notifications", end.ListNotifications, r.Authorize("notifications", "read"))
	r.PATCH("/api/v1/notifications/:id/read", end.MarkRead, r.Authorize("notifications", "update"))
}
