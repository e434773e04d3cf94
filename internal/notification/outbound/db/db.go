package db

import (
	"context"
	"errors"

	"github.com/albanyauto/vsm/internal/notification/entity"
	"github.com/albanyauto/vsm/internal/pkg/goerror"
	"github.com/albanyauto/vsm/internal/pkg/instrument"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

func (d *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return d.ins.Tracer("notification.outbound.db").Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

const createNotificationSQL = `
INSERT INTO notifications (id, user_id, title, body, created_at)
VALUES ($1, $2, $3, $4, $5)`

func (d *DB) CreateNotification(ctx context.Context, n entity.Notification) error {
	ctx, span := d.startSpan(ctx, "CreateNotification")
	var err error
	defer func() { endSpan(span, err) }()

	_, err = d.conn.Exec(ctx, createNotificationSQL, n.ID, n.UserID, n.Title, n.Body, n.CreatedAt)
	return err
}

const listNotificationsSQL = `
SELECT id, user_id, title, body, read_at, created_at
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT 100`

func (d *DB) ListNotifications(ctx context.Context, userID int64) ([]entity.Notification, error) {
	ctx, span := d.startSpan(ctx, "ListNotifications")
	var err error
	defer func() { endSpan(span, err) }()

	rows, err := d.conn.Query(ctx, listNotificationsSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err = rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

const markNotificationReadSQL = `
UPDATE notifications
SET read_at = now()
WHERE id = $1 AND user_id = $2 AND read_at IS NULL`

func (d *DB) MarkNotificationRead(ctx context.Context, id, userID int64) error {
	ctx, span := d.startSpan(ctx, "MarkNotificationRead")
	var err error
	defer func() { endSpan(span, err) }()

	tag, err := d.conn.Exec(ctx, markNotificationReadSQL, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Distinguish "not yours" from "already read".
		var exists bool
		if err = d.conn.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM notifications WHERE id = $1 AND user_id = $2)`,
			id, userID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			err = goerror.ErrNotFound
			return err
		}
	}

	return nil
}
