package db

import (
	"context"

	"github.com/albanyauto/vsm/internal/auth/entity"
	"github.com/albanyauto/vsm/internal/pkg/goerror"
)

const updateUserStatusSQL = `
UPDATE users
SET status = $1, updated_at = now()
WHERE id = $2 AND status = $3`

func (s *DB) UpdateUserStatus(ctx context.Context, id int64, oldStatus, newStatus entity.UserStatus) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserStatus")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, updateUserStatusSQL, newStatus, id, oldStatus)
	if err != nil {
		err = s.mapError(err)
		return err
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
