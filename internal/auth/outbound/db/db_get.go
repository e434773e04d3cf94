package db

import (
	"context"

	"github.com/albanyauto/vsm/internal/auth/entity"
)

const getUserByIdentifierSQL = `
SELECT id, full_name, email, mobile, password, role, status, created_at, updated_at
FROM users
WHERE email = $1 OR mobile = $1
LIMIT 1`

func (s *DB) GetUserByIdentifier(ctx context.Context, identifier string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByIdentifier")
	defer func() { s.endSpan(span, err) }()

	var u entity.User
	err = s.conn.QueryRow(ctx, getUserByIdentifierSQL, identifier).Scan(
		&u.ID,
		&u.FullName,
		&u.Email,
		&u.Mobile,
		&u.Password,
		&u.Role,
		&u.Status,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &u, nil
}

const existsByIdentifierSQL = `
SELECT EXISTS (
	SELECT 1 FROM users WHERE email = $1 OR mobile = $2
)`

func (s *DB) ExistsByIdentifier(ctx context.Context, email, mobile string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ExistsByIdentifier")
	defer func() { s.endSpan(span, err) }()

	var exists bool
	if err = s.conn.QueryRow(ctx, existsByIdentifierSQL, email, mobile).Scan(&exists); err != nil {
		return false, s.mapError(err)
	}

	return exists, nil
}
