package db

import (
	"context"

	"github.com/albanyauto/vsm/internal/auth/entity"
)

const createUserSQL = `
INSERT INTO users (id, full_name, email, mobile, password, role, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`

func (s *DB) CreateUser(ctx context.Context, in entity.NewUser) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createUserSQL,
		in.ID,
		in.FullName,
		in.Email,
		in.Mobile,
		in.Password,
		in.Role,
		in.Status,
	)
	err = s.mapError(err)
	return err
}
