package db

import (
	"context"

	"github.com/albanyauto/vsm/internal/workshop/entity"
)

const createVehicleSQL = `
INSERT INTO vehicles (id, owner_id, registration_no, make, model, year, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (d *DB) CreateVehicle(ctx context.Context, v entity.Vehicle) error {
	ctx, span := d.startSpan(ctx, "CreateVehicle")
	var err error
	defer func() { endSpan(span, err) }()

	_, err = d.conn.Exec(ctx, createVehicleSQL,
		v.ID, v.OwnerID, v.RegistrationNo, v.Make, v.Model, v.Year, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		err = mapError(err)
		return err
	}

	return nil
}

const getVehicleSQL = `
SELECT id, owner_id, registration_no, make, model, year, created_at, updated_at
FROM vehicles
WHERE id = $1`

func (d *DB) GetVehicle(ctx context.Context, id int64) (*entity.Vehicle, error) {
	ctx, span := d.startSpan(ctx, "GetVehicle")
	var err error
	defer func() { endSpan(span, err) }()

	var v entity.Vehicle
	err = d.conn.QueryRow(ctx, getVehicleSQL, id).Scan(
		&v.ID, &v.OwnerID, &v.RegistrationNo, &v.Make, &v.Model, &v.Year, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		err = mapError(err)
		return nil, err
	}

	return &v, nil
}

const listVehiclesByOwnerSQL = `
SELECT id, owner_id, registration_no, make, model, year, created_at, updated_at
FROM vehicles
WHERE owner_id = $1
ORDER BY created_at DESC`

func (d *DB) ListVehiclesByOwner(ctx context.Context, ownerID int64) ([]entity.Vehicle, error) {
	ctx, span := d.startSpan(ctx, "ListVehiclesByOwner")
	var err error
	defer func() { endSpan(span, err) }()

	rows, err := d.conn.Query(ctx, listVehiclesByOwnerSQL, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err = rows.Scan(&v.ID, &v.OwnerID, &v.RegistrationNo, &v.Make, &v.Model, &v.Year,
			&v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return vehicles, nil
}
