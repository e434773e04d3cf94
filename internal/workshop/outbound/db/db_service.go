package db

import (
	"context"

	"github.com/albanyauto/vsm/internal/pkg/goerror"
	"github.com/albanyauto/vsm/internal/workshop/entity"
)

const createServiceRequestSQL = `
INSERT INTO service_requests (id, vehicle_id, customer_id, advisor_id, description, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (d *DB) CreateServiceRequest(ctx context.Context, sr entity.ServiceRequest) error {
	ctx, span := d.startSpan(ctx, "CreateServiceRequest")
	var err error
	defer func() { endSpan(span, err) }()

	_, err = d.conn.Exec(ctx, createServiceRequestSQL,
		sr.ID, sr.VehicleID, sr.CustomerID, sr.AdvisorID, sr.Description, sr.Status.String(),
		sr.CreatedAt, sr.UpdatedAt)
	if err != nil {
		err = mapError(err)
		return err
	}

	return nil
}

const getServiceRequestSQL = `
SELECT id, vehicle_id, customer_id, advisor_id, description, status, created_at, updated_at
FROM service_requests
WHERE id = $1`

func (d *DB) GetServiceRequest(ctx context.Context, id int64) (*entity.ServiceRequest, error) {
	ctx, span := d.startSpan(ctx, "GetServiceRequest")
	var err error
	defer func() { endSpan(span, err) }()

	var sr entity.ServiceRequest
	var status string
	err = d.conn.QueryRow(ctx, getServiceRequestSQL, id).Scan(
		&sr.ID, &sr.VehicleID, &sr.CustomerID, &sr.AdvisorID, &sr.Description, &status,
		&sr.CreatedAt, &sr.UpdatedAt)
	if err != nil {
		err = mapError(err)
		return nil, err
	}
	sr.Status = entity.ServiceStatusFromString(status)

	return &sr, nil
}

const listServiceRequestsSQL = `
SELECT id, vehicle_id, customer_id, advisor_id, description, status, created_at, updated_at
FROM service_requests
WHERE ($1 = 0 OR customer_id = $1)
  AND ($2 = '' OR status = $2)
ORDER BY created_at DESC`

func (d *DB) ListServiceRequests(ctx context.Context, filter entity.ServiceRequestFilter) ([]entity.ServiceRequest, error) {
	ctx, span := d.startSpan(ctx, "ListServiceRequests")
	var err error
	defer func() { endSpan(span, err) }()

	statusFilter := ""
	if filter.Status != entity.ServiceStatusUnknown {
		statusFilter = filter.Status.String()
	}

	rows, err := d.conn.Query(ctx, listServiceRequestsSQL, filter.CustomerID, statusFilter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []entity.ServiceRequest
	for rows.Next() {
		var sr entity.ServiceRequest
		var status string
		if err = rows.Scan(&sr.ID, &sr.VehicleID, &sr.CustomerID, &sr.AdvisorID, &sr.Description,
			&status, &sr.CreatedAt, &sr.UpdatedAt); err != nil {
			return nil, err
		}
		sr.Status = entity.ServiceStatusFromString(status)
		requests = append(requests, sr)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

const updateServiceRequestStatusSQL = `
UPDATE service_requests
SET status = $1, advisor_id = $2, updated_at = now()
WHERE id = $3 AND status = $4`

func (d *DB) UpdateServiceRequestStatus(
	ctx context.Context, id int64, oldStatus, newStatus entity.ServiceStatus, advisorID int64,
) error {
	ctx, span := d.startSpan(ctx, "UpdateServiceRequestStatus")
	var err error
	defer func() { endSpan(span, err) }()

	tag, err := d.conn.Exec(ctx, updateServiceRequestStatusSQL,
		newStatus.String(), advisorID, id, oldStatus.String())
	if err != nil {
		err = mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
