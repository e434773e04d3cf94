package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/albanyauto/vsm/internal/pkg/clock"
	"github.com/albanyauto/vsm/internal/pkg/goerror"
	"github.com/albanyauto/vsm/internal/pkg/instrument"
	"github.com/albanyauto/vsm/internal/pkg/jwt"
	"github.com/albanyauto/vsm/internal/pkg/validator"
	"github.com/albanyauto/vsm/internal/workshop/entity"
)

type fakeRepoDB struct {
	vehicles map[int64]entity.Vehicle
	requests map[int64]entity.ServiceRequest
	regNos   map[string]struct{}
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{
		vehicles: map[int64]entity.Vehicle{},
		requests: map[int64]entity.ServiceRequest{},
		regNos:   map[string]struct{}{},
	}
}

func (f *fakeRepoDB) CreateVehicle(_ context.Context, v entity.Vehicle) error {
	if _, ok := f.regNos[v.RegistrationNo]; ok {
		return goerror.ErrConflict
	}
	f.regNos[v.RegistrationNo] = struct{}{}
	f.vehicles[v.ID] = v
	return nil
}

func (f *fakeRepoDB) GetVehicle(_ context.Context, id int64) (*entity.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &v, nil
}

func (f *fakeRepoDB) ListVehiclesByOwner(_ context.Context, ownerID int64) ([]entity.Vehicle, error) {
	var out []entity.Vehicle
	for _, v := range f.vehicles {
		if v.OwnerID == ownerID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeRepoDB) CreateServiceRequest(_ context.Context, sr entity.ServiceRequest) error {
	f.requests[sr.ID] = sr
	return nil
}

func (f *fakeRepoDB) GetServiceRequest(_ context.Context, id int64) (*entity.ServiceRequest, error) {
	sr, ok := f.requests[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &sr, nil
}

func (f *fakeRepoDB) ListServiceRequests(_ context.Context, filter entity.ServiceRequestFilter) ([]entity.ServiceRequest, error) {
	var out []entity.ServiceRequest
	for _, sr := range f.requests {
		if filter.CustomerID != 0 && sr.CustomerID != filter.CustomerID {
			continue
		}
		if filter.Status != entity.ServiceStatusUnknown && sr.Status != filter.Status {
			continue
		}
		out = append(out, sr)
	}
	return out, nil
}

func (f *fakeRepoDB) UpdateServiceRequestStatus(
	_ context.Context, id int64, oldStatus, newStatus entity.ServiceStatus, advisorID int64,
) error {
	sr, ok := f.requests[id]
	if !ok || sr.Status != oldStatus {
		return goerror.ErrNotFound
	}
	sr.Status = newStatus
	sr.AdvisorID = advisorID
	f.requests[id] = sr
	return nil
}

type seqNumberID struct{ next int64 }

func (s *seqNumberID) Generate() int64 {
	s.next++
	return s.next
}

func newTestUsecase(t *testing.T) (*Usecase, *fakeRepoDB) {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	repo := newFakeRepoDB()
	uc := New(Dependency{
		RepoDB:     repo,
		Validator:  v10,
		UID:        &seqNumberID{next: 100},
		Clock:      clock.NewFixed(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)),
		Instrument: instrument.NewNoop(),
	})
	return uc, repo
}

func asCustomer(userID int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID, UserRole: "customer"})
}

func asAdvisor(userID int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID, UserRole: "serviceadvisor"})
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()
	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *goerror.Error, got %v", err)
	}
	if gerr.Code() != want {
		t.Fatalf("expected code %v, got %v (%s)", want, gerr.Code(), gerr.Msg())
	}
}

func TestCreateVehicleNormalizesRegistrationNo(t *testing.T) {
	uc, _ := newTestUsecase(t)

	v, err := uc.CreateVehicle(asCustomer(1), CreateVehicleInput{
		RegistrationNo: " ka 01 ab 1234 ",
		Make:           "Maruti",
		Model:          "Swift",
		Year:           2021,
	})
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}
	if v.RegistrationNo != "KA01AB1234" {
		t.Fatalf("expected normalized registration no, got %q", v.RegistrationNo)
	}
	if v.OwnerID != 1 {
		t.Fatalf("expected owner from claims, got %d", v.OwnerID)
	}
}

func TestCreateVehicleDuplicateRegistration(t *testing.T) {
	uc, _ := newTestUsecase(t)

	in := CreateVehicleInput{RegistrationNo: "KA01AB1234", Make: "Maruti", Model: "Swift", Year: 2021}
	if _, err := uc.CreateVehicle(asCustomer(1), in); err != nil {
		t.Fatalf("first CreateVehicle: %v", err)
	}

	_, err := uc.CreateVehicle(asCustomer(2), in)
	assertCode(t, err, goerror.CodeConflict)
}

func TestCreateVehicleRequiresAuth(t *testing.T) {
	uc, _ := newTestUsecase(t)

	_, err := uc.CreateVehicle(context.Background(), CreateVehicleInput{
		RegistrationNo: "KA01AB1234", Make: "Maruti", Model: "Swift", Year: 2021,
	})
	assertCode(t, err, goerror.CodeUnauthorized)
}

func TestGetVehicleHiddenFromOtherCustomers(t *testing.T) {
	uc, _ := newTestUsecase(t)

	v, err := uc.CreateVehicle(asCustomer(1), CreateVehicleInput{
		RegistrationNo: "KA01AB1234", Make: "Maruti", Model: "Swift", Year: 2021,
	})
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}

	_, err = uc.GetVehicle(asCustomer(2), v.ID)
	assertCode(t, err, goerror.CodeNotFound)

	if _, err := uc.GetVehicle(asAdvisor(9), v.ID); err != nil {
		t.Fatalf("advisor should read any vehicle: %v", err)
	}
}

func TestCreateServiceRequestForOthersVehicle(t *testing.T) {
	uc, _ := newTestUsecase(t)

	v, err := uc.CreateVehicle(asCustomer(1), CreateVehicleInput{
		RegistrationNo: "KA01AB1234", Make: "Maruti", Model: "Swift", Year: 2021,
	})
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}

	_, err = uc.CreateServiceRequest(asCustomer(2), CreateServiceRequestInput{
		VehicleID:   v.ID,
		Description: "brake pads squealing on light braking",
	})
	assertCode(t, err, goerror.CodeNotFound)
}

func TestListServiceRequestsScopedByRole(t *testing.T) {
	uc, _ := newTestUsecase(t)

	for i, owner := range []int64{1, 2} {
		v, err := uc.CreateVehicle(asCustomer(owner), CreateVehicleInput{
			RegistrationNo: "KA01AB123" + string(rune('0'+i)), Make: "Maruti", Model: "Swift", Year: 2021,
		})
		if err != nil {
			t.Fatalf("CreateVehicle: %v", err)
		}
		if _, err := uc.CreateServiceRequest(asCustomer(owner), CreateServiceRequestInput{
			VehicleID:   v.ID,
			Description: "engine makes a ticking noise at idle",
		}); err != nil {
			t.Fatalf("CreateServiceRequest: %v", err)
		}
	}

	mine, err := uc.ListServiceRequests(asCustomer(1), ListServiceRequestsInput{})
	if err != nil {
		t.Fatalf("ListServiceRequests: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("customer should only see own requests, got %d", len(mine))
	}

	all, err := uc.ListServiceRequests(asAdvisor(9), ListServiceRequestsInput{})
	if err != nil {
		t.Fatalf("ListServiceRequests: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("advisor should see every request, got %d", len(all))
	}
}

func TestUpdateServiceStatusLifecycle(t *testing.T) {
	uc, _ := newTestUsecase(t)

	v, err := uc.CreateVehicle(asCustomer(1), CreateVehicleInput{
		RegistrationNo: "KA01AB1234", Make: "Maruti", Model: "Swift", Year: 2021,
	})
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}
	sr, err := uc.CreateServiceRequest(asCustomer(1), CreateServiceRequestInput{
		VehicleID:   v.ID,
		Description: "suspension feels loose over speed bumps",
	})
	if err != nil {
		t.Fatalf("CreateServiceRequest: %v", err)
	}

	// pending cannot jump straight to completed
	_, err = uc.UpdateServiceStatus(asAdvisor(9), UpdateServiceStatusInput{
		ID: sr.ID, Status: entity.ServiceStatusCompleted,
	})
	assertCode(t, err, goerror.CodeConflict)

	got, err := uc.UpdateServiceStatus(asAdvisor(9), UpdateServiceStatusInput{
		ID: sr.ID, Status: entity.ServiceStatusInProgress,
	})
	if err != nil {
		t.Fatalf("to in_progress: %v", err)
	}
	if got.AdvisorID != 9 {
		t.Fatalf("expected advisor recorded, got %d", got.AdvisorID)
	}

	got, err = uc.UpdateServiceStatus(asAdvisor(9), UpdateServiceStatusInput{
		ID: sr.ID, Status: entity.ServiceStatusCompleted,
	})
	if err != nil {
		t.Fatalf("to completed: %v", err)
	}

	// completed is terminal
	_, err = uc.UpdateServiceStatus(asAdvisor(9), UpdateServiceStatusInput{
		ID: got.ID, Status: entity.ServiceStatusCancelled,
	})
	assertCode(t, err, goerror.CodeConflict)
}

func TestCustomerCanOnlyCancelOwnRequest(t *testing.T) {
	uc, _ := newTestUsecase(t)

	v, err := uc.CreateVehicle(asCustomer(1), CreateVehicleInput{
		RegistrationNo: "KA01AB1234", Make: "Maruti", Model: "Swift", Year: 2021,
	})
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}
	sr, err := uc.CreateServiceRequest(asCustomer(1), CreateServiceRequestInput{
		VehicleID:   v.ID,
		Description: "air conditioning blows warm air only",
	})
	if err != nil {
		t.Fatalf("CreateServiceRequest: %v", err)
	}

	_, err = uc.UpdateServiceStatus(asCustomer(1), UpdateServiceStatusInput{
		ID: sr.ID, Status: entity.ServiceStatusInProgress,
	})
	assertCode(t, err, goerror.CodeForbidden)

	_, err = uc.UpdateServiceStatus(asCustomer(2), UpdateServiceStatusInput{
		ID: sr.ID, Status: entity.ServiceStatusCancelled,
	})
	assertCode(t, err, goerror.CodeNotFound)

	got, err := uc.UpdateServiceStatus(asCustomer(1), UpdateServiceStatusInput{
		ID: sr.ID, Status: entity.ServiceStatusCancelled,
	})
	if err != nil {
		t.Fatalf("cancel own pending request: %v", err)
	}
	if got.Status != entity.ServiceStatusCancelled {
		t.Fatalf("expected cancelled, got %s", got.Status)
	}
}
