package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/albanyauto/vsm/internal/notification/entity"
	"github.com/albanyauto/vsm/internal/pkg/clock"
	"github.com/albanyauto/vsm/internal/pkg/config"
	"github.com/albanyauto/vsm/internal/pkg/goerror"
	"github.com/albanyauto/vsm/internal/pkg/instrument"
	"github.com/albanyauto/vsm/internal/pkg/jwt"
	"github.com/albanyauto/vsm/internal/pkg/mail"
	"github.com/albanyauto/vsm/internal/pkg/validator"
)

type fakeRepoDB struct {
	notifications map[int64]entity.Notification
	createErr     error
}

func (f *fakeRepoDB) CreateNotification(_ context.Context, n entity.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.notifications[n.ID] = n
	return nil
}

func (f *fakeRepoDB) ListNotifications(_ context.Context, userID int64) ([]entity.Notification, error) {
	var out []entity.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeRepoDB) MarkNotificationRead(_ context.Context, id, userID int64) error {
	n, ok := f.notifications[id]
	if !ok || n.UserID != userID {
		return goerror.ErrNotFound
	}
	now := time.Now()
	n.ReadAt = &now
	f.notifications[id] = n
	return nil
}

type fakeMail struct {
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeNumberID struct{ next int64 }

func (f *fakeNumberID) Generate() int64 {
	f.next++
	return f.next
}

func newTestUsecase(t *testing.T) (*Usecase, *fakeRepoDB, *fakeMail) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: VSM Garage\n"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	repo := &fakeRepoDB{notifications: map[int64]entity.Notification{}}
	mailer := &fakeMail{}
	uc := New(Dependency{
		RepoDB:     repo,
		RepoMail:   mailer,
		Validator:  v10,
		Config:     cfg,
		UID:        &fakeNumberID{},
		Clock:      clock.NewFixed(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)),
		Instrument: instrument.NewNoop(),
	})
	return uc, repo, mailer
}

func TestConsumeUserRegisteredCreatesNotificationAndEmail(t *testing.T) {
	uc, repo, mailer := newTestUsecase(t)

	err := uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{
		UserID:   42,
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Role:     "customer",
	})
	if err != nil {
		t.Fatalf("ConsumeUserRegistered: %v", err)
	}

	if len(repo.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(repo.notifications))
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(mailer.sent))
	}
	if mailer.sent[0].Subject != "Welcome to VSM Garage" {
		t.Fatalf("unexpected subject %q", mailer.sent[0].Subject)
	}
}

func TestConsumeUserRegisteredDropsInvalidPayload(t *testing.T) {
	uc, repo, mailer := newTestUsecase(t)

	// No error: a malformed event must not be retried forever.
	err := uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{
		UserID: 0,
		Email:  "not-an-email",
	})
	if err != nil {
		t.Fatalf("expected nil for invalid payload, got %v", err)
	}
	if len(repo.notifications) != 0 || len(mailer.sent) != 0 {
		t.Fatal("invalid payload must not produce side effects")
	}
}

func TestConsumeUserRegisteredMailFailureIsBestEffort(t *testing.T) {
	uc, repo, mailer := newTestUsecase(t)
	mailer.err = errors.New("smtp down")

	err := uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{
		UserID:   42,
		FullName: "Asha Rao",
		Email:    "asha@example.com",
	})
	if err != nil {
		t.Fatalf("mail failure should not fail the consume: %v", err)
	}
	if len(repo.notifications) != 1 {
		t.Fatal("notification should still be created when mail fails")
	}
}

func TestMarkReadScopedToOwner(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.notifications[7] = entity.Notification{ID: 7, UserID: 1, Title: "t", Body: "b"}

	ctx := jwt.SetAuth(context.Background(), jwt.Claims{UserID: 2, UserRole: "customer"})
	err := uc.MarkRead(ctx, MarkReadInput{ID: 7})

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeNotFound {
		t.Fatalf("expected not found for foreign notification, got %v", err)
	}

	ctx = jwt.SetAuth(context.Background(), jwt.Claims{UserID: 1, UserRole: "customer"})
	if err := uc.MarkRead(ctx, MarkReadInput{ID: 7}); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if repo.notifications[7].ReadAt == nil {
		t.Fatal("expected read_at to be set")
	}
}
