package usecase

import (
	"context"
	"strings"

	"github.com/albanyauto/vsm/internal/auth/entity"
	"github.com/albanyauto/vsm/internal/pkg/clock"
	"github.com/albanyauto/vsm/internal/pkg/config"
	"github.com/albanyauto/vsm/internal/pkg/goroutine"
	"github.com/albanyauto/vsm/internal/pkg/hash"
	"github.com/albanyauto/vsm/internal/pkg/instrument"
	"github.com/albanyauto/vsm/internal/pkg/jwt"
	"github.com/albanyauto/vsm/internal/pkg/otp"
	"github.com/albanyauto/vsm/internal/pkg/otpcache"
	"github.com/albanyauto/vsm/internal/pkg/session"
	"github.com/albanyauto/vsm/internal/pkg/uid"
	"github.com/albanyauto/vsm/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// UserRegisteredEvent is published after a registration is verified.
type UserRegisteredEvent struct {
	UserID   int64
	FullName string
	Email    string
	Mobile   string
	Role     string
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
}

type repoDB interface {
	GetUserByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
	ExistsByIdentifier(ctx context.Context, email, mobile string) (bool, error)
	CreateUser(ctx context.Context, in entity.NewUser) error
	UpdateUserStatus(ctx context.Context, id int64, oldStatus, newStatus entity.UserStatus) error
}

// notifier delivers a rendered OTP message to an identifier (email or mobile).
type notifier interface {
	Send(ctx context.Context, identifier, message string) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	notifier      notifier
	otpStore      otpcache.Store
	pendingStore  otpcache.Store
	otpGen        otp.Generator
	sessions      session.Issuer
	validator     validator.Validator
	cfg           config.Config
	bcrypt        hash.Hash
	uid           uid.NumberID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Notifier      notifier
	OTPStore      otpcache.Store
	PendingStore  otpcache.Store
	OTPGen        otp.Generator
	Sessions      session.Issuer
	Validator     validator.Validator
	Config        config.Config
	Bcrypt        hash.Hash
	UID           uid.NumberID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		notifier:      dep.Notifier,
		otpStore:      dep.OTPStore,
		pendingStore:  dep.PendingStore,
		otpGen:        dep.OTPGen,
		sessions:      dep.Sessions,
		validator:     dep.Validator,
		cfg:           dep.Config,
		bcrypt:        dep.Bcrypt,
		uid:           dep.UID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

// normalizeIdentifier trims whitespace and lowercases emails so "A@B.com " and
// "a@b.com" address the same OTP slot.
func normalizeIdentifier(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		identifier = strings.ToLower(identifier)
	}
	return identifier
}

func isEmail(identifier string) bool {
	return strings.Contains(identifier, "@")
}

func otpKey(purpose entity.OTPPurpose, identifier string) string {
	return purpose.String() + ":" + identifier
}

func pendingKey(identifier string) string {
	return "pending:" + identifier
}
