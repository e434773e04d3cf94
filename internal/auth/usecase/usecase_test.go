package usecase

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/albanyauto/vsm/internal/auth/entity"
	"github.com/albanyauto/vsm/internal/pkg/clock"
	"github.com/albanyauto/vsm/internal/pkg/config"
	"github.com/albanyauto/vsm/internal/pkg/goerror"
	"github.com/albanyauto/vsm/internal/pkg/goroutine"
	"github.com/albanyauto/vsm/internal/pkg/hash"
	"github.com/albanyauto/vsm/internal/pkg/instrument"
	"github.com/albanyauto/vsm/internal/pkg/jwt"
	"github.com/albanyauto/vsm/internal/pkg/otpcache"
	"github.com/albanyauto/vsm/internal/pkg/session"
	"github.com/albanyauto/vsm/internal/pkg/uid"
	"github.com/albanyauto/vsm/internal/pkg/validator"
)

type fakeRepoDB struct {
	mu      sync.Mutex
	users   map[string]*entity.User
	created []entity.NewUser

	getErr    error
	existsErr error
	createErr error
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{users: map[string]*entity.User{}}
}

func (f *fakeRepoDB) seed(u entity.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.Email != "" {
		f.users[u.Email] = &u
	}
	if u.Mobile != "" {
		f.users[u.Mobile] = &u
	}
}

func (f *fakeRepoDB) GetUserByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[identifier]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepoDB) ExistsByIdentifier(_ context.Context, email, mobile string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, byEmail := f.users[email]
	_, byMobile := f.users[mobile]
	return byEmail || byMobile, nil
}

func (f *fakeRepoDB) CreateUser(_ context.Context, in entity.NewUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, in)
	u := entity.User{
		ID:       in.ID,
		FullName: in.FullName,
		Email:    in.Email,
		Mobile:   in.Mobile,
		Password: in.Password,
		Role:     in.Role,
		Status:   in.Status,
	}
	f.users[in.Email] = &u
	f.users[in.Mobile] = &u
	return nil
}

func (f *fakeRepoDB) UpdateUserStatus(_ context.Context, id int64, _, newStatus entity.UserStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			u.Status = newStatus
		}
	}
	return nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (f *fakeNotifier) Send(_ context.Context, _, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, message)
	return nil
}

type fakeMessaging struct {
	mu     sync.Mutex
	events []UserRegisteredEvent
}

func (f *fakeMessaging) PublishUserRegistered(_ context.Context, msg UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, msg)
	return nil
}

func (f *fakeMessaging) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type fakeGen struct {
	codes []string
	calls int
}

func (f *fakeGen) Generate(int) (string, error) {
	code := f.codes[f.calls%len(f.codes)]
	f.calls++
	return code, nil
}

type fakeNumberID struct{ n int64 }

func (f *fakeNumberID) Generate() int64 {
	f.n++
	return f.n
}

type fixture struct {
	uc       *Usecase
	repo     *fakeRepoDB
	notifier *fakeNotifier
	mq       *fakeMessaging
	gen      *fakeGen
	otps     *otpcache.Memory
	pendings *otpcache.Memory
	sessions *session.Registry
	clock    *clock.Fixed
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fc := clock.NewFixed(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
modules:
  auth:
    otp_ttl_minutes: 5
    otp_length: 4
    otp_strict_length: 6
`))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	signer, err := jwt.NewHS512(jwt.Config{
		Secret:    bytes.Repeat([]byte("k"), 64),
		Issuer:    "vsm-test",
		Audiences: []string{"vsm"},
		TTL:       time.Hour,
		Clock:     fc,
		UUID:      uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("failed to build jwt: %v", err)
	}

	repo := newFakeRepoDB()
	ntf := &fakeNotifier{}
	mq := &fakeMessaging{}
	gen := &fakeGen{codes: []string{"1234"}}
	otps := otpcache.NewMemory(fc)
	pendings := otpcache.NewMemory(fc)
	sessions := session.NewRegistry(30*time.Minute, fc)

	uc := New(Dependency{
		RepoDB:        repo,
		RepoMessaging: mq,
		Notifier:      ntf,
		OTPStore:      otps,
		PendingStore:  pendings,
		OTPGen:        gen,
		Sessions:      sessions,
		Validator:     v10,
		Config:        cfg,
		Bcrypt:        hash.NewBcrypt(4, ""),
		UID:           &fakeNumberID{},
		Clock:         fc,
		JWT:           signer,
		Instrument:    instrument.NewNoop(),
		Goroutine:     goroutine.NewManager(4),
	})

	return &fixture{
		uc:       uc,
		repo:     repo,
		notifier: ntf,
		mq:       mq,
		gen:      gen,
		otps:     otps,
		pendings: pendings,
		sessions: sessions,
		clock:    fc,
	}
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected goerror, got %v", err)
	}
	if gerr.Code() != want {
		t.Fatalf("expected error code %d, got %d (%v)", want, gerr.Code(), err)
	}
}

func TestOTPRequestThenVerifyConsumesCode(t *testing.T) {
	// Arrange
	fx := newFixture(t)
	ctx := context.Background()

	// Act
	if err := fx.uc.OTPRequest(ctx, OTPRequestInput{Identifier: "Cust@Example.COM ", Purpose: entity.OTPPurposeLogin}); err != nil {
		t.Fatalf("otp request failed: %v", err)
	}

	// Assert
	if len(fx.notifier.messages) != 1 {
		t.Fatalf("expected 1 delivered message, got %d", len(fx.notifier.messages))
	}

	err := fx.uc.OTPVerify(ctx, OTPVerifyInput{Identifier: "cust@example.com", Code: "1234", Purpose: entity.OTPPurposeLogin})
	if err != nil {
		t.Fatalf("verify with correct code failed: %v", err)
	}

	// Replaying the consumed code must fail as expired/missing.
	err = fx.uc.OTPVerify(ctx, OTPVerifyInput{Identifier: "cust@example.com", Code: "1234", Purpose: entity.OTPPurposeLogin})
	assertCode(t, err, goerror.CodeOTPExpired)
}

func TestOTPVerifyMismatchKeepsCodeAlive(t *testing.T) {
	// Arrange
	fx := newFixture(t)
	ctx := context.Background()
	if err := fx.uc.OTPRequest(ctx, OTPRequestInput{Identifier: "cust@example.com", Purpose: entity.OTPPurposeLogin}); err != nil {
		t.Fatalf("otp request failed: %v", err)
	}

	// Act
	err := fx.uc.OTPVerify(ctx, OTPVerifyInput{Identifier: "cust@example.com", Code: "0000", Purpose: entity.OTPPurposeLogin})

	// Assert
	assertCode(t, err, goerror.CodeOTPMismatch)

	if err := fx.uc.OTPVerify(ctx, OTPVerifyInput{Identifier: "cust@example.com", Code: "1234", Purpose: entity.OTPPurposeLogin}); err != nil {
		t.Fatalf("verify after mismatch failed: %v", err)
	}
}

func TestOTPVerifyAfterExpiry(t *testing.T) {
	// Arrange
	fx := newFixture(t)
	ctx := context.Background()
	if err := fx.uc.OTPRequest(ctx, OTPRequestInput{Identifier: "cust@example.com", Purpose: entity.OTPPurposeLogin}); err != nil {
		t.Fatalf("otp request failed: %v", err)
	}

	// Act
	fx.clock.Advance(5 * time.Minute)
	err := fx.uc.OTPVerify(ctx, OTPVerifyInput{Identifier: "cust@example.com", Code: "1234", Purpose: entity.OTPPurposeLogin})

	// Assert
	assertCode(t, err, goerror.CodeOTPExpired)
}

func TestOTPRequestResendReplacesCode(t *testing.T) {
	// Arrange
	fx := newFixture(t)
	fx.gen.codes = []string{"1111", "2222"}
	ctx := context.Background()

	// Act
	if err := fx.uc.OTPRequest(ctx, OTPRequestInput{Identifier: "cust@example.com", Purpose: entity.OTPPurposeLogin}); err != nil {
		t.Fatalf("first otp request failed: %v", err)
	}
	fx.clock.Advance(3 * time.Minute)
	if err := fx.uc.OTPRequest(ctx, OTPRequestInput{Identifier: "cust@example.com", Purpose: entity.OTPPurposeLogin}); err != nil {
		t.Fatalf("resend otp request failed: %v", err)
	}

	// Assert: old code is dead, new code works even past the original expiry.
	err := fx.uc.OTPVerify(ctx, OTPVerifyInput{Identifier: "cust@example.com", Code: "1111", Purpose: entity.OTPPurposeLogin})
	assertCode(t, err, goerror.CodeOTPMismatch)

	fx.clock.Advance(4 * time.Minute)
	if err := fx.uc.OTPVerify(ctx, OTPVerifyInput{Identifier: "cust@example.com", Code: "2222", Purpose: entity.OTPPurposeLogin}); err != nil {
		t.Fatalf("verify resent code failed: %v", err)
	}
}

func TestOTPRequestDeliveryFailureKeepsStoredCode(t *testing.T) {
	// Arrange
	fx := newFixture(t)
	fx.notifier.err = errors.New("smtp down")
	ctx := context.Background()

	// Act
	err := fx.uc.OTPRequest(ctx, OTPRequestInput{Identifier: "cust@example.com", Purpose: entity.OTPPurposeLogin})

	// Assert
	assertCode(t, err, goerror.CodeDeliveryFailed)

	fx.notifier.err = nil
	if err := fx.uc.OTPVerify(ctx, OTPVerifyInput{Identifier: "cust@example.com", Code: "1234", Purpose: entity.OTPPurposeLogin}); err != nil {
		t.Fatalf("verify after failed delivery failed: %v", err)
	}
}

func TestOTPPurposeIsolation(t *testing.T) {
	// Arrange
	fx := newFixture(t)
	ctx := context.Background()
	if err := fx.uc.OTPRequest(ctx, OTPRequestInput{Identifier: "cust@example.com", Purpose: entity.OTPPurposeRegistration}); err != nil {
		t.Fatalf("otp request failed: %v", err)
	}

	// Act: a registration code must not pass a login verify.
	err := fx.uc.OTPVerify(ctx, OTPVerifyInput{Identifier: "cust@example.com", Code: "1234", Purpose: entity.OTPPurposeLogin})

	// Assert
	assertCode(t, err, goerror.CodeOTPExpired)
}

func validRegister() RegisterInput {
	return RegisterInput{
		FullName: "Jane Roe",
		Email:    "jane@example.com",
		Mobile:   "+15550001111",
		Password: "s3cretPass!",
	}
}

func TestRegisterDuplicateIdentifier(t *testing.T) {
	// Arrange
	fx := newFixture(t)
	fx.repo.seed(entity.User{ID: 9, Email: "jane@example.com", Mobile: "+15550001111", Status: entity.UserStatusActive, Role: entity.RoleCustomer})

	// Act
	err := fx.uc.Register(context.Background(), validRegister())

	// Assert
	assertCode(t, err, goerror.CodeConflict)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	// Arrange
	fx := newFixture(t)
	in := validRegister()
	in.Role = entity.RoleAdmin

	// Act
	err := fx.uc.Register(context.Background(), in)

	// Assert
	assertCode(t, err, goerror.CodeForbidden)
}

func TestRegisterThenVerifyActivatesAccount(t *testing.T) {
	// Arrange
	fx := newFixture(t)
	ctx := context.Background()
	if err := fx.uc.Register(ctx, validRegister()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Act: registration OTP goes to the mobile number.
	out, err := fx.uc.RegisterVerify(ctx, RegisterVerifyInput{Identifier: "+15550001111", Code: "1234"})

	// Assert
	if err != nil {
		t.Fatalf("register verify failed: %v", err)
	}
	if out.SessionToken == "" || out.AccessToken == "" {
		t.Fatalf("expected tokens, got %+v", out)
	}
	if out.Role != entity.RoleCustomer {
		t.Fatalf("expected customer role, got %s", out.Role)
	}

	if len(fx.repo.created) != 1 {
		t.Fatalf("expected 1 created user, got %d", len(fx.repo.created))
	}
	created := fx.repo.created[0]
	if created.Status != entity.UserStatusActive {
		t.Fatalf("expected active status, got %s", created.Status)
	}
	if created.Password == "s3cretPass!" {
		t.Fatal("password stored in plaintext")
	}

	sess, err := fx.sessions.Validate(out.SessionToken)
	if err != nil {
		t.Fatalf("session token invalid: %v", err)
	}
	if sess.UserID != created.ID {
		t.Fatalf("session user mismatch: %d vs %d", sess.UserID, created.ID)
	}

	if err := fx.uc.goroutine.Wait(); err != nil {
		t.Fatalf("goroutine wait failed: %v", err)
	}
	if fx.mq.count() != 1 {
		t.Fatalf("expected 1 published event, got %d", fx.mq.count())
	}
}

func TestRegisterVerifyWithoutPendingProfile(t *testing.T) {
	// Arrange
	fx := newFixture(t)
	ctx := context.Background()
	if err := fx.uc.Register(ctx, validRegister()); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := fx.pendings.Evict(ctx, pendingKey("+15550001111")); err != nil {
		t.Fatalf("evict pending failed: %v", err)
	}

	// Act
	_, err := fx.uc.RegisterVerify(ctx, RegisterVerifyInput{Identifier: "+15550001111", Code: "1234"})

	// Assert
	assertCode(t, err, goerror.CodeSessionExpired)
}

func TestLoginUnknownIdentifier(t *testing.T) {
	// Arrange
	fx := newFixture(t)

	// Act
	err := fx.uc.Login(context.Background(), LoginInput{Identifier: "ghost@example.com"})

	// Assert
	assertCode(t, err, goerror.CodeNotFound)
	if len(fx.notifier.messages) != 0 {
		t.Fatalf("expected no delivery for unknown identifier, got %d", len(fx.notifier.messages))
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	// Arrange
	fx := newFixture(t)
	fx.repo.seed(entity.User{ID: 7, Email: "jane@example.com", Status: entity.UserStatusDisabled, Role: entity.RoleCustomer})

	// Act
	err := fx.uc.Login(context.Background(), LoginInput{Identifier: "jane@example.com"})

	// Assert
	assertCode(t, err, goerror.CodeNotFound)
}

func TestLoginVerifyIssuesTokens(t *testing.T) {
	// Arrange
	fx := newFixture(t)
	ctx := context.Background()
	fx.repo.seed(entity.User{ID: 7, FullName: "Jane Roe", Email: "jane@example.com", Status: entity.UserStatusActive, Role: entity.RoleServiceAdvisor})
	if err := fx.uc.Login(ctx, LoginInput{Identifier: "jane@example.com"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Act
	out, err := fx.uc.LoginVerify(ctx, LoginVerifyInput{Identifier: "jane@example.com", Code: "1234"})

	// Assert
	if err != nil {
		t.Fatalf("login verify failed: %v", err)
	}

	sess, err := fx.sessions.Validate(out.SessionToken)
	if err != nil {
		t.Fatalf("session token invalid: %v", err)
	}
	if sess.UserID != 7 || sess.Role != "serviceadvisor" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	claims, err := fx.uc.jwt.Verify(out.AccessToken)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims.UserID != 7 || claims.UserRole != "serviceadvisor" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginPasswordWrongPassword(t *testing.T) {
	// Arrange
	fx := newFixture(t)
	hashed, err := hash.NewBcrypt(4, "").Hash("correct-horse-1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	fx.repo.seed(entity.User{ID: 7, Email: "jane@example.com", Password: string(hashed), Status: entity.UserStatusActive, Role: entity.RoleCustomer})

	// Act
	_, err = fx.uc.LoginPassword(context.Background(), LoginPasswordInput{Identifier: "jane@example.com", Password: "wrong"})

	// Assert
	assertCode(t, err, goerror.CodeUnauthorized)
}

func TestLoginPasswordSuccess(t *testing.T) {
	// Arrange
	fx := newFixture(t)
	hashed, err := hash.NewBcrypt(4, "").Hash("correct-horse-1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	fx.repo.seed(entity.User{ID: 7, Email: "jane@example.com", Password: string(hashed), Status: entity.UserStatusActive, Role: entity.RoleCustomer})

	// Act
	out, err := fx.uc.LoginPassword(context.Background(), LoginPasswordInput{Identifier: "jane@example.com", Password: "correct-horse-1"})

	// Assert
	if err != nil {
		t.Fatalf("password login failed: %v", err)
	}
	if out.SessionToken == "" || out.AccessToken == "" {
		t.Fatalf("expected tokens, got %+v", out)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	// Arrange
	fx := newFixture(t)
	token, err := fx.sessions.Issue(7, "customer")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// Act
	if err := fx.uc.Logout(context.Background(), LogoutInput{SessionToken: token}); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	// Assert
	if _, err := fx.sessions.Validate(token); !errors.Is(err, session.ErrInvalidSession) {
		t.Fatalf("expected revoked session, got %v", err)
	}
}
