package auth

import (
	"github.com/albanyauto/vsm/internal/auth/inbound"
	"github.com/albanyauto/vsm/internal/auth/outbound/db"
	"github.com/albanyauto/vsm/internal/auth/outbound/mq"
	"github.com/albanyauto/vsm/internal/auth/outbound/notify"
	"github.com/albanyauto/vsm/internal/auth/usecase"
	"github.com/albanyauto/vsm/internal/pkg/clock"
	"github.com/albanyauto/vsm/internal/pkg/config"
	"github.com/albanyauto/vsm/internal/pkg/goroutine"
	"github.com/albanyauto/vsm/internal/pkg/hash"
	"github.com/albanyauto/vsm/internal/pkg/instrument"
	"github.com/albanyauto/vsm/internal/pkg/jwt"
	"github.com/albanyauto/vsm/internal/pkg/mail"
	"github.com/albanyauto/vsm/internal/pkg/messaging"
	"github.com/albanyauto/vsm/internal/pkg/otp"
	"github.com/albanyauto/vsm/internal/pkg/otpcache"
	"github.com/albanyauto/vsm/internal/pkg/router"
	"github.com/albanyauto/vsm/internal/pkg/session"
	"github.com/albanyauto/vsm/internal/pkg/uid"
	"github.com/albanyauto/vsm/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	CacheConn  *redis.Client              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	sms, err := notify.NewSMS(notify.SMSConfig{
		URL:      dep.Config.GetString("modules.auth.sms.url"),
		APIKey:   dep.Config.GetString("modules.auth.sms.api_key"),
		SenderID: dep.Config.GetString("modules.auth.sms.sender_id"),
	})
	if err != nil {
		return err
	}

	email := notify.NewEmail(dep.Mail, notify.EmailConfig{
		Subject: dep.Config.GetString("modules.auth.email.subject"),
		Retries: uint64(dep.Config.GetInt("modules.auth.email.retries")),
		Backoff: dep.Config.GetSecond("modules.auth.email.backoff_seconds"),
	})

	otpStore, pendingStore := buildStores(dep)
	sessions := session.NewRegistry(dep.Config.GetMinute("modules.auth.session_ttl_minutes"), dep.Clock)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        repoDB,
		RepoMessaging: repoMsg,
		Notifier:      notify.NewNotifier(email, sms, dep.Instrument),
		OTPStore:      otpStore,
		PendingStore:  pendingStore,
		OTPGen:        otp.NewNumeric(),
		Sessions:      sessions,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Bcrypt:        dep.Bcrypt,
		UID:           dep.UID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

// buildStores picks the OTP and pending-registration stores from config.
// The redis driver survives restarts; memory is the single-instance default.
func buildStores(dep Dependency) (otpcache.Store, otpcache.Store) {
	if dep.Config.GetString("modules.auth.otp_store_driver") == "redis" {
		return otpcache.NewRedis(dep.CacheConn, "otp"), otpcache.NewRedis(dep.CacheConn, "pending")
	}
	return otpcache.NewMemory(dep.Clock), otpcache.NewMemory(dep.Clock)
}
