package inbound

import (
	"context"

	"github.com/albanyauto/vsm/internal/auth/usecase"
	"github.com/albanyauto/vsm/internal/pkg/router"
)

type uc interface {
	OTPRequest(ctx context.Context, in usecase.OTPRequestInput) error
	OTPVerify(ctx context.Context, in usecase.OTPVerifyInput) error

	Register(ctx context.Context, in usecase.RegisterInput) error
	RegisterVerify(ctx context.Context, in usecase.RegisterVerifyInput) (*usecase.RegisterVerifyOutput, error)

	Login(ctx context.Context, in usecase.LoginInput) error
	LoginVerify(ctx context.Context, in usecase.LoginVerifyInput) (*usecase.LoginVerifyOutput, error)
	LoginPassword(ctx context.Context, in usecase.LoginPasswordInput) (*usecase.LoginVerifyOutput, error)

	Logout(ctx context.Context, in usecase.LogoutInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// OTP lifecycle
	r.POST("/api/v1/auth/otp/request", end.OTPRequest)
	r.POST("/api/v1/auth/otp/verify", end.OTPVerify)

	// Registration
	r.POST("/api/v1/auth/register", end.Register)
	r.POST("/api/v1/auth/register/verify", end.RegisterVerify)

	// Login
	r.POST("/api/v1/auth/login", end.Login)
	r.POST("/api/v1/auth/login/verify", end.LoginVerify)
	r.POST("/api/v1/auth/login/password", end.LoginPassword)

	r.POST("/api/v1/auth/logout", end.Logout) // need authenticated
}
