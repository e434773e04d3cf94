package inbound

import (
	"github.com/albanyauto/vsm/internal/auth/entity"
	"github.com/albanyauto/vsm/internal/auth/usecase"
	"github.com/albanyauto/vsm/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) OTPRequest(r *router.Request) (any, error) {
	var req OTPRequestRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.OTPRequest(r.Context(), usecase.OTPRequestInput{
		Identifier: req.Identifier,
		Purpose:    entity.OTPPurposeFromString(req.Purpose),
	}); err != nil {
		return nil, err
	}

	return OTPRequestResponse{}, nil
}

func (h *HTTPEndpoint) OTPVerify(r *router.Request) (any, error) {
	var req OTPVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.OTPVerify(r.Context(), usecase.OTPVerifyInput{
		Identifier: req.Identifier,
		Code:       req.Code,
		Purpose:    entity.OTPPurposeFromString(req.Purpose),
	}); err != nil {
		return nil, err
	}

	return OTPVerifyResponse{}, nil
}

func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Register(r.Context(), usecase.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Password: req.Password,
		Role:     entity.RoleFromString(req.Role),
	}); err != nil {
		return nil, err
	}

	return RegisterResponse{}, nil
}

func (h *HTTPEndpoint) RegisterVerify(r *router.Request) (any, error) {
	var req RegisterVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.RegisterVerify(r.Context(), usecase.RegisterVerifyInput{
		Identifier: req.Identifier,
		Code:       req.Code,
	})
	if err != nil {
		return nil, err
	}

	return AuthResponse{
		UserID:       out.UserID,
		FullName:     out.FullName,
		Email:        out.Email,
		Mobile:       out.Mobile,
		Role:         out.Role.String(),
		SessionToken: out.SessionToken,
		AccessToken:  out.AccessToken,
	}, nil
}

func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Login(r.Context(), usecase.LoginInput{Identifier: req.Identifier}); err != nil {
		return nil, err
	}

	return LoginResponse{}, nil
}

func (h *HTTPEndpoint) LoginVerify(r *router.Request) (any, error) {
	var req LoginVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.LoginVerify(r.Context(), usecase.LoginVerifyInput{
		Identifier: req.Identifier,
		Code:       req.Code,
	})
	if err != nil {
		return nil, err
	}

	return AuthResponse{
		UserID:       out.UserID,
		FullName:     out.FullName,
		Email:        out.Email,
		Mobile:       out.Mobile,
		Role:         out.Role.String(),
		SessionToken: out.SessionToken,
		AccessToken:  out.AccessToken,
	}, nil
}

func (h *HTTPEndpoint) LoginPassword(r *router.Request) (any, error) {
	var req LoginPasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.LoginPassword(r.Context(), usecase.LoginPasswordInput{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		return nil, err
	}

	return AuthResponse{
		UserID:       out.UserID,
		FullName:     out.FullName,
		Email:        out.Email,
		Mobile:       out.Mobile,
		Role:         out.Role.String(),
		SessionToken: out.SessionToken,
		AccessToken:  out.AccessToken,
	}, nil
}

func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	var req LogoutRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Logout(r.Context(), usecase.LogoutInput{SessionToken: req.SessionToken}); err != nil {
		return nil, err
	}

	return LogoutResponse{}, nil
}
