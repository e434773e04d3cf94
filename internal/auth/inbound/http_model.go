package inbound

type OTPRequestRequest struct {
	Identifier string `json:"identifier"`
	Purpose    string `json:"purpose"`
}

type OTPRequestResponse struct{}

func (OTPRequestResponse) Message() string {
	return "Verification code sent."
}

type OTPVerifyRequest struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
	Purpose    string `json:"purpose"`
}

type OTPVerifyResponse struct{}

func (OTPVerifyResponse) Message() string {
	return "Verification code accepted."
}

type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RegisterResponse struct{}

func (RegisterResponse) Message() string {
	return "Registration started. Please verify with the code we sent you."
}

type RegisterVerifyRequest struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
}

type AuthResponse struct {
	UserID       int64  `json:"user_id,string"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	Role         string `json:"role"`
	SessionToken string `json:"session_token"`
	AccessToken  string `json:"access_token"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
}

type LoginResponse struct{}

func (LoginResponse) Message() string {
	return "Login code sent."
}

type LoginVerifyRequest struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
}

type LoginPasswordRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type LogoutRequest struct {
	SessionToken string `json:"session_token"`
}

type LogoutResponse struct{}

func (LogoutResponse) Message() string {
	return "Logged out."
}
