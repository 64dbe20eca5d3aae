package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	Success bool     `json:"success"`
	User    AuthUser `json:"user"`
	Token   string   `json:"token"`
}

type AuthFailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CheckResponse struct {
	Authenticated bool      `json:"authenticated"`
	User          *AuthUser `json:"user,omitempty"`
	Message       string    `json:"message,omitempty"`
}

type LogoutResponse struct {
	Success bool `json:"success"`
}
