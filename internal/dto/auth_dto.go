package dto

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Nickname string `json:"nickname" validate:"max=255"`
	FullName string `json:"full_name" validate:"max=255"`
}

// RegisterResponse confirms the created account.
type RegisterResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the signed bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}
