package dto

type CheckEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ExistsUserResponse struct {
	Exists bool `json:"exists"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Avatar   string `json:"avatar"`
	GoogleID string `json:"-"`
}

type UpdateUserRequest struct {
	Name   string `json:"name" validate:"required"`
	Avatar string `json:"avatar"`
}
