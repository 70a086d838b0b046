package types

import "time"

// User is a registered user.
type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// EmailRecord is a bare email address, e.g. a newsletter signup.
type EmailRecord struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest is the body of POST /user/users/. Description must be present
// but may be empty.
type CreateUserRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Description *string `json:"description" binding:"required"`
}

// CreateEmailRequest is the body of POST /user/emails/.
type CreateEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CreateUserResponse mirrors {"message": ..., "user": {...}}.
type CreateUserResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

// CreateEmailResponse mirrors {"message": ..., "email": {...}}.
type CreateEmailResponse struct {
	Message string       `json:"message"`
	Email   *EmailRecord `json:"email"`
}
