package transport

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse keeps the login contract the back office expects: the token
// in the body as well as in the cookie.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
