package model

// LoginInput carries the credentials submitted to the remote API's login
// endpoint. Username may be an email address; the server accepts either.
type LoginInput struct {
	Username string
	Password string
}

// RegisterInput carries the fields submitted to the registration endpoint.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthPayload is the remote API's response to a successful login.
type AuthPayload struct {
	AccessToken string
	TokenType   string
}
