// internal/app/features/login/types.go
package login

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userBody struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    userBody `json:"user"`
}
