// Package schemas contains the request and response shapes of the server
package schemas

// Res is the standard response that is sent to the client
type Res struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginRes is the response that is sent to the client on a successfull login
type LoginRes struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	ID      string `json:"id"`
}
