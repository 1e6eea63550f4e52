package schemas

import (
	"github.com/google/uuid"
	"github.com/notestack/auth/models"
)

// User is schema that contians user freindly user details
type User struct {
	ID     *uuid.UUID `json:"id"`
	Name   string     `json:"name"`
	RollNo string     `json:"rollNo"`
	Email  string     `json:"email"`
}

// FilterUser is a function that is used to filter the user model to a user freindly format
func FilterUser(user models.User) User {
	return User{
		ID:     user.ID,
		Name:   user.Name,
		RollNo: user.RollNo,
		Email:  user.Email,
	}
}
