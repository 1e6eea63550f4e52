// Package services contains the services that operate on the relational database
package services

import (
	"github.com/google/uuid"
	"github.com/notestack/auth/connect"
	"github.com/notestack/auth/models"
	"gorm.io/gorm"
)

// User contains all the user related services
type User struct {
	Conn *connect.Connector
}

// Exists is a function that is used to find out wether an account already exists
// for the given email address
func (u *User) Exists(email string) (bool, error) {
	var user models.User
	err := u.Conn.DB.Select("id").Where(&models.User{
		Email: email,
	}).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// GetUserWithEmail is a function that is used to get the user with the given email address
func (u *User) GetUserWithEmail(email string) (*models.User, error) {
	var user models.User
	err := u.Conn.DB.Where(&models.User{
		Email: email,
	}).First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserWithID is a function that is used to get the user with the given ID
func (u *User) GetUserWithID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := u.Conn.DB.Where(&models.User{
		ID: &id,
	}).First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Create is a function that is used to create a new user in the relational database
func (u *User) Create(user models.User) (
	newUser models.User,
	err error,
) {
	newUser = user
	err = u.Conn.DB.Create(&newUser).Error
	if err != nil {
		return models.User{}, err
	}

	return newUser, nil
}
