package model

import "time"

// User is a registered account. Rows are created by signup and never modified afterwards.
type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	FirstName     string    `json:"first_name" gorm:"size:100;not null;default:''"`
	LastName      string    `json:"last_name" gorm:"size:100;not null;default:''"`
	Username      string    `json:"username" gorm:"size:100;uniqueIndex;not null"`
	PasswordHash  string    `json:"-" gorm:"size:255;not null"`
	AgreedToTerms bool      `json:"agreed_to_terms" gorm:"not null;default:false"`
	CreatedAt     time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// SigninResponse is the safe projection of User returned after login
type SigninResponse struct {
	Message   string `json:"message"`
	UserID    uint   `json:"userId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ToSigninResponse converts User to the signin payload
func (u *User) ToSigninResponse() SigninResponse {
	return SigninResponse{
		Message:   "Login successful",
		UserID:    u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
