package model

import (
	"errors"
	"fmt"
	"time"

	"safai/platform"

	"gorm.io/gorm"
)

// User 表示用户模型. The id is an opaque random string rather than an
// auto-increment so it can double as the session subject.
// Invariant: a verified user carries no token and no expiry; an unverified
// user carries both.
type User struct {
	ID                string     `gorm:"type:varchar(80);primaryKey" json:"id"`
	Username          string     `gorm:"type:varchar(80);not null;unique" json:"username"`
	Email             string     `gorm:"type:varchar(120);not null;unique" json:"email"`
	PasswordHash      string     `gorm:"type:varchar(200);not null" json:"-"`
	IsVerified        bool       `gorm:"default:false" json:"is_verified"`
	VerificationToken *string    `gorm:"type:varchar(100)" json:"-"`
	TokenExpiry       *time.Time `json:"-"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func CreateUser(user *User) error {
	db := platform.DB
	if err := db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func GetUserByID(id string) (*User, error) {
	var user User
	db := platform.DB
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &user, nil
}

func GetUserByEmail(email string) (*User, error) {
	var user User
	db := platform.DB
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &user, nil
}

func GetUserByVerificationToken(token string) (*User, error) {
	var user User
	db := platform.DB
	if err := db.Where("verification_token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &user, nil
}

func EmailExists(email string) bool {
	var count int64
	db := platform.DB
	if err := db.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		platform.Logger.Warnf("Failed to check email existence: %v", err)
		return false
	}
	return count > 0
}

func UsernameExists(username string) bool {
	var count int64
	db := platform.DB
	if err := db.Model(&User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		platform.Logger.Warnf("Failed to check username existence: %v", err)
		return false
	}
	return count > 0
}

// MarkUserVerified sets the verified flag and clears the single-use token
// and its expiry in one update.
func MarkUserVerified(id string) error {
	db := platform.DB
	updates := map[string]interface{}{
		"is_verified":        true,
		"verification_token": nil,
		"token_expiry":       nil,
	}
	if err := db.Model(&User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	return nil
}

// DeleteStaleUnverifiedUsers removes unverified accounts whose verification
// expiry lapsed before the cutoff, freeing their username and email.
func DeleteStaleUnverifiedUsers(cutoff time.Time) (int64, error) {
	db := platform.DB
	result := db.Where("is_verified = ? AND token_expiry IS NOT NULL AND token_expiry < ?", false, cutoff).
		Delete(&User{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete stale users: %w", result.Error)
	}
	return result.RowsAffected, nil
}
