package service

import (
	"errors"
	"fmt"
	"time"

	"safai/lib"
	"safai/model"
	"safai/platform"

	"golang.org/x/crypto/bcrypt"
)

// TokenValidity is how long a verification link stays usable.
const TokenValidity = 24 * time.Hour

type UserService struct {
	config platform.Config
	mail   *MailService
}

func NewUserService(config platform.Config) *UserService {
	return &UserService{config: config, mail: NewMailService(config)}
}

type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates the account and, when mail is configured, stores a
// verification token and attempts delivery. Without mail configuration the
// account is auto-verified; that fallback is meant for development and is
// logged loudly because it skips email ownership proof entirely.
// The returned notice describes the outcome for the user; a failed mail send
// is reported there, never as an error.
func (service *UserService) Register(user *User) (string, string, error) {
	if model.EmailExists(user.Email) {
		return "", "", fmt.Errorf("email already registered: %w", lib.ErrConflict)
	}
	if model.UsernameExists(user.Username) {
		return "", "", fmt.Errorf("username already taken: %w", lib.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", errors.New("internal server error")
	}

	newUser := &model.User{
		ID:           lib.RandomToken(16),
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: string(hashedPassword),
	}

	verificationToken := ""
	if service.config.MailConfigured() {
		verificationToken = lib.RandomToken(32)
		expiry := time.Now().Add(TokenValidity)
		newUser.VerificationToken = &verificationToken
		newUser.TokenExpiry = &expiry
	} else {
		newUser.IsVerified = true
		logger.Warnf("SMTP is not configured: auto-verifying account for %s (development fallback)", user.Email)
	}

	if err := model.CreateUser(newUser); err != nil {
		return "", "", errors.New("internal server error")
	}

	if verificationToken == "" {
		return newUser.ID, "Account created! You can now login.", nil
	}
	if err := service.mail.SendVerification(user.Email, verificationToken); err != nil {
		logger.Warnf("verification mail to %s failed: %s", user.Email, err)
		return newUser.ID, "Account created but email failed. Contact support.", nil
	}
	return newUser.ID, "Account created! Please check your email to verify.", nil
}

// Authenticate checks the password first and the verification flag second,
// mirroring the login flow's observable order.
func (service *UserService) Authenticate(email string, password string) (*model.User, error) {
	user, err := model.GetUserByEmail(email)
	if err != nil {
		return nil, lib.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, lib.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, lib.ErrNotVerified
	}
	return user, nil
}

// Verify consumes a verification token. Tokens are single use: success
// clears the token, so a retry fails as invalid rather than expired.
func (service *UserService) Verify(token string) error {
	user, err := model.GetUserByVerificationToken(token)
	if err != nil {
		return lib.ErrInvalidToken
	}
	if user.TokenExpiry != nil && user.TokenExpiry.Before(time.Now()) {
		return lib.ErrTokenExpired
	}
	if err := model.MarkUserVerified(user.ID); err != nil {
		return errors.New("internal server error")
	}
	return nil
}
