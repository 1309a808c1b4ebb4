package services

import (
	"database/sql"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	intconfig "transport/internal/config"
	"transport/internal/domain"
	"transport/internal/domain/models"
	"transport/internal/repositories"
	"transport/internal/utils"
)

type AuthService struct {
	UserRepo    repositories.UserRepo
	AccountRepo repositories.AccountRepo
	DB          *sql.DB
	RequestID   string
}

func (s AuthService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AuthService) users() repositories.UserRepo {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepo{DB: s.db()}
}

func (s AuthService) accounts() repositories.AccountRepo {
	if s.AccountRepo.DB != nil {
		return s.AccountRepo
	}
	return repositories.AccountRepo{DB: s.db()}
}

type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Phone    string
	Password string
}

// Register creates a Passenger user with an Active account.
func (s AuthService) Register(in RegisterInput) (models.User, error) {
	var out models.User
	if strings.TrimSpace(in.Name) == "" {
		return out, domain.ValidationError{Field: "name", Msg: "required"}
	}
	if strings.TrimSpace(in.Username) == "" {
		return out, domain.ValidationError{Field: "username", Msg: "required"}
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return out, domain.ValidationError{Field: "email", Msg: "invalid address", Err: err}
	}
	if len(in.Password) < 8 {
		return out, domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}

	exists, err := s.users().ExistsByEmailOrUsername(in.Email, in.Username)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	if exists {
		return out, domain.ConflictError{Resource: "user", Msg: "email or username already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}

	id, err := s.users().Create(models.User{
		Name:     strings.TrimSpace(in.Name),
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		Role:     models.RolePassenger,
	}, string(hash))
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	if err := s.accounts().CreateFor(id); err != nil {
		return out, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%d", id))
	return s.users().GetByID(id)
}

// Login checks credentials and account status, then issues a 24h JWT with
// user id and role claims. Credential and not-found failures are collapsed
// into the same message.
func (s AuthService) Login(login, password string) (string, models.User, error) {
	user, hash, accountStatus, err := s.users().GetCredentials(strings.TrimSpace(login))
	if err != nil {
		if domain.IsNotFound(err) {
			return "", models.User{}, domain.ValidationError{Field: "credentials", Msg: "invalid email/username or password"}
		}
		return "", models.User{}, domain.InternalError{Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", models.User{}, domain.ValidationError{Field: "credentials", Msg: "invalid email/username or password"}
	}
	if accountStatus != models.AccountActive {
		return "", models.User{}, domain.ForbiddenError{Msg: "account is " + strings.ToLower(accountStatus)}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString(intconfig.JWTSecret())
	if err != nil {
		return "", models.User{}, domain.InternalError{Err: err}
	}

	_ = s.accounts().TouchLastLogin(user.ID)
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d role=%s", user.ID, user.Role))
	return signed, user, nil
}
