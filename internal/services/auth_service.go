package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/denizozkan/sensorhub/internal/apperr"
	"github.com/denizozkan/sensorhub/internal/config"
	"github.com/denizozkan/sensorhub/internal/dto"
	"github.com/denizozkan/sensorhub/internal/models"
	"github.com/denizozkan/sensorhub/internal/validate"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates a user after the ordered credential checks. The first
// failing check wins; no row is written unless every check passes.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.UserResponse, error) {
	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		slog.Info("registration rejected, email taken", "email", req.Email)
		return nil, apperr.Conflict("Account with this email already exists")
	}

	if !validate.IsValidEmail(req.Email) {
		return nil, apperr.Validation(apperr.CodeValidationError, "Invalid email")
	}

	if err := s.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		slog.Info("registration rejected, username taken", "username", req.Username)
		return nil, apperr.Conflict("Username already exists")
	}

	if msg := validate.CheckPassword(req.Password); msg != "" {
		return nil, apperr.Validation(apperr.CodeValidationError, msg)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := models.User{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Role:     models.RoleEngineer,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to create user: %w", err))
	}

	slog.Info("user registered", "user_id", user.ID)
	return mapUserToResponse(&user), nil
}

// Login verifies credentials and issues an access token with a fixed expiry.
// There is no refresh mechanism; expired tokens require a fresh login.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		slog.Info("login failed, unknown email", "email", req.Email)
		return nil, apperr.Unauthorized(apperr.CodeUnknownUser,
			fmt.Sprintf("User with email %s does not exist, please register", req.Email))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		slog.Info("login failed, bad password", "user_id", user.ID)
		return nil, apperr.Unauthorized(apperr.CodeInvalidCredentials, "Email or password is incorrect")
	}

	token, err := s.generateAccessToken(&user)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	slog.Info("user authenticated", "user_id", user.ID)
	return &dto.LoginResponse{AccessToken: token}, nil
}

func (s *AuthService) GetUser(id uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User does not exist")
		}
		return nil, apperr.Internal(err)
	}
	return mapUserToResponse(&user), nil
}

// DeleteUser removes a user and everything reachable through its ownership
// chain in one transaction. Alerts the user acknowledged on other chains are
// kept with the back-reference nulled.
func (s *AuthService) DeleteUser(id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("User does not exist")
			}
			return err
		}

		var sensorIDs []uuid.UUID
		if err := tx.Model(&models.Sensor{}).Where("user_id = ?", id).Pluck("id", &sensorIDs).Error; err != nil {
			return err
		}

		if len(sensorIDs) > 0 {
			if err := tx.Where("sensor_id IN ?", sensorIDs).Delete(&models.Alert{}).Error; err != nil {
				return err
			}
			if err := tx.Where("sensor_id IN ?", sensorIDs).Delete(&models.SensorData{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Sensor{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Device{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Alert{}).Where("ack_by = ?", id).Update("ack_by", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})

	var ae *apperr.Error
	if err != nil && !errors.As(err, &ae) {
		return apperr.Internal(err)
	}
	return err
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.TokenExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func mapUserToResponse(u *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
