package usecase

import (
	"context"
	"errors"
	"time"

	"kavun/internal/entity"
	"kavun/internal/repository"
	"kavun/pkg/jwt"
	"kavun/pkg/mail"
	"kavun/pkg/validation"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailAlreadyTaken   = errors.New("email already taken")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrExpiredRefreshToken = errors.New("refresh token has expired")
	ErrRevokedRefreshToken = errors.New("refresh token has been revoked")
)

type AuthUsecase interface {
	Register(ctx context.Context, req entity.RegisterRequest) (entity.AuthResponse, error)
	Login(ctx context.Context, req entity.LoginRequest) (entity.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (entity.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAllDevices(ctx context.Context, userId string) error

	// Identify verifies an access token and normalizes it to a canonical
	// user id, so downstream code never deals with identifier drift.
	Identify(ctx context.Context, token string) (*entity.TokenClaims, error)
}

// AuthConfig carries the register-side collaborator settings.
type AuthConfig struct {
	BannedWordsPath string
	VerifyBaseURL   string
}

type authUsecase struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtManager       *jwt.JWTManager
	mailer           mail.Mailer
	config           AuthConfig
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	jwtManager *jwt.JWTManager,
	mailer mail.Mailer,
	config AuthConfig,
) AuthUsecase {
	return &authUsecase{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtManager:       jwtManager,
		mailer:           mailer,
		config:           config,
	}
}

func (u *authUsecase) Register(ctx context.Context, req entity.RegisterRequest) (entity.AuthResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return entity.AuthResponse{}, invalidInput("email, şifre ve ad soyad zorunludur")
	}
	if len(req.Password) < 6 {
		return entity.AuthResponse{}, invalidInput("şifre en az 6 karakter olmalıdır")
	}

	// Loaded per call: the list is maintained externally and must not be
	// pinned in memory for the process lifetime.
	bannedWords := validation.LoadBannedWords(u.config.BannedWordsPath)
	if ok, reason := validation.IsNameValid(req.Name, bannedWords); !ok {
		return entity.AuthResponse{}, invalidInput(reason)
	}

	emailExists, err := u.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return entity.AuthResponse{}, err
	}
	if emailExists {
		return entity.AuthResponse{}, ErrEmailAlreadyTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return entity.AuthResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = "student"
	}

	user := entity.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashedPassword),
		Role:       role,
		University: req.University,
		Verified:   false,
		IsOnline:   false,
	}

	userId, err := u.userRepo.Create(ctx, user)
	if err != nil {
		return entity.AuthResponse{}, err
	}

	user.Id = userId

	accessToken, err := u.jwtManager.GenerateAccessToken(user)
	if err != nil {
		return entity.AuthResponse{}, err
	}

	refreshTokenString, err := u.jwtManager.GenerateRefreshToken()
	if err != nil {
		return entity.AuthResponse{}, err
	}

	refreshToken := entity.RefreshToken{
		UserId:    userId,
		Token:     refreshTokenString,
		ExpiresAt: u.jwtManager.GetRefreshTokenExpiration(),
	}

	err = u.refreshTokenRepo.Create(ctx, refreshToken)
	if err != nil {
		return entity.AuthResponse{}, err
	}

	// Mail delivery failure is non-fatal: the account exists either way
	// and verification is deferred.
	verifyURL := u.config.VerifyBaseURL + "/dogrula?email=" + user.Email
	if err := u.mailer.SendVerification(ctx, user.Email, user.Name, verifyURL); err != nil {
		logrus.WithError(err).WithField("email", user.Email).Warn("auth: verification mail failed")
	}

	user.Password = ""

	return entity.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         user,
	}, nil
}

func (u *authUsecase) Login(ctx context.Context, req entity.LoginRequest) (entity.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return entity.AuthResponse{}, ErrInvalidCredentials
		}
		return entity.AuthResponse{}, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password))
	if err != nil {
		return entity.AuthResponse{}, ErrInvalidCredentials
	}

	accessToken, err := u.jwtManager.GenerateAccessToken(user)
	if err != nil {
		return entity.AuthResponse{}, err
	}

	refreshTokenString, err := u.jwtManager.GenerateRefreshToken()
	if err != nil {
		return entity.AuthResponse{}, err
	}

	refreshToken := entity.RefreshToken{
		UserId:    user.Id,
		Token:     refreshTokenString,
		ExpiresAt: u.jwtManager.GetRefreshTokenExpiration(),
	}

	err = u.refreshTokenRepo.Create(ctx, refreshToken)
	if err != nil {
		return entity.AuthResponse{}, err
	}

	user.Password = ""

	return entity.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         user,
	}, nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, refreshTokenString string) (entity.AuthResponse, error) {
	refreshToken, err := u.refreshTokenRepo.GetByToken(ctx, refreshTokenString)
	if err != nil {
		return entity.AuthResponse{}, ErrInvalidRefreshToken
	}

	if refreshToken.IsRevoked {
		return entity.AuthResponse{}, ErrRevokedRefreshToken
	}

	if time.Now().After(refreshToken.ExpiresAt) {
		return entity.AuthResponse{}, ErrExpiredRefreshToken
	}

	user, err := u.userRepo.Get(ctx, refreshToken.UserId)
	if err != nil {
		return entity.AuthResponse{}, err
	}

	accessToken, err := u.jwtManager.GenerateAccessToken(user)
	if err != nil {
		return entity.AuthResponse{}, err
	}

	// Token rotation: the presented refresh token is revoked and replaced.
	newRefreshTokenString, err := u.jwtManager.GenerateRefreshToken()
	if err != nil {
		return entity.AuthResponse{}, err
	}

	err = u.refreshTokenRepo.Revoke(ctx, refreshTokenString)
	if err != nil {
		return entity.AuthResponse{}, err
	}

	newRefreshToken := entity.RefreshToken{
		UserId:    user.Id,
		Token:     newRefreshTokenString,
		ExpiresAt: u.jwtManager.GetRefreshTokenExpiration(),
	}

	err = u.refreshTokenRepo.Create(ctx, newRefreshToken)
	if err != nil {
		return entity.AuthResponse{}, err
	}

	user.Password = ""

	return entity.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshTokenString,
		User:         user,
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	return u.refreshTokenRepo.Revoke(ctx, refreshToken)
}

func (u *authUsecase) LogoutAllDevices(ctx context.Context, userId string) error {
	return u.refreshTokenRepo.RevokeAllByUserId(ctx, userId)
}

func (u *authUsecase) Identify(ctx context.Context, token string) (*entity.TokenClaims, error) {
	claims, err := u.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	if claims.UserId != "" {
		user, err := u.userRepo.Get(ctx, claims.UserId)
		if err == nil {
			claims.UserId = user.Id
			return claims, nil
		}
		if err != repository.ErrUserNotFound {
			return nil, err
		}
	}

	// Historical tokens may carry an id that no longer resolves; fall back
	// to the email before rejecting.
	if claims.Email != "" {
		user, err := u.userRepo.GetByEmail(ctx, claims.Email)
		if err == nil {
			claims.UserId = user.Id
			return claims, nil
		}
		if err != repository.ErrUserNotFound {
			return nil, err
		}
	}

	return nil, ErrUnauthorized
}
