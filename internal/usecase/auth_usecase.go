package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Jijnash2636/medaiton/internal/delivery/dto"
	"github.com/Jijnash2636/medaiton/internal/delivery/http/middleware"
	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	"github.com/Jijnash2636/medaiton/internal/domain/repository"
	"github.com/Jijnash2636/medaiton/internal/memstore"
	"github.com/Jijnash2636/medaiton/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid identifier or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

type AuthUsecase interface {
	StaffLogin(ctx context.Context, req *dto.StaffLoginRequest) (*dto.TokenResponse, error)
	PatientLogin(ctx context.Context, req *dto.PatientLoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessTokenID, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	CurrentSession(ctx context.Context) (*dto.SessionResponse, error)
}

type authUsecase struct {
	store       *memstore.Store
	log         *logrus.Logger
	staffRepo   repository.StaffRepository
	patientRepo repository.PatientRepository
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthUsecase(
	store *memstore.Store,
	log *logrus.Logger,
	staffRepo repository.StaffRepository,
	patientRepo repository.PatientRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		store:       store,
		log:         log,
		staffRepo:   staffRepo,
		patientRepo: patientRepo,
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

func (u *authUsecase) StaffLogin(ctx context.Context, req *dto.StaffLoginRequest) (*dto.TokenResponse, error) {
	var staff *entity.StaffUser
	err := u.store.View(func(tx *memstore.Tx) error {
		var err error
		staff, err = u.staffRepo.FindByID(tx, req.StaffID)
		return err
	})
	if err != nil {
		u.log.Warnf("Failed to find staff user %s: %+v", req.StaffID, err)
		return nil, err
	}
	if staff == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, staff.ID, staff.Name, staff.Role)
}

func (u *authUsecase) PatientLogin(ctx context.Context, req *dto.PatientLoginRequest) (*dto.TokenResponse, error) {
	var patient *entity.Patient
	err := u.store.View(func(tx *memstore.Tx) error {
		var err error
		if id, ok := entity.ParsePID(req.Identifier); ok {
			patient, err = u.patientRepo.FindByID(tx, id)
		} else {
			patient, err = u.patientRepo.FindByMobile(tx, req.Identifier)
		}
		return err
	})
	if err != nil {
		u.log.Warnf("Failed to look up patient %q: %+v", req.Identifier, err)
		return nil, err
	}
	if patient == nil || patient.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(patient.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, patient.PID(), patient.Name, entity.RolePatient)
}

// issueTokens generates an access/refresh pair and registers both on
// the Redis allow-list so they can be revoked.
func (u *authUsecase) issueTokens(ctx context.Context, subject, name string, role entity.Role) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(subject, name, role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(subject, name, role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", subject, accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", subject, refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}
	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, accessTokenID, refreshToken string) error {
	patterns := []string{fmt.Sprintf("access_token:*:%s", accessTokenID)}
	// The refresh token is optional; a malformed one just isn't revoked.
	if refreshToken != "" {
		if claims, err := u.jwtService.ValidateToken(refreshToken); err == nil && claims.TokenType == jwt.RefreshToken {
			patterns = append(patterns, fmt.Sprintf("refresh_token:%s:%s", claims.Subject, claims.TokenID))
		}
	}

	for _, pattern := range patterns {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to list token keys: %+v", err)
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete tokens: %+v", err)
				return err
			}
		}
	}
	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%s:%s", claims.Subject, claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// One-shot refresh tokens: rotate on every use.
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, claims.Subject, claims.Name, claims.Role)
}

func (u *authUsecase) CurrentSession(ctx context.Context) (*dto.SessionResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, ErrInvalidToken
	}
	return &dto.SessionResponse{
		Subject: actor.ID,
		Name:    actor.Name,
		Role:    string(actor.Role),
	}, nil
}
