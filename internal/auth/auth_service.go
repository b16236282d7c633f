package auth

import (
	"context"
	"os"
	"time"

	autherrors "github.com/Yaseenhassan/college-leave-app/internal/auth/errors"
	"github.com/Yaseenhassan/college-leave-app/internal/staff"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = time.Minute * 15
	refreshTokenTTL = time.Hour * 24 * 7
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, resp AuthResponse, err error)

	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)

	GetMe(ctx context.Context, staffID string) (*AuthResponse, error)
}

type service struct {
	staffRepo staff.Repository
	logger    *zap.Logger
}

func NewService(staffRepo staff.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{staffRepo: staffRepo, logger: l}
}

func (s *service) Login(ctx context.Context, username, password string) (string, string, AuthResponse, error) {
	member, err := s.staffRepo.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Warn("login failed: unknown username", zap.String("username", username))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(password)); err != nil {
		s.logger.Warn("login failed: bad password", zap.String("username", username))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := s.generateToken(member.ID.String(), member.Role, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(member.ID.String(), member.Role, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.String("staff_id", member.ID.String()),
		zap.String("role", member.Role),
	)

	return accessToken, refreshToken, mapToAuthResponse(member), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	staffIDStr, ok := claims["staff_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	staffID, err := uuid.Parse(staffIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidStaffID
	}

	member, err := s.staffRepo.FindByID(ctx, staffID.String())
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrStaffNotFound
	}

	newAccessToken, err := s.generateToken(member.ID.String(), member.Role, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	newRefreshToken, err := s.generateToken(member.ID.String(), member.Role, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, mapToAuthResponse(member), nil
}

func (s *service) GetMe(ctx context.Context, staffID string) (*AuthResponse, error) {
	id, err := uuid.Parse(staffID)
	if err != nil {
		return nil, autherrors.ErrInvalidStaffID
	}

	member, err := s.staffRepo.FindByID(ctx, id.String())
	if err != nil {
		return nil, autherrors.ErrStaffNotFound
	}

	resp := mapToAuthResponse(member)
	return &resp, nil
}

func (s *service) generateToken(staffID, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"staff_id": staffID,
		"role":     role,
		"exp":      time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(member *staff.Staff) AuthResponse {
	resp := AuthResponse{
		ID:          member.ID.String(),
		Username:    member.Username,
		FullName:    member.FullName(),
		Email:       member.Email,
		Designation: member.Designation,
		UserType:    member.UserType,
		Role:        member.Role,
	}
	if member.DepartmentID != nil {
		deptID := member.DepartmentID.String()
		resp.DepartmentID = &deptID
	}
	return resp
}
