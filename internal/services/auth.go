package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/brightgive/donorcrm-backend/internal/data/repos"
	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
	"github.com/brightgive/donorcrm-backend/internal/requestdata"
)

type AuthService interface {
	Register(ctx context.Context, user *types.User) (*types.User, error)
	Login(ctx context.Context, email, password string) (string, *types.User, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) Register(ctx context.Context, user *types.User) (*types.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" || user.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", crmerr.ErrInvalidArgument)
	}
	if user.Role == "" {
		user.Role = requestdata.RoleUser
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email already registered: %w", crmerr.ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user.Password = string(hashed)
	user.ID = uuid.New()

	if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, *types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", nil, fmt.Errorf("fetching user: %w", err)
	}
	if len(users) == 0 {
		return "", nil, fmt.Errorf("invalid email or password: %w", crmerr.ErrUnauthorized)
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid email or password: %w", crmerr.ErrUnauthorized)
	}

	claims := jwt.MapClaims{
		"uid":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(as.accessTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	if user.LocationID != nil {
		claims["loc"] = user.LocationID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", nil, fmt.Errorf("signing token: %w", err)
	}
	return signed, user, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", crmerr.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims: %w", crmerr.ErrUnauthorized)
	}

	uidStr, _ := claims["uid"].(string)
	userID, err := uuid.Parse(uidStr)
	if err != nil {
		return nil, fmt.Errorf("invalid uid claim: %w", crmerr.ErrUnauthorized)
	}

	rd := &requestdata.RequestData{UserID: userID}
	rd.UserEmail, _ = claims["email"].(string)
	rd.Role, _ = claims["role"].(string)
	if locStr, ok := claims["loc"].(string); ok {
		if loc, err := uuid.Parse(locStr); err == nil {
			rd.LocationID = &loc
		}
	}
	return requestdata.WithRequestData(ctx, rd), nil
}
