package service

import (
	"context"
	"strings"
	"time"

	"github.com/officer-registry/internal/audit"
	"github.com/officer-registry/internal/config"
	"github.com/officer-registry/internal/constants"
	"github.com/officer-registry/internal/logger"
	"github.com/officer-registry/internal/models"
	"github.com/officer-registry/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenHours = 4

// AuthService 认证服务：登录、注册、修改密码与 JWT
type AuthService struct {
	cfg       *config.Config
	userRepo  repository.UserRepository
	mutations *mutationCoordinator
	now       func() time.Time
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, recorder audit.Recorder) *AuthService {
	return &AuthService{
		cfg:       cfg,
		userRepo:  userRepo,
		mutations: newMutationCoordinator(recorder, nil),
		now:       time.Now,
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword 校验密码是否符合策略
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// JWTClaims JWT 声明
type JWTClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Actor 转换为审计主体
func (c *JWTClaims) Actor() *audit.Actor {
	if c == nil {
		return nil
	}
	return &audit.Actor{ID: c.UserID, Username: c.Username, Role: c.Role}
}

func (s *AuthService) secret() ([]byte, error) {
	if s.cfg == nil || strings.TrimSpace(s.cfg.JWT.SecretKey) == "" {
		return nil, ErrJWTSecretMissing
	}
	return []byte(s.cfg.JWT.SecretKey), nil
}

// GenerateJWT 生成 JWT Token
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	secret, err := s.secret()
	if err != nil {
		return "", time.Time{}, err
	}
	hours := s.cfg.JWT.ExpireHours
	if hours <= 0 {
		hours = defaultTokenHours
	}
	now := s.now()
	expiresAt := now.Add(time.Duration(hours) * time.Hour)

	claims := JWTClaims{
		UserID:           user.ID,
		Username:         user.Username,
		Role:             user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	secret, err := s.secret()
	if err != nil {
		return nil, err
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid && claims.UserID != 0 {
		return claims, nil
	}
	return nil, ErrTokenInvalid
}

// LoginResult 登录结果
type LoginResult struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login 用户登录；成功与失败都会留下审计
func (s *AuthService) Login(ctx context.Context, meta RequestMeta, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || s.VerifyPassword(user.PasswordHash, password) != nil {
		var targetID uint
		if user != nil {
			targetID = user.ID
		}
		logger.Ctx(ctx).Warnw("auth_login_failed", "username", username)
		s.mutations.commit(ctx, RequestMeta{Source: meta.Source}, Mutation{
			Action:   constants.AuditActionLoginFailed,
			Entity:   constants.EntityUser,
			EntityID: targetID,
			Metadata: map[string]interface{}{"username": username},
		})
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, err
	}

	s.mutations.commit(ctx, RequestMeta{
		Actor:  &audit.Actor{ID: user.ID, Username: user.Username, Role: user.Role},
		Source: meta.Source,
	}, Mutation{
		Action:   constants.AuditActionLogin,
		Entity:   constants.EntityUser,
		EntityID: user.ID,
		Metadata: map[string]interface{}{"username": user.Username},
	})
	return &LoginResult{Token: token, Role: user.Role, ExpiresAt: expiresAt}, nil
}

// RegisterInput 注册用户的输入
type RegisterInput struct {
	Username    string
	Password    string
	OfficerName string
	Role        string
}

// Register 由管理员创建用户
func (s *AuthService) Register(ctx context.Context, meta RequestMeta, input RegisterInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.OfficerName = strings.TrimSpace(input.OfficerName)
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))
	if input.Username == "" || input.Password == "" || input.OfficerName == "" || input.Role == "" {
		return nil, ErrUserInvalid
	}
	if input.Role != constants.RoleAdmin && input.Role != constants.RoleFederal {
		return nil, ErrRoleInvalid
	}
	if err := s.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     input.Username,
		PasswordHash: hash,
		OfficerName:  input.OfficerName,
		Role:         input.Role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.mutations.commit(ctx, meta, Mutation{
		Action:   constants.AuditActionRegister,
		Entity:   constants.EntityUser,
		EntityID: user.ID,
		Metadata: map[string]interface{}{
			"username":    user.Username,
			"officerName": user.OfficerName,
			"role":        user.Role,
		},
	})
	return user, nil
}

// ChangePassword 修改当前用户密码
func (s *AuthService) ChangePassword(ctx context.Context, meta RequestMeta, currentPassword, newPassword string) error {
	userID := meta.ActorID()
	if userID == 0 {
		return ErrActorRequired
	}
	if currentPassword == "" || newPassword == "" {
		return ErrUserInvalid
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := s.VerifyPassword(user.PasswordHash, currentPassword); err != nil {
		return ErrInvalidPassword
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return err
	}

	s.mutations.commit(ctx, meta, Mutation{
		Action:   constants.AuditActionChangePassword,
		Entity:   constants.EntityUser,
		EntityID: user.ID,
	})
	return nil
}
