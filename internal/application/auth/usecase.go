// Package auth contiene el inicio y cierre de sesión y el usuario por defecto.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/pkg/jwt"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación. La sesión activa es una sola marca
// persistida; el token JWT solo es válido mientras la marca sea del mismo usuario.
type AuthUseCase struct {
	tx     repository.TxRunner
	jwtCfg JWTConfig
	log    *logger.Logger
	now    func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(tx repository.TxRunner, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		tx:     tx,
		jwtCfg: jwtCfg,
		log:    log.Component("auth"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// EnsureDefaultUser crea el usuario inicial si no existe ninguno. Devuelve true si lo creó.
func (uc *AuthUseCase) EnsureDefaultUser(ctx context.Context, username, password string) (bool, error) {
	created := false
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		users, err := r.Users.List(ctx)
		if err != nil {
			return err
		}
		if len(users) > 0 {
			return nil
		}
		if _, err := uc.createInTx(ctx, r, username, password); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("auth: usuario por defecto: %w", err)
	}
	if created {
		uc.log.Info().Str("username", username).Msg("usuario por defecto creado")
	}
	return created, nil
}

// CreateUser registra un usuario con la contraseña hasheada (bcrypt).
// Devuelve domain.ErrConflict si el nombre ya existe.
func (uc *AuthUseCase) CreateUser(ctx context.Context, username, password string) (*dto.UserResponse, error) {
	var user *entity.User
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		user, err = uc.createInTx(ctx, r, username, password)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromUser(user)
	return &out, nil
}

func (uc *AuthUseCase) createInTx(ctx context.Context, r repository.Repos, username, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: usuario y contraseña son obligatorios", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    uc.now(),
	}
	if err := r.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifica usuario/contraseña, escribe la marca de sesión y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var user *entity.User
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		u, err := r.Users.GetByUsername(ctx, strings.TrimSpace(in.Username))
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrUnauthorized
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
			return domain.ErrUnauthorized
		}
		user = u
		return r.Session.Set(ctx, &entity.Session{
			UserID:     u.ID,
			Username:   u.Username,
			LoggedInAt: uc.now(),
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			uc.log.Warn().Str("username", in.Username).Msg("credenciales inválidas")
		}
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("sesión iniciada")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: uc.now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
		User:      dto.FromUser(user),
	}, nil
}

// Logout borra la marca de sesión.
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		return r.Session.Clear(ctx)
	})
}

// CurrentUser devuelve la marca de sesión o nil si nadie ha iniciado sesión.
func (uc *AuthUseCase) CurrentUser(ctx context.Context) (*dto.SessionResponse, error) {
	var s *entity.Session
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		s, err = r.Session.Get(ctx)
		return err
	})
	if err != nil || s == nil {
		return nil, err
	}
	return &dto.SessionResponse{UserID: s.UserID, Username: s.Username, LoggedInAt: s.LoggedInAt}, nil
}

// Authenticate valida el token y exige que la sesión activa sea del mismo usuario.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: token inválido", domain.ErrUnauthorized)
	}
	session, err := uc.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != claims.UserID {
		return nil, fmt.Errorf("%w: sesión cerrada", domain.ErrUnauthorized)
	}
	return claims, nil
}
