package repository

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
}

// SessionRepository guarda la marca de sesión del usuario actual.
type SessionRepository interface {
	Get(ctx context.Context) (*entity.Session, error)
	Set(ctx context.Context, session *entity.Session) error
	Clear(ctx context.Context) error
}
