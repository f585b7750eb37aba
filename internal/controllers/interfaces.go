package controllers

import (
	"context"
	"time"

	"civilregistry/internal/models"
	"civilregistry/internal/services"
)

type AuthService interface {
	Register(ctx context.Context, in models.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	UpdateProfile(ctx context.Context, id uint, in models.ProfileInput) (*models.User, error)
	ChangePassword(ctx context.Context, id uint, in models.ChangePasswordInput) error
}

type UserAdminService interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, in models.RegisterInput) (*models.User, error)
	Update(ctx context.Context, id uint, in models.UserUpdateInput) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

type StatsProvider interface {
	Snapshot(ctx context.Context, asOf time.Time) (*models.StatsSnapshot, error)
}

type BirthService interface {
	Submit(ctx context.Context, in models.RecordInput, photo []byte) (*models.BirthRecord, error)
	Get(ctx context.Context, id uint) (*models.BirthRecord, error)
	List(ctx context.Context, status models.RecordStatus) ([]models.BirthRecord, error)
	Approve(ctx context.Context, id uint) (*models.BirthRecord, error)
	Reject(ctx context.Context, id uint, reason string) (*models.BirthRecord, error)
	SetStatus(ctx context.Context, id uint, rawStatus, reason string) (*models.BirthRecord, error)
}

type IDCardService interface {
	Submit(ctx context.Context, in models.RecordInput, photo services.Photo) (*models.IDCardRecord, error)
	Get(ctx context.Context, id uint) (*models.IDCardRecord, error)
	List(ctx context.Context, status models.RecordStatus) ([]models.IDCardRecord, error)
	Update(ctx context.Context, id uint, in models.RecordInput, photo *services.Photo) (*models.IDCardRecord, error)
	Delete(ctx context.Context, id uint) error
	SetStatus(ctx context.Context, id uint, rawStatus, reason string) (*models.IDCardRecord, error)
}

type DeathService interface {
	Create(ctx context.Context, record *models.DeathRecord) error
	Get(ctx context.Context, id uint) (*models.DeathRecord, error)
	Update(ctx context.Context, id uint, in models.DeathRecord) (*models.DeathRecord, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.DeathRecord, error)
	Today(ctx context.Context) ([]models.DeathRecord, error)
}

// Notifier delivers a plain-text message to one recipient.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// StatusChangeDispatcher fans a completed transition out to email and the
// event bus. Implementations must not block the request.
type StatusChangeDispatcher interface {
	StatusChanged(kind models.RecordKind, record models.CivilRecord, actorID uint)
}
