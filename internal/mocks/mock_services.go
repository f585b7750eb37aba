// Package mocks holds testify mocks for the service interfaces the HTTP
// controllers depend on.
package mocks

import (
	"context"
	"time"

	"civilregistry/internal/models"
	"civilregistry/internal/services"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.User), args.Error(2)
}

func (m *MockAuthService) Get(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, id uint, in models.ProfileInput) (*models.User, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, id uint, in models.ChangePasswordInput) error {
	return m.Called(ctx, id, in).Error(0)
}

type MockUserAdminService struct {
	mock.Mock
}

func (m *MockUserAdminService) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserAdminService) Create(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserAdminService) Update(ctx context.Context, id uint, in models.UserUpdateInput) (*models.User, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserAdminService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockStatsProvider struct {
	mock.Mock
}

func (m *MockStatsProvider) Snapshot(ctx context.Context, asOf time.Time) (*models.StatsSnapshot, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatsSnapshot), args.Error(1)
}

type MockBirthService struct {
	mock.Mock
}

func (m *MockBirthService) Submit(ctx context.Context, in models.RecordInput, photo []byte) (*models.BirthRecord, error) {
	args := m.Called(ctx, in, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BirthRecord), args.Error(1)
}

func (m *MockBirthService) Get(ctx context.Context, id uint) (*models.BirthRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BirthRecord), args.Error(1)
}

func (m *MockBirthService) List(ctx context.Context, status models.RecordStatus) ([]models.BirthRecord, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]models.BirthRecord), args.Error(1)
}

func (m *MockBirthService) Approve(ctx context.Context, id uint) (*models.BirthRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BirthRecord), args.Error(1)
}

func (m *MockBirthService) Reject(ctx context.Context, id uint, reason string) (*models.BirthRecord, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BirthRecord), args.Error(1)
}

func (m *MockBirthService) SetStatus(ctx context.Context, id uint, rawStatus, reason string) (*models.BirthRecord, error) {
	args := m.Called(ctx, id, rawStatus, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BirthRecord), args.Error(1)
}

type MockIDCardService struct {
	mock.Mock
}

func (m *MockIDCardService) Submit(ctx context.Context, in models.RecordInput, photo services.Photo) (*models.IDCardRecord, error) {
	args := m.Called(ctx, in, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IDCardRecord), args.Error(1)
}

func (m *MockIDCardService) Get(ctx context.Context, id uint) (*models.IDCardRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IDCardRecord), args.Error(1)
}

func (m *MockIDCardService) List(ctx context.Context, status models.RecordStatus) ([]models.IDCardRecord, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]models.IDCardRecord), args.Error(1)
}

func (m *MockIDCardService) Update(ctx context.Context, id uint, in models.RecordInput, photo *services.Photo) (*models.IDCardRecord, error) {
	args := m.Called(ctx, id, in, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IDCardRecord), args.Error(1)
}

func (m *MockIDCardService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockIDCardService) SetStatus(ctx context.Context, id uint, rawStatus, reason string) (*models.IDCardRecord, error) {
	args := m.Called(ctx, id, rawStatus, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IDCardRecord), args.Error(1)
}

type MockDeathService struct {
	mock.Mock
}

func (m *MockDeathService) Create(ctx context.Context, record *models.DeathRecord) error {
	args := m.Called(ctx, record)
	if args.Error(0) == nil {
		record.ID = 1
	}
	return args.Error(0)
}

func (m *MockDeathService) Get(ctx context.Context, id uint) (*models.DeathRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeathRecord), args.Error(1)
}

func (m *MockDeathService) Update(ctx context.Context, id uint, in models.DeathRecord) (*models.DeathRecord, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeathRecord), args.Error(1)
}

func (m *MockDeathService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDeathService) List(ctx context.Context) ([]models.DeathRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.DeathRecord), args.Error(1)
}

func (m *MockDeathService) Today(ctx context.Context) ([]models.DeathRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.DeathRecord), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	return m.Called(ctx, recipient, subject, body).Error(0)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) StatusChanged(kind models.RecordKind, record models.CivilRecord, actorID uint) {
	m.Called(kind, record, actorID)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, body interface{}) error {
	return m.Called(ctx, routingKey, body).Error(0)
}

func (m *MockPublisher) Close() {}
