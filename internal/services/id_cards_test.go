package services

import (
	"context"
	"testing"

	"civilregistry/internal/apperrors"
	"civilregistry/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIDCardFixture() (*IDCardService, *memTable[models.IDCardRecord], *memPhotoStore) {
	table := newIDCardTable()
	photos := newMemPhotoStore()
	return NewIDCardService(table, photos, nil, nil, quietLogger()), table, photos
}

func TestIDCardSubmitStoresPhoto(t *testing.T) {
	svc, _, photos := newIDCardFixture()

	rec, err := svc.Submit(context.Background(), birthInput("NID001"), Photo{Data: []byte("face"), Name: "face.png"})

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, rec.Status)
	assert.Equal(t, "/uploads/photo-1.jpg", rec.PhotoPath)
	assert.Contains(t, photos.saved, rec.PhotoPath)
}

func TestIDCardSubmitHasNoAgeRules(t *testing.T) {
	svc, _, _ := newIDCardFixture()
	in := birthInput("NID002")
	in.DateOfBirth = date(2015, 1, 1)
	in.DateOfExpiry = date(2050, 1, 1)

	_, err := svc.Submit(context.Background(), in, Photo{Data: []byte("face")})
	assert.NoError(t, err)
}

func TestIDCardDuplicateSavesNoPhoto(t *testing.T) {
	ctx := context.Background()
	svc, _, photos := newIDCardFixture()
	_, err := svc.Submit(ctx, birthInput("NID001"), Photo{Data: []byte("face")})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, birthInput("NID001"), Photo{Data: []byte("other face")})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRecord)

	_, err = svc.Submit(ctx, birthInput("NID002"), Photo{Data: []byte("face")})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRecord)

	assert.Len(t, photos.saved, 1)
}

func TestIDCardUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _, photos := newIDCardFixture()
	first, err := svc.Submit(ctx, birthInput("NID001"), Photo{Data: []byte("face-1")})
	require.NoError(t, err)
	second, err := svc.Submit(ctx, birthInput("NID002"), Photo{Data: []byte("face-2")})
	require.NoError(t, err)

	t.Run("fields only keeps photo", func(t *testing.T) {
		in := birthInput("NID001")
		in.County = "Jubaland"
		got, err := svc.Update(ctx, first.ID, in, nil)
		require.NoError(t, err)
		assert.Equal(t, "Jubaland", got.County)
		assert.Equal(t, first.PhotoPath, got.PhotoPath)
		assert.Equal(t, first.PhotoHash, got.PhotoHash)
	})

	t.Run("new photo replaces file", func(t *testing.T) {
		got, err := svc.Update(ctx, first.ID, birthInput("NID001"), &Photo{Data: []byte("face-3"), Name: "n.jpg"})
		require.NoError(t, err)
		assert.NotEqual(t, first.PhotoPath, got.PhotoPath)
		assert.Contains(t, photos.removed, first.PhotoPath)
	})

	t.Run("id number of another record", func(t *testing.T) {
		_, err := svc.Update(ctx, first.ID, birthInput("NID002"), nil)
		assert.ErrorIs(t, err, apperrors.ErrDuplicateRecord)
	})

	t.Run("photo of another record", func(t *testing.T) {
		_, err := svc.Update(ctx, second.ID, birthInput("NID002"), &Photo{Data: []byte("face-3")})
		assert.ErrorIs(t, err, apperrors.ErrDuplicateRecord)
	})

	t.Run("status is immutable", func(t *testing.T) {
		_, err := svc.Approve(ctx, second.ID)
		require.NoError(t, err)
		got, err := svc.Update(ctx, second.ID, birthInput("NID002"), nil)
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, got.Status)
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := svc.Update(ctx, 999, birthInput("NID999"), nil)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestIDCardDeleteRemovesPhoto(t *testing.T) {
	ctx := context.Background()
	svc, _, photos := newIDCardFixture()
	rec, err := svc.Submit(ctx, birthInput("NID001"), Photo{Data: []byte("face")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, rec.ID))
	assert.Contains(t, photos.removed, rec.PhotoPath)

	_, err = svc.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, rec.ID), apperrors.ErrNotFound)
}

func TestIDCardSetStatus(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newIDCardFixture()
	rec, err := svc.Submit(ctx, birthInput("NID001"), Photo{Data: []byte("face")})
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, rec.ID, "verified", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)

	got, err := svc.SetStatus(ctx, rec.ID, "rejected", "expired passport")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)
	assert.Equal(t, "rejected", got.Status.Label(models.KindIDCard))

	_, err = svc.SetStatus(ctx, rec.ID, "approved", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}
