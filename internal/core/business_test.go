package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/domains/internal/model"
)

func TestBusinessService_Create_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewBusinessService(db)
	ctx := context.Background()

	now := time.Now()
	b := &model.Business{
		ID:        "test-business-1",
		Name:      "Acme Salon",
		Subdomain: "acme-salon",
		CreatedAt: now,
		UpdatedAt: now,
	}

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	err := svc.Create(ctx, b)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestBusinessService_Create_InsertError(t *testing.T) {
	db := &mockDB{}
	svc := NewBusinessService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, errors.New("db error"))

	err := svc.Create(ctx, &model.Business{ID: "test-business-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert business")
}

func TestBusinessService_GetByID_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewBusinessService(db)
	ctx := context.Background()

	now := time.Now().Truncate(time.Microsecond)
	row := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "test-business-1"
		*(dest[1].(*string)) = "Acme Salon"
		*(dest[2].(*string)) = "acme-salon"
		*(dest[3].(*time.Time)) = now
		*(dest[4].(*time.Time)) = now
		return nil
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	b, err := svc.GetByID(ctx, "test-business-1")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "Acme Salon", b.Name)
	assert.Equal(t, "acme-salon", b.Subdomain)
}

func TestBusinessService_GetByID_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewBusinessService(db)
	ctx := context.Background()

	row := &mockRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	b, err := svc.GetByID(ctx, "missing")
	require.Error(t, err)
	assert.Nil(t, b)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestBusinessService_List_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewBusinessService(db)
	ctx := context.Background()

	now := time.Now()
	rows := newMockRows(
		func(dest ...any) error {
			*(dest[0].(*string)) = "test-business-1"
			*(dest[1].(*string)) = "Acme Salon"
			*(dest[2].(*string)) = "acme-salon"
			*(dest[3].(*time.Time)) = now
			*(dest[4].(*time.Time)) = now
			return nil
		},
		func(dest ...any) error {
			*(dest[0].(*string)) = "test-business-2"
			*(dest[1].(*string)) = "Bay Dental"
			*(dest[2].(*string)) = "bay-dental"
			*(dest[3].(*time.Time)) = now
			*(dest[4].(*time.Time)) = now
			return nil
		},
	)
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	businesses, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, businesses, 2)
	assert.Equal(t, "Acme Salon", businesses[0].Name)
	assert.Equal(t, "Bay Dental", businesses[1].Name)
}

func TestBusinessService_List_Empty(t *testing.T) {
	db := &mockDB{}
	svc := NewBusinessService(db)
	ctx := context.Background()

	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(newEmptyMockRows(), nil)

	businesses, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, businesses)
}

func TestBusinessService_Delete_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewBusinessService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	err := svc.Delete(ctx, "test-business-1")
	require.NoError(t, err)
	db.AssertExpectations(t)
}
