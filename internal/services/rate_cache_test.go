package services

import (
	"testing"

	"bank-management/internal/models"
	"bank-management/internal/repositories"
	"bank-management/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateTable() []models.AccountType {
	return []models.AccountType{
		{ID: 1, Name: models.AccountTypeChequing, InterestRate: decimal.NewFromFloat(0.0050)},
		{ID: 2, Name: models.AccountTypeSavings, InterestRate: decimal.NewFromFloat(0.0100)},
	}
}

func TestRateCache_LoadsOnceOnFirstLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository_mocks.NewMockAccountTypeRepositoryInterface(ctrl)
	repo.EXPECT().GetAll().Return(rateTable(), nil).Times(1)

	cache := NewRateCache(repo)

	rate, err := cache.Rate(models.AccountTypeSavings)
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromFloat(0.0100)))

	// Second lookup is served from memory
	rate, err = cache.Rate(models.AccountTypeChequing)
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromFloat(0.0050)))
}

func TestRateCache_UnknownTypeAfterLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository_mocks.NewMockAccountTypeRepositoryInterface(ctrl)
	repo.EXPECT().GetAll().Return(rateTable(), nil).Times(1)

	cache := NewRateCache(repo)

	_, err := cache.Rate("money market")
	assert.Equal(t, repositories.ErrAccountTypeNotFound, err)
}

func TestRateCache_RefreshPicksUpNewRates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository_mocks.NewMockAccountTypeRepositoryInterface(ctrl)
	updated := []models.AccountType{
		{ID: 2, Name: models.AccountTypeSavings, InterestRate: decimal.NewFromFloat(0.0200)},
	}
	gomock.InOrder(
		repo.EXPECT().GetAll().Return(rateTable(), nil),
		repo.EXPECT().GetAll().Return(updated, nil),
	)

	cache := NewRateCache(repo)

	rate, err := cache.Rate(models.AccountTypeSavings)
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromFloat(0.0100)))

	require.NoError(t, cache.Refresh())

	rate, err = cache.Rate(models.AccountTypeSavings)
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromFloat(0.0200)))
}
