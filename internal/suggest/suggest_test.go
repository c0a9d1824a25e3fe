package suggest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/loupe-ci/internal/adapter/loupe"
	"github.com/Kargones/loupe-ci/internal/adapter/loupe/loupetest"
	"github.com/Kargones/loupe-ci/internal/config"
	"github.com/Kargones/loupe-ci/internal/constants"
)

var creds = config.LoupeCredentials{Tenant: "Acme", UserName: "ci", Password: "secret"}

func connectTo(src Source) Connector {
	return func() (Source, error) { return src, nil }
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []string{"applications", "products", "promotion-levels", "release-types", "tenants"}, Kinds())

	_, ok := Lookup(" Release-Types ")
	assert.True(t, ok)
	_, ok = Lookup("versions")
	assert.False(t, ok)
}

func TestSuggester_UnknownKind(t *testing.T) {
	_, err := New(creds, connectTo(loupetest.NewMockClient())).Suggest(context.Background(), "versions", Query{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestSuggester_EmptyCredentials(t *testing.T) {
	connected := false
	s := New(config.LoupeCredentials{}, func() (Source, error) {
		connected = true
		return loupetest.NewMockClient(), nil
	})

	for _, kind := range Kinds() {
		got, err := s.Suggest(context.Background(), kind, Query{Tenant: "Acme", Product: "Loupe", Application: "Server"})
		require.NoError(t, err)
		assert.Empty(t, got, kind)
		assert.NotNil(t, got, kind)
	}
	assert.False(t, connected)
}

func TestSuggester_ConnectError(t *testing.T) {
	boom := errors.New("boom")
	s := New(creds, func() (Source, error) { return nil, boom })
	_, err := s.Suggest(context.Background(), constants.SuggestTenants, Query{})
	assert.ErrorIs(t, err, boom)
}

func TestTenants(t *testing.T) {
	mock := &loupetest.MockClient{
		GetTenantsFunc: func(context.Context) (*loupe.TenantsForUserResponse, error) {
			return &loupe.TenantsForUserResponse{Tenants: []loupe.Tenant{
				{TenantName: "Globex"}, {TenantName: "Acme"}, {TenantName: "Globex"},
			}}, nil
		},
	}
	got, err := New(creds, connectTo(mock)).Suggest(context.Background(), constants.SuggestTenants, Query{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme", "Globex"}, got)
}

func TestProducts(t *testing.T) {
	got, err := Products(context.Background(), loupetest.NewMockClient(), Query{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gibraltar", "Loupe"}, got)
}

func TestApplications(t *testing.T) {
	var gotTenant string
	mock := &loupetest.MockClient{
		GetApplicationsFunc: func(_ context.Context, tenant string) (*loupe.ApplicationsResponse, error) {
			gotTenant = tenant
			return loupetest.ApplicationsData(), nil
		},
	}
	s := New(creds, connectTo(mock))

	t.Run("все приложения", func(t *testing.T) {
		got, err := s.Suggest(context.Background(), constants.SuggestApplications, Query{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Agent", "Analyst", "Server"}, got)
		assert.Equal(t, "Acme", gotTenant, "арендатор берётся из учётных данных")
	})

	t.Run("фильтр по продукту без учёта регистра", func(t *testing.T) {
		got, err := s.Suggest(context.Background(), constants.SuggestApplications, Query{Tenant: "Globex", Product: "LOUPE"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Agent", "Server"}, got)
		assert.Equal(t, "Globex", gotTenant)
	})
}

func TestReleaseTypesAndPromotionLevels(t *testing.T) {
	var calls int
	mock := &loupetest.MockClient{
		GetReleaseTypesFunc: func(_ context.Context, tenant, product, application string) ([]string, error) {
			calls++
			assert.Equal(t, "Acme", tenant)
			assert.Equal(t, "Loupe", product)
			assert.Equal(t, "Server", application)
			return []string{"Minor", "Major", "Minor"}, nil
		},
	}

	got, err := ReleaseTypes(context.Background(), mock, Query{Tenant: "Acme", Product: "Loupe"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, calls, "без приложения Loupe не вызывается")

	got, err = ReleaseTypes(context.Background(), mock, Query{Tenant: "Acme", Product: "Loupe", Application: "Server"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Major", "Minor"}, got)

	got, err = PromotionLevels(context.Background(), mock, Query{Tenant: "Acme", Product: "Loupe", Application: "Server"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Development", "Production", "QA"}, got)

	got, err = PromotionLevels(context.Background(), mock, Query{Product: "Loupe", Application: "Server"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProviderError(t *testing.T) {
	apiErr := loupe.NewLoupeErrorWithStatus(loupe.ErrLoupeAPI, "boom", 500, "", nil)
	mock := &loupetest.MockClient{
		GetApplicationsFunc: func(context.Context, string) (*loupe.ApplicationsResponse, error) {
			return nil, apiErr
		},
	}
	_, err := Products(context.Background(), mock, Query{})
	assert.ErrorIs(t, err, apiErr)
}
