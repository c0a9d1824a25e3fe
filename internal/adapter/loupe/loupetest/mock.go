// Package loupetest предоставляет тестовые утилиты для пакета loupe:
// мок-реализацию loupe.Client и готовые тестовые данные.
//
// Базовое использование с дефолтным поведением:
//
//	mock := loupetest.NewMockClient()
//	resp, err := mock.FindVersion(ctx, "", "1.0.0", "Product", "App")
//	// resp == nil, err == nil: версия не найдена
//
// Кастомизация через функциональные поля:
//
//	mock := &loupetest.MockClient{
//	    FindVersionFunc: func(ctx context.Context, tenant, version, product, app string) (*loupe.GetApplicationVersionResponse, error) {
//	        return loupetest.VersionData(version), nil
//	    },
//	}
package loupetest

import (
	"context"

	"github.com/Kargones/loupe-ci/internal/adapter/loupe"
)

// Compile-time проверки реализации интерфейсов
var (
	_ loupe.Client      = (*MockClient)(nil)
	_ loupe.AuthAPI     = (*MockClient)(nil)
	_ loupe.VersionsAPI = (*MockClient)(nil)
	_ loupe.IssuesAPI   = (*MockClient)(nil)
	_ loupe.CatalogAPI  = (*MockClient)(nil)
)

// MockBaseURL — базовый адрес, который возвращает MockClient по умолчанию.
const MockBaseURL = "https://loupe.example.com"

// MockClient — мок-реализация loupe.Client с функциональными полями.
type MockClient struct {
	AuthenticateFunc       func(ctx context.Context) (*loupe.AuthenticationToken, error)
	FindVersionFunc        func(ctx context.Context, tenant, version, product, application string) (*loupe.GetApplicationVersionResponse, error)
	CreateVersionFunc      func(ctx context.Context, tenant, product, application, version string, opts loupe.VersionOptions) (*loupe.ApplicationVersion, error)
	UpdateVersionFunc      func(ctx context.Context, tenant, product, application, version string, opts loupe.VersionOptions) (*loupe.ApplicationVersion, error)
	GetVersionsFunc        func(ctx context.Context, tenant, product, application string) (*loupe.ApplicationVersionsResponse, error)
	GetReleaseTypesFunc    func(ctx context.Context, tenant, product, application string) ([]string, error)
	GetPromotionLevelsFunc func(ctx context.Context, tenant, product, application string) ([]string, error)
	GetIssuesFunc          func(ctx context.Context, tenant, versionSpec, product, application string) ([]loupe.Issue, error)
	GetTenantsFunc         func(ctx context.Context) (*loupe.TenantsForUserResponse, error)
	GetApplicationsFunc    func(ctx context.Context, tenant string) (*loupe.ApplicationsResponse, error)

	// BaseURLValue — значение BaseURL(); пустое — MockBaseURL.
	BaseURLValue string
}

// NewMockClient создаёт MockClient с дефолтным поведением.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Authenticate возвращает тестовый токен.
func (m *MockClient) Authenticate(ctx context.Context) (*loupe.AuthenticationToken, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx)
	}
	return &loupe.AuthenticationToken{Token: "test-token", ExpiresIn: 3600}, nil
}

// FindVersion по умолчанию сообщает, что версия не найдена.
func (m *MockClient) FindVersion(ctx context.Context, tenant, version, product, application string) (*loupe.GetApplicationVersionResponse, error) {
	if m.FindVersionFunc != nil {
		return m.FindVersionFunc(ctx, tenant, version, product, application)
	}
	return nil, nil
}

// CreateVersion по умолчанию применяет опции к тестовой записи.
func (m *MockClient) CreateVersion(ctx context.Context, tenant, product, application, version string, opts loupe.VersionOptions) (*loupe.ApplicationVersion, error) {
	if m.CreateVersionFunc != nil {
		return m.CreateVersionFunc(ctx, tenant, product, application, version, opts)
	}
	data := VersionData(version)
	loupe.ApplyVersionFields(opts, data)
	return &data.Version, nil
}

// UpdateVersion по умолчанию применяет опции к тестовой записи.
func (m *MockClient) UpdateVersion(ctx context.Context, tenant, product, application, version string, opts loupe.VersionOptions) (*loupe.ApplicationVersion, error) {
	if m.UpdateVersionFunc != nil {
		return m.UpdateVersionFunc(ctx, tenant, product, application, version, opts)
	}
	data := VersionData(version)
	loupe.ApplyVersionFields(opts, data)
	return &data.Version, nil
}

// GetVersions по умолчанию возвращает пустой список.
func (m *MockClient) GetVersions(ctx context.Context, tenant, product, application string) (*loupe.ApplicationVersionsResponse, error) {
	if m.GetVersionsFunc != nil {
		return m.GetVersionsFunc(ctx, tenant, product, application)
	}
	return &loupe.ApplicationVersionsResponse{}, nil
}

// GetReleaseTypes по умолчанию возвращает Major, Minor и Patch.
func (m *MockClient) GetReleaseTypes(ctx context.Context, tenant, product, application string) ([]string, error) {
	if m.GetReleaseTypesFunc != nil {
		return m.GetReleaseTypesFunc(ctx, tenant, product, application)
	}
	return []string{"Major", "Minor", "Patch"}, nil
}

// GetPromotionLevels по умолчанию возвращает Development, Production и QA.
func (m *MockClient) GetPromotionLevels(ctx context.Context, tenant, product, application string) ([]string, error) {
	if m.GetPromotionLevelsFunc != nil {
		return m.GetPromotionLevelsFunc(ctx, tenant, product, application)
	}
	return []string{"Development", "Production", "QA"}, nil
}

// GetIssues по умолчанию возвращает пустой список.
func (m *MockClient) GetIssues(ctx context.Context, tenant, versionSpec, product, application string) ([]loupe.Issue, error) {
	if m.GetIssuesFunc != nil {
		return m.GetIssuesFunc(ctx, tenant, versionSpec, product, application)
	}
	return []loupe.Issue{}, nil
}

// GetTenants по умолчанию возвращает одного арендатора.
func (m *MockClient) GetTenants(ctx context.Context) (*loupe.TenantsForUserResponse, error) {
	if m.GetTenantsFunc != nil {
		return m.GetTenantsFunc(ctx)
	}
	return &loupe.TenantsForUserResponse{Tenants: []loupe.Tenant{{TenantName: "Acme"}}}, nil
}

// GetApplications по умолчанию возвращает ApplicationsData().
func (m *MockClient) GetApplications(ctx context.Context, tenant string) (*loupe.ApplicationsResponse, error) {
	if m.GetApplicationsFunc != nil {
		return m.GetApplicationsFunc(ctx, tenant)
	}
	return ApplicationsData(), nil
}

// BaseURL возвращает BaseURLValue или MockBaseURL.
func (m *MockClient) BaseURL() string {
	if m.BaseURLValue != "" {
		return m.BaseURLValue
	}
	return MockBaseURL
}

// -------------------------------------------------------------------
// Тестовые данные
// -------------------------------------------------------------------

// Идентификаторы элементов справочников в VersionData.
const (
	VersionID          = "5f2b8a4e-1c3d-4e5f-8a9b-0c1d2e3f4a5b"
	ReleaseTypeMajor   = "11111111-1111-1111-1111-111111111111"
	ReleaseTypeMinor   = "22222222-2222-2222-2222-222222222222"
	PromotionLevelProd = "33333333-3333-3333-3333-333333333333"
	PromotionLevelQA   = "44444444-4444-4444-4444-444444444444"
)

// VersionData возвращает запись версии со справочниками.
func VersionData(version string) *loupe.GetApplicationVersionResponse {
	return &loupe.GetApplicationVersionResponse{
		Version: loupe.ApplicationVersion{
			ID:      VersionID,
			Version: version,
			Caption: version,
		},
		Lists: loupe.VersionLists{
			PromotionLevels: []loupe.ListItem{
				{ID: PromotionLevelProd, Caption: "Production"},
				{ID: PromotionLevelQA, Caption: "QA"},
			},
			ReleaseTypes: []loupe.ListItem{
				{ID: ReleaseTypeMajor, Caption: "Major"},
				{ID: ReleaseTypeMinor, Caption: "Minor"},
			},
		},
	}
}

// ApplicationsData возвращает набор продуктов и приложений с повторами.
func ApplicationsData() *loupe.ApplicationsResponse {
	return &loupe.ApplicationsResponse{
		Data: []loupe.ProductApplication{
			{ProductName: "Loupe", ApplicationName: "Server"},
			{ProductName: "Loupe", ApplicationName: "Agent"},
			{ProductName: "Gibraltar", ApplicationName: "Analyst"},
			{ProductName: "Loupe", ApplicationName: "Server"},
		},
	}
}

// IssueData возвращает открытую и закрытую проблемы.
func IssueData() []loupe.Issue {
	return []loupe.Issue{
		{
			ID:      "issue-1",
			Status:  "Active",
			Caption: loupe.IssueCaption{Title: "NullReferenceException in Startup", URL: "Customers/Acme/Issues/1"},
			AddedBy: &loupe.PersonRef{Title: "Jane Doe"},
		},
		{
			ID:      "issue-2",
			Status:  "Resolved",
			Caption: loupe.IssueCaption{Title: "Timeout on sync", URL: "Customers/Acme/Issues/2"},
			AddedBy: &loupe.PersonRef{Title: "John Roe"},
			Closed:  true,
		},
	}
}
