// Package loupe реализует клиент Loupe REST API: получение session token,
// формирование запросов, разбор ответов и классификацию ошибок.
// Операции разделены по принципу ISP на сфокусированные интерфейсы:
// AuthAPI, VersionsAPI, IssuesAPI, CatalogAPI.
// Композитный интерфейс Client объединяет все вышеперечисленные.
package loupe

import "context"

// AuthAPI — получение session token.
type AuthAPI interface {
	// Authenticate выполняет GET auth/token с Basic-аутентификацией.
	// Токен не кэшируется: каждая публичная операция получает новый.
	Authenticate(ctx context.Context) (*AuthenticationToken, error)
}

// VersionsAPI — операции над версиями приложения.
type VersionsAPI interface {
	// FindVersion ищет версию по заголовку без учёта регистра.
	// Возвращает (nil, nil) если версия не найдена.
	FindVersion(ctx context.Context, tenant, version, product, application string) (*GetApplicationVersionResponse, error)

	// CreateVersion создаёт версию. ReleaseTypeCaption обязателен.
	CreateVersion(ctx context.Context, tenant, product, application, version string, opts VersionOptions) (*ApplicationVersion, error)

	// UpdateVersion обновляет существующую версию.
	// Возвращает ошибку с кодом ErrLoupeNotFound если версия отсутствует.
	UpdateVersion(ctx context.Context, tenant, product, application, version string, opts VersionOptions) (*ApplicationVersion, error)

	// GetVersions возвращает список версий приложения.
	GetVersions(ctx context.Context, tenant, product, application string) (*ApplicationVersionsResponse, error)

	// GetReleaseTypes возвращает отсортированные названия типов релиза.
	GetReleaseTypes(ctx context.Context, tenant, product, application string) ([]string, error)

	// GetPromotionLevels возвращает отсортированные названия уровней продвижения.
	GetPromotionLevels(ctx context.Context, tenant, product, application string) ([]string, error)
}

// IssuesAPI — получение проблем по версиям.
type IssuesAPI interface {
	// GetIssues возвращает проблемы версий, подходящих под versionSpec.
	// versionSpec с символом '*' трактуется как шаблон и сравнивается с caption версий.
	GetIssues(ctx context.Context, tenant, versionSpec, product, application string) ([]Issue, error)
}

// CatalogAPI — справочные данные учётной записи.
type CatalogAPI interface {
	// GetTenants возвращает арендаторов, доступных пользователю.
	GetTenants(ctx context.Context) (*TenantsForUserResponse, error)

	// GetApplications возвращает все пары продукт/приложение арендатора.
	GetApplications(ctx context.Context, tenant string) (*ApplicationsResponse, error)
}

// Client — композитный интерфейс клиента Loupe.
type Client interface {
	AuthAPI
	VersionsAPI
	IssuesAPI
	CatalogAPI

	// BaseURL возвращает базовый адрес сервера без завершающего '/'.
	BaseURL() string
}
