package loupe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// equalFold сравнивает строки без учёта регистра (Unicode case folding).
// cases.Caser хранит состояние, поэтому создаётся на каждый вызов.
func equalFold(a, b string) bool {
	return cases.Fold().String(a) == cases.Fold().String(b)
}

// versionListOptions — опции запроса списка версий и конкретной версии.
// releaseTypeId = пустой GUID означает "все типы релиза".
func versionListOptions(tenant, product, application string) APIOptions {
	opts := NewAPIOptions(tenant, product, application).WithQuery()
	opts.ReleaseTypeID = uuid.Nil.String()
	return opts
}

// GetVersions возвращает список версий приложения.
func (c *APIClient) GetVersions(ctx context.Context, tenant, product, application string) (*ApplicationVersionsResponse, error) {
	token, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	return c.getVersions(ctx, token, tenant, product, application)
}

func (c *APIClient) getVersions(ctx context.Context, token *AuthenticationToken, tenant, product, application string) (*ApplicationVersionsResponse, error) {
	return invoke[ApplicationVersionsResponse](ctx, c, token, http.MethodGet,
		"ApplicationVersion/Versions", versionListOptions(tenant, product, application), nil)
}

// FindVersion ищет версию по заголовку без учёта регистра и загружает её полную запись.
// Возвращает (nil, nil) если совпадений нет.
func (c *APIClient) FindVersion(ctx context.Context, tenant, version, product, application string) (*GetApplicationVersionResponse, error) {
	token, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	return c.findVersion(ctx, token, tenant, version, product, application)
}

func (c *APIClient) findVersion(ctx context.Context, token *AuthenticationToken, tenant, version, product, application string) (*GetApplicationVersionResponse, error) {
	versions, err := c.getVersions(ctx, token, tenant, product, application)
	if err != nil {
		return nil, err
	}

	for _, v := range versions.Data {
		if !equalFold(v.Version.Title, version) {
			continue
		}
		c.logger.Debug("Версия найдена", "version", version, "id", v.ID)
		return invoke[GetApplicationVersionResponse](ctx, c, token, http.MethodGet,
			"ApplicationVersion/Get/"+url.PathEscape(v.ID), versionListOptions(tenant, product, application), nil)
	}

	c.logger.Debug("Версия не найдена", "version", version, "candidates", len(versions.Data))
	return nil, nil
}

// CreateVersion создаёт версию приложения на основе шаблона ApplicationVersion/GetNew.
func (c *APIClient) CreateVersion(ctx context.Context, tenant, product, application, version string, opts VersionOptions) (*ApplicationVersion, error) {
	if opts.ReleaseTypeCaption == nil || strings.TrimSpace(*opts.ReleaseTypeCaption) == "" {
		return nil, NewValidationError("ReleaseTypeCaption", "тип релиза обязателен при создании версии приложения")
	}

	token, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	apiOpts := NewAPIOptions(tenant, product, application)
	draft, err := invoke[GetApplicationVersionResponse](ctx, c, token, http.MethodGet, "ApplicationVersion/GetNew", apiOpts, nil)
	if err != nil {
		return nil, err
	}

	ApplyVersionFields(opts, draft)
	draft.Version.Version = version

	c.logger.Debug("Создание версии", "version", version, "options", opts.String())

	if _, err := invoke[json.RawMessage](ctx, c, token, http.MethodPost,
		"ApplicationVersion/Post/"+url.PathEscape(draft.Version.ID), apiOpts, draft.Version); err != nil {
		return nil, err
	}
	return &draft.Version, nil
}

// UpdateVersion обновляет существующую версию приложения.
func (c *APIClient) UpdateVersion(ctx context.Context, tenant, product, application, version string, opts VersionOptions) (*ApplicationVersion, error) {
	token, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	current, err := c.findVersion(ctx, token, tenant, version, product, application)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, NewLoupeErrorWithStatus(ErrLoupeNotFound,
			fmt.Sprintf("version '%s' not found in Loupe.", version), http.StatusNotFound, "", nil)
	}

	ApplyVersionFields(opts, current)

	c.logger.Debug("Обновление версии", "version", version, "id", current.Version.ID, "options", opts.String())

	if _, err := invoke[json.RawMessage](ctx, c, token, http.MethodPut,
		"ApplicationVersion/Put/"+url.PathEscape(current.Version.ID),
		NewAPIOptions(tenant, product, application), current.Version); err != nil {
		return nil, err
	}
	return &current.Version, nil
}

// ApplyVersionFields переносит заданные поля opts в запись версии.
// Названия уровня продвижения и типа релиза ищутся в справочниках ответа
// без учёта регистра; при отсутствии совпадения идентификатор сбрасывается в nil
// и уходит на сервер как null.
// Дата релиза сохраняется как дата UTC без времени.
func ApplyVersionFields(opts VersionOptions, resp *GetApplicationVersionResponse) {
	if resp == nil {
		return
	}
	v := &resp.Version

	if opts.Caption != nil {
		v.Caption = *opts.Caption
	}
	if opts.Description != nil {
		v.Description = *opts.Description
	}
	if opts.DisplayVersion != nil {
		v.DisplayVersion = *opts.DisplayVersion
	}
	if opts.PromotionLevelCaption != nil {
		v.PromotionLevel = lookupID(resp.Lists.PromotionLevels, *opts.PromotionLevelCaption)
	}
	if opts.ReleaseDate != nil {
		d := opts.ReleaseDate.UTC()
		v.ReleaseDate = &Timestamp{Time: time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)}
	}
	if opts.ReleaseNotesURL != nil {
		v.ReleaseNotesURL = *opts.ReleaseNotesURL
	}
	if opts.ReleaseTypeCaption != nil {
		v.ReleaseType = lookupID(resp.Lists.ReleaseTypes, *opts.ReleaseTypeCaption)
	}
}

func lookupID(items []ListItem, caption string) *string {
	for _, item := range items {
		if equalFold(item.Caption, caption) {
			id := item.ID
			return &id
		}
	}
	return nil
}

// GetReleaseTypes возвращает отсортированные названия типов релиза.
func (c *APIClient) GetReleaseTypes(ctx context.Context, tenant, product, application string) ([]string, error) {
	lists, err := c.getNewLists(ctx, tenant, product, application)
	if err != nil {
		return nil, err
	}
	return sortedCaptions(lists.ReleaseTypes), nil
}

// GetPromotionLevels возвращает отсортированные названия уровней продвижения.
func (c *APIClient) GetPromotionLevels(ctx context.Context, tenant, product, application string) ([]string, error) {
	lists, err := c.getNewLists(ctx, tenant, product, application)
	if err != nil {
		return nil, err
	}
	return sortedCaptions(lists.PromotionLevels), nil
}

func (c *APIClient) getNewLists(ctx context.Context, tenant, product, application string) (*VersionLists, error) {
	token, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	draft, err := invoke[GetApplicationVersionResponse](ctx, c, token, http.MethodGet,
		"ApplicationVersion/GetNew", NewAPIOptions(tenant, product, application), nil)
	if err != nil {
		return nil, err
	}
	return &draft.Lists, nil
}

func sortedCaptions(items []ListItem) []string {
	captions := make([]string, 0, len(items))
	for _, item := range items {
		captions = append(captions, item.Caption)
	}
	sort.Strings(captions)
	return captions
}
