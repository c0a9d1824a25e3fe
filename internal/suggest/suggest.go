// Package suggest содержит поставщики подсказок для параметров команд:
// арендаторы, продукты, приложения, типы релиза и уровни продвижения.
// Каждый поставщик возвращает отсортированный список без повторов.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/Kargones/loupe-ci/internal/adapter/loupe"
	"github.com/Kargones/loupe-ci/internal/config"
	"github.com/Kargones/loupe-ci/internal/constants"
)

// ErrUnknownKind возвращается для неизвестного вида подсказки.
var ErrUnknownKind = errors.New("неизвестный вид подсказки")

// Source — операции Loupe, которые нужны поставщикам.
type Source interface {
	loupe.CatalogAPI
	GetReleaseTypes(ctx context.Context, tenant, product, application string) ([]string, error)
	GetPromotionLevels(ctx context.Context, tenant, product, application string) ([]string, error)
}

// Query — уже введённые значения, которые сужают подсказки.
type Query struct {
	Tenant      string
	Product     string
	Application string
}

// Provider возвращает подсказки одного вида.
type Provider func(ctx context.Context, src Source, q Query) ([]string, error)

var providers = map[string]Provider{
	constants.SuggestTenants:         Tenants,
	constants.SuggestProducts:        Products,
	constants.SuggestApplications:    Applications,
	constants.SuggestReleaseTypes:    ReleaseTypes,
	constants.SuggestPromotionLevels: PromotionLevels,
}

// Kinds возвращает поддерживаемые виды подсказок.
func Kinds() []string {
	kinds := make([]string, 0, len(providers))
	for k := range providers {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Lookup возвращает поставщика по виду.
func Lookup(kind string) (Provider, bool) {
	p, ok := providers[strings.ToLower(strings.TrimSpace(kind))]
	return p, ok
}

// Connector открывает подключение к Loupe.
type Connector func() (Source, error)

// Suggester связывает учётные данные с поставщиками подсказок.
type Suggester struct {
	creds   config.LoupeCredentials
	connect Connector
}

// New создаёт Suggester.
func New(creds config.LoupeCredentials, connect Connector) *Suggester {
	return &Suggester{creds: creds, connect: connect}
}

// Suggest возвращает подсказки вида kind.
// Без учётных данных возвращается пустой список без обращения к Loupe.
// Пустой Query.Tenant заменяется арендатором из учётных данных.
func (s *Suggester) Suggest(ctx context.Context, kind string, q Query) ([]string, error) {
	provider, ok := Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q (допустимые: %s)", ErrUnknownKind, kind, strings.Join(Kinds(), ", "))
	}
	if s.creds.IsEmpty() || s.connect == nil {
		return []string{}, nil
	}
	if strings.TrimSpace(q.Tenant) == "" {
		q.Tenant = s.creds.Tenant
	}

	src, err := s.connect()
	if err != nil {
		return nil, err
	}
	return provider(ctx, src, q)
}

// Tenants возвращает арендаторов пользователя.
func Tenants(ctx context.Context, src Source, _ Query) ([]string, error) {
	resp, err := src.GetTenants(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(resp.Tenants))
	for _, t := range resp.Tenants {
		names = append(names, t.TenantName)
	}
	return distinctSorted(names), nil
}

// Products возвращает продукты арендатора.
func Products(ctx context.Context, src Source, q Query) ([]string, error) {
	resp, err := src.GetApplications(ctx, strings.TrimSpace(q.Tenant))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(resp.Data))
	for _, a := range resp.Data {
		names = append(names, a.ProductName)
	}
	return distinctSorted(names), nil
}

// Applications возвращает приложения арендатора. Если задан продукт,
// остаются только его приложения (сравнение без учёта регистра).
func Applications(ctx context.Context, src Source, q Query) ([]string, error) {
	resp, err := src.GetApplications(ctx, strings.TrimSpace(q.Tenant))
	if err != nil {
		return nil, err
	}
	product := strings.TrimSpace(q.Product)
	fold := cases.Fold()
	want := fold.String(product)

	names := make([]string, 0, len(resp.Data))
	for _, a := range resp.Data {
		if product != "" && fold.String(a.ProductName) != want {
			continue
		}
		names = append(names, a.ApplicationName)
	}
	return distinctSorted(names), nil
}

// ReleaseTypes возвращает типы релиза. Пока не заданы арендатор,
// продукт и приложение, список пуст.
func ReleaseTypes(ctx context.Context, src Source, q Query) ([]string, error) {
	if !q.complete() {
		return []string{}, nil
	}
	names, err := src.GetReleaseTypes(ctx, q.Tenant, q.Product, q.Application)
	if err != nil {
		return nil, err
	}
	return distinctSorted(names), nil
}

// PromotionLevels возвращает уровни продвижения при тех же условиях, что ReleaseTypes.
func PromotionLevels(ctx context.Context, src Source, q Query) ([]string, error) {
	if !q.complete() {
		return []string{}, nil
	}
	names, err := src.GetPromotionLevels(ctx, q.Tenant, q.Product, q.Application)
	if err != nil {
		return nil, err
	}
	return distinctSorted(names), nil
}

func (q Query) complete() bool {
	return strings.TrimSpace(q.Tenant) != "" &&
		strings.TrimSpace(q.Product) != "" &&
		strings.TrimSpace(q.Application) != ""
}

func distinctSorted(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return slices.Compact(out)
}
