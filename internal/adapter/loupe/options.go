package loupe

import (
	"net/url"
	"strconv"
	"strings"
)

// Значения пагинации по умолчанию.
const (
	DefaultPage     = 1
	DefaultPageSize = 500
)

// APIOptions описывает адресацию запроса: арендатор, фильтрующие заголовки и query string.
type APIOptions struct {
	// Tenant — арендатор; пустое значение означает single-tenant установку
	Tenant string

	// Product и Application передаются в заголовках loupe-product / loupe-application
	Product     string
	Application string

	// IncludeQueryString включает пагинацию и фильтры в адрес запроса
	IncludeQueryString   bool
	Take                 int
	Skip                 int
	Page                 int
	PageSize             int
	SortKey              string
	SortDirection        string
	ReleaseTypeID        string
	ApplicationVersionID string
}

// NewAPIOptions возвращает опции с пагинацией по умолчанию.
func NewAPIOptions(tenant, product, application string) APIOptions {
	return APIOptions{
		Tenant:      tenant,
		Product:     product,
		Application: application,
		Page:        DefaultPage,
		PageSize:    DefaultPageSize,
	}
}

// WithQuery возвращает копию опций с включённой query string.
func (o APIOptions) WithQuery() APIOptions {
	o.IncludeQueryString = true
	return o
}

// QueryString формирует query string с ведущим '?'.
// Порядок параметров фиксирован: take, skip, page, pageSize, затем заданные фильтры.
func (o APIOptions) QueryString() string {
	if !o.IncludeQueryString {
		return ""
	}

	page := o.Page
	if page == 0 {
		page = DefaultPage
	}
	pageSize := o.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	var sb strings.Builder
	sb.WriteByte('?')
	writeParam(&sb, "take", strconv.Itoa(o.Take))
	writeParam(&sb, "skip", strconv.Itoa(o.Skip))
	writeParam(&sb, "page", strconv.Itoa(page))
	writeParam(&sb, "pageSize", strconv.Itoa(pageSize))
	if o.SortKey != "" {
		writeParam(&sb, "sortKey", o.SortKey)
	}
	if o.SortDirection != "" {
		writeParam(&sb, "sortDirection", o.SortDirection)
	}
	if o.ReleaseTypeID != "" {
		writeParam(&sb, "releaseTypeId", o.ReleaseTypeID)
	}
	if o.ApplicationVersionID != "" {
		writeParam(&sb, "applicationVersionId", o.ApplicationVersionID)
	}

	return strings.TrimRight(sb.String(), "?&")
}

func writeParam(sb *strings.Builder, key, value string) {
	sb.WriteString(key)
	sb.WriteByte('=')
	sb.WriteString(url.QueryEscape(value))
	sb.WriteByte('&')
}

// BuildURL формирует абсолютный адрес API:
// {baseURL}[/Customers/{tenant}]/api/{relativeURL}{query}.
func BuildURL(baseURL, relativeURL string, opts APIOptions) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(baseURL, "/"))
	if strings.TrimSpace(opts.Tenant) != "" {
		sb.WriteString("/Customers/")
		sb.WriteString(url.PathEscape(opts.Tenant))
	}
	sb.WriteString("/api/")
	sb.WriteString(strings.TrimLeft(relativeURL, "/"))
	sb.WriteString(opts.QueryString())
	return sb.String()
}
