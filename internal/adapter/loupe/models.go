package loupe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/araddon/dateparse"
)

// -------------------------------------------------------------------
// Структуры данных Loupe API
// -------------------------------------------------------------------

// AuthenticationToken — ответ auth/token.
type AuthenticationToken struct {
	// Token — session token для заголовка Authorization
	Token string `json:"access_token"`
	// ExpiresIn — время жизни токена в секундах
	ExpiresIn int64 `json:"expires_in"`
}

// Timestamp — дата/время Loupe API.
// Сервер отдаёт даты как с часовым поясом, так и без него ("2024-03-01T00:00:00"),
// поэтому разбор выполняется через dateparse в UTC.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON разбирает дату в любом из форматов, которые отдаёт Loupe.
// Нераспознанная строка даёт нулевое время; ошибкой считается только не-строка.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("дата должна быть строкой: %w", err)
	}
	if raw == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		slog.Debug("Дата Loupe не распознана, используется нулевое значение",
			slog.String("value", raw), slog.String("error", err.Error()))
		*t = Timestamp{}
		return nil
	}
	t.Time = parsed.UTC()
	return nil
}

// MarshalJSON сериализует дату в RFC 3339; нулевое значение — null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// ApplicationVersion — запись версии приложения.
// PromotionLevel и ReleaseType содержат идентификаторы элементов справочников;
// nil сериализуется как null и снимает значение на сервере.
type ApplicationVersion struct {
	ID              string     `json:"id"`
	Version         string     `json:"version"`
	Caption         string     `json:"caption"`
	Description     string     `json:"description"`
	DisplayVersion  string     `json:"displayVersion"`
	PromotionLevel  *string    `json:"promotionLevel"`
	ReleaseDate     *Timestamp `json:"releaseDate,omitempty"`
	ReleaseNotesURL string     `json:"releaseNotesUrl"`
	ReleaseType     *string    `json:"releaseType"`
}

// ListItem — элемент справочника (уровень продвижения, тип релиза).
type ListItem struct {
	ID      string `json:"id"`
	Caption string `json:"caption"`
}

// VersionLists — справочники, которые сервер возвращает вместе с версией.
type VersionLists struct {
	PromotionLevels []ListItem `json:"promotionLevels"`
	ReleaseTypes    []ListItem `json:"releaseTypes"`
}

// GetApplicationVersionResponse — ответ ApplicationVersion/Get и ApplicationVersion/GetNew.
type GetApplicationVersionResponse struct {
	Version ApplicationVersion `json:"version"`
	Lists   VersionLists       `json:"lists"`
}

// VersionTitle — вложенный объект version в элементе списка версий.
type VersionTitle struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	ID    string `json:"id,omitempty"`
}

// VersionSummary — элемент списка ApplicationVersion/Versions.
type VersionSummary struct {
	ID      string       `json:"id"`
	Caption string       `json:"caption"`
	Version VersionTitle `json:"version"`
}

// ApplicationVersionsResponse — ответ ApplicationVersion/Versions.
type ApplicationVersionsResponse struct {
	Data     []VersionSummary `json:"data"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// Tenant — арендатор, доступный пользователю.
type Tenant struct {
	TenantName string `json:"tenantName"`
}

// TenantsForUserResponse — ответ Tenant/ForUser.
type TenantsForUserResponse struct {
	Tenants []Tenant `json:"tenants"`
}

// ProductApplication — пара продукт/приложение.
type ProductApplication struct {
	ProductName     string `json:"productName"`
	ApplicationName string `json:"applicationName"`
}

// ApplicationsResponse — ответ Application/AllProductsAndApplications.
type ApplicationsResponse struct {
	Data []ProductApplication `json:"data"`
}

// IssueCaption — заголовок проблемы со ссылкой на страницу в Loupe.
type IssueCaption struct {
	Status       string `json:"status"`
	IsSuppressed bool   `json:"isSuppressed"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ID           string `json:"id"`
}

// Email — адрес пользователя Loupe.
type Email struct {
	Address string `json:"address"`
	Hash    string `json:"hash"`
}

// PersonRef — ссылка на пользователя (автор, последний редактор, исполнитель).
type PersonRef struct {
	Email *Email `json:"email,omitempty"`
	Title string `json:"title"`
	URL   string `json:"url"`
	ID    string `json:"id"`
}

// Issue — проблема, зарегистрированная для версии приложения.
type Issue struct {
	ID              string          `json:"id"`
	Caption         IssueCaption    `json:"caption"`
	Status          string          `json:"status"`
	AddedBy         *PersonRef      `json:"addedBy,omitempty"`
	AddedOn         Timestamp       `json:"addedOn"`
	UpdatedBy       *PersonRef      `json:"updatedBy,omitempty"`
	UpdatedOn       Timestamp       `json:"updatedOn"`
	LastOccurredOn  Timestamp       `json:"lastOccurredOn"`
	AssignedTo      *PersonRef      `json:"assignedTo,omitempty"`
	Endpoints       int             `json:"endpoints"`
	Sessions        int             `json:"sessions"`
	Occurrences     int             `json:"occurrences"`
	Users           int             `json:"users"`
	FixedInVersion  json.RawMessage `json:"fixedInVersion,omitempty"`
	ProductName     string          `json:"productName"`
	ApplicationName string          `json:"applicationName"`

	// Closed выставляется клиентом: проблема получена из списка закрытых.
	Closed bool `json:"-"`
}

// IssuesForApplicationsResponse — ответ Issues/OpenForApplication и Issues/ClosedForApplication.
type IssuesForApplicationsResponse struct {
	Data     []Issue `json:"data"`
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"pageSize"`
}

// apiErrorResponse — тело ошибки Loupe API.
type apiErrorResponse struct {
	Message string `json:"message"`
}

// -------------------------------------------------------------------
// Опции операций
// -------------------------------------------------------------------

// VersionOptions задаёт изменяемые поля версии.
// Применяются только non-nil поля.
type VersionOptions struct {
	Caption               *string
	Description           *string
	DisplayVersion        *string
	PromotionLevelCaption *string
	ReleaseDate           *time.Time
	ReleaseNotesURL       *string
	ReleaseTypeCaption    *string
}

// String возвращает многострочное описание опций для отладочного журнала.
func (o VersionOptions) String() string {
	date := ""
	if o.ReleaseDate != nil {
		date = o.ReleaseDate.Format(time.RFC3339)
	}
	return fmt.Sprintf("Description: %s\nPromotionLevelCaption: %s\nReleaseNotesUrl: %s\nCaption: %s\nDisplayVersion: %s\nReleaseDate: %s\nReleaseTypeCaption: %s",
		deref(o.Description), deref(o.PromotionLevelCaption), deref(o.ReleaseNotesURL),
		deref(o.Caption), deref(o.DisplayVersion), date, deref(o.ReleaseTypeCaption))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr возвращает указатель на s или nil для пустой строки.
// Используется при сборке VersionOptions из необязательных параметров.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
