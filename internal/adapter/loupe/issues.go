package loupe

import (
	"context"
	"net/http"
	"regexp"
	"strings"
)

const (
	openIssuesEndpoint   = "Issues/OpenForApplication"
	closedIssuesEndpoint = "Issues/ClosedForApplication"
)

type matchedVersion struct {
	title string
	id    string
}

// CompileVersionPattern преобразует шаблон версии в регулярное выражение.
// '*' соответствует любой последовательности символов, остальные символы
// сравниваются буквально; шаблон привязан к началу и концу строки.
func CompileVersionPattern(spec string) (*regexp.Regexp, error) {
	expr := strings.ReplaceAll(regexp.QuoteMeta(spec), `\*`, ".*")
	return regexp.Compile("(?i)^" + expr + "$")
}

// GetIssues возвращает проблемы версий, подходящих под versionSpec.
// Для каждой версии запрашиваются открытые и закрытые проблемы;
// дубликаты по ID объединяются, признак закрытия имеет приоритет.
func (c *APIClient) GetIssues(ctx context.Context, tenant, versionSpec, product, application string) ([]Issue, error) {
	if strings.TrimSpace(versionSpec) == "" {
		return nil, NewValidationError("Version", "не указана версия")
	}

	token, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	matches, err := c.matchVersions(ctx, token, tenant, versionSpec, product, application)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Найдено подходящих версий", "count", len(matches))

	issues := make([]Issue, 0)
	index := make(map[string]int)
	add := func(list []Issue, closed bool) {
		for _, issue := range list {
			if i, seen := index[issue.ID]; seen && issue.ID != "" {
				if closed {
					issues[i].Closed = true
				}
				continue
			}
			issue.Closed = closed
			if issue.ID != "" {
				index[issue.ID] = len(issues)
			}
			issues = append(issues, issue)
		}
	}

	for _, mv := range matches {
		open, err := c.issuesForVersion(ctx, token, tenant, mv.id, openIssuesEndpoint)
		if err != nil {
			return nil, err
		}
		closed, err := c.issuesForVersion(ctx, token, tenant, mv.id, closedIssuesEndpoint)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("Проблемы версии", "version", mv.title, "open", len(open), "closed", len(closed))
		add(open, false)
		add(closed, true)
	}

	return issues, nil
}

func (c *APIClient) matchVersions(ctx context.Context, token *AuthenticationToken, tenant, versionSpec, product, application string) ([]matchedVersion, error) {
	if !strings.Contains(versionSpec, "*") {
		c.logger.Info("Поиск версии", "version", versionSpec)
		found, err := c.findVersion(ctx, token, tenant, versionSpec, product, application)
		if err != nil {
			return nil, err
		}
		if found == nil {
			return nil, nil
		}
		return []matchedVersion{{title: found.Version.Caption, id: found.Version.ID}}, nil
	}

	c.logger.Info("Поиск версий по шаблону", "pattern", versionSpec)
	pattern, err := CompileVersionPattern(versionSpec)
	if err != nil {
		return nil, NewValidationError("Version", "некорректный шаблон версии: "+err.Error())
	}

	versions, err := c.getVersions(ctx, token, tenant, product, application)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Кандидатов для сопоставления", "count", len(versions.Data))

	var matches []matchedVersion
	for _, v := range versions.Data {
		if pattern.MatchString(v.Caption) {
			matches = append(matches, matchedVersion{title: v.Caption, id: v.ID})
		}
	}
	return matches, nil
}

// issuesForVersion запрашивает один список проблем версии.
// 404 означает отсутствие проблем; прочие ошибки API пишутся в журнал
// и дают пустой список. Ошибка возвращается только при отмене контекста.
func (c *APIClient) issuesForVersion(ctx context.Context, token *AuthenticationToken, tenant, versionID, endpoint string) ([]Issue, error) {
	opts := NewAPIOptions(tenant, "", "").WithQuery()
	opts.ApplicationVersionID = compactID(versionID)

	resp, err := invoke[IssuesForApplicationsResponse](ctx, c, token, http.MethodGet, endpoint, opts, nil)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if StatusCode(err) == http.StatusNotFound {
			return nil, nil
		}
		c.logger.Debug("Не удалось получить проблемы версии",
			"version_id", versionID,
			"endpoint", endpoint,
			"error", FullMessage(err),
		)
		return nil, nil
	}
	return resp.Data, nil
}
