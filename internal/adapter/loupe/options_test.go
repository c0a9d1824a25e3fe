package loupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		relative string
		opts     APIOptions
		want     string
	}{
		{
			name:     "без арендатора",
			baseURL:  "https://us.onloupe.com",
			relative: "auth/token",
			opts:     APIOptions{},
			want:     "https://us.onloupe.com/api/auth/token",
		},
		{
			name:     "завершающий слэш отбрасывается",
			baseURL:  "https://us.onloupe.com/",
			relative: "Tenant/ForUser",
			opts:     APIOptions{},
			want:     "https://us.onloupe.com/api/Tenant/ForUser",
		},
		{
			name:     "арендатор добавляет сегмент Customers",
			baseURL:  "https://us.onloupe.com",
			relative: "ApplicationVersion/GetNew",
			opts:     APIOptions{Tenant: "Acme"},
			want:     "https://us.onloupe.com/Customers/Acme/api/ApplicationVersion/GetNew",
		},
		{
			name:     "пробельный арендатор игнорируется",
			baseURL:  "https://us.onloupe.com",
			relative: "ApplicationVersion/GetNew",
			opts:     APIOptions{Tenant: "   "},
			want:     "https://us.onloupe.com/api/ApplicationVersion/GetNew",
		},
		{
			name:     "арендатор экранируется",
			baseURL:  "https://us.onloupe.com",
			relative: "Tenant/ForUser",
			opts:     APIOptions{Tenant: "Acme Corp"},
			want:     "https://us.onloupe.com/Customers/Acme%20Corp/api/Tenant/ForUser",
		},
		{
			name:     "query string только при IncludeQueryString",
			baseURL:  "https://us.onloupe.com",
			relative: "ApplicationVersion/Versions",
			opts:     NewAPIOptions("", "P", "A").WithQuery(),
			want:     "https://us.onloupe.com/api/ApplicationVersion/Versions?take=0&skip=0&page=1&pageSize=500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildURL(tt.baseURL, tt.relative, tt.opts))
		})
	}
}

func TestAPIOptions_QueryString(t *testing.T) {
	t.Run("выключена", func(t *testing.T) {
		assert.Empty(t, NewAPIOptions("Acme", "", "").QueryString())
	})

	t.Run("порядок параметров", func(t *testing.T) {
		opts := APIOptions{
			IncludeQueryString:   true,
			Take:                 10,
			Skip:                 20,
			Page:                 3,
			PageSize:             50,
			SortKey:              "title",
			SortDirection:        "desc",
			ReleaseTypeID:        "00000000-0000-0000-0000-000000000000",
			ApplicationVersionID: "abc",
		}
		assert.Equal(t,
			"?take=10&skip=20&page=3&pageSize=50&sortKey=title&sortDirection=desc&releaseTypeId=00000000-0000-0000-0000-000000000000&applicationVersionId=abc",
			opts.QueryString())
	})

	t.Run("нулевые page и pageSize заменяются значениями по умолчанию", func(t *testing.T) {
		opts := APIOptions{IncludeQueryString: true}
		assert.Equal(t, "?take=0&skip=0&page=1&pageSize=500", opts.QueryString())
	})
}
