package loupetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/loupe-ci/internal/adapter/loupe"
)

func TestMockClient_Defaults(t *testing.T) {
	ctx := context.Background()
	m := NewMockClient()

	token, err := m.Authenticate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test-token", token.Token)

	found, err := m.FindVersion(ctx, "", "1.0", "P", "A")
	require.NoError(t, err)
	assert.Nil(t, found)

	created, err := m.CreateVersion(ctx, "", "P", "A", "1.0", loupe.VersionOptions{
		ReleaseTypeCaption: loupe.StringPtr("minor"),
	})
	require.NoError(t, err)
	assert.Equal(t, loupe.StringPtr(ReleaseTypeMinor), created.ReleaseType)

	apps, err := m.GetApplications(ctx, "")
	require.NoError(t, err)
	assert.Len(t, apps.Data, 4)

	assert.Equal(t, MockBaseURL, m.BaseURL())
}

func TestMockClient_Overrides(t *testing.T) {
	wantErr := errors.New("boom")
	m := &MockClient{
		GetIssuesFunc: func(context.Context, string, string, string, string) ([]loupe.Issue, error) {
			return nil, wantErr
		},
		BaseURLValue: "https://other",
	}

	_, err := m.GetIssues(context.Background(), "", "1.*", "P", "A")
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, "https://other", m.BaseURL())
}

func TestIssueData(t *testing.T) {
	issues := IssueData()
	require.Len(t, issues, 2)
	assert.False(t, issues[0].Closed)
	assert.True(t, issues[1].Closed)
}
