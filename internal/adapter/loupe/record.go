package loupe

import (
	"strings"
	"time"
)

// IssueRecord — проблема в виде, в котором её получает CI-хост.
type IssueRecord struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	Title         string    `json:"title"`
	Submitter     string    `json:"submitter"`
	SubmittedDate time.Time `json:"submitted_date"`
	URL           string    `json:"url"`
	Closed        bool      `json:"closed"`
}

// NewIssueRecord строит IssueRecord; URL = baseURL + "/" + caption.url.
func NewIssueRecord(baseURL string, issue Issue) IssueRecord {
	submitter := ""
	if issue.AddedBy != nil {
		submitter = issue.AddedBy.Title
	}
	return IssueRecord{
		ID:            issue.ID,
		Status:        issue.Status,
		Title:         issue.Caption.Title,
		Submitter:     submitter,
		SubmittedDate: issue.AddedOn.Time,
		URL:           strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(issue.Caption.URL, "/"),
		Closed:        issue.Closed,
	}
}

// NewIssueRecords преобразует список проблем.
func NewIssueRecords(baseURL string, issues []Issue) []IssueRecord {
	records := make([]IssueRecord, 0, len(issues))
	for _, issue := range issues {
		records = append(records, NewIssueRecord(baseURL, issue))
	}
	return records
}
