package model

// JiraIssue represents a Jira issue as returned by the REST API
type JiraIssue struct {
	Key    string     `json:"key"`
	Fields JiraFields `json:"fields"`
}

// JiraFields represents the fields in a Jira issue. Nested objects are
// pointers because Jira omits or nulls them when a field is unset.
type JiraFields struct {
	Summary     string     `json:"summary"`
	Description string     `json:"description"`
	Status      *JiraNamed `json:"status"`
	Priority    *JiraNamed `json:"priority"`
	Assignee    *JiraUser  `json:"assignee"`
	Reporter    *JiraUser  `json:"reporter"`
	Created     string     `json:"created"`
	Updated     string     `json:"updated"`
}

// JiraNamed is any Jira field object carrying a display name (status, priority)
type JiraNamed struct {
	Name string `json:"name"`
}

// JiraUser represents a Jira user
type JiraUser struct {
	DisplayName string `json:"displayName"`
}

// JiraSearchResponse represents the response from a Jira search
type JiraSearchResponse struct {
	StartAt    int         `json:"startAt"`
	MaxResults int         `json:"maxResults"`
	Total      int         `json:"total"`
	Issues     []JiraIssue `json:"issues"`
}

// JiraProject represents a Jira project summary
type JiraProject struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// ServerInfo represents the Jira server info endpoint response
type ServerInfo struct {
	BaseURL     string `json:"baseUrl"`
	Version     string `json:"version"`
	ServerTitle string `json:"serverTitle"`
}

// Ticket is the flattened issue shape used throughout the app. Optional
// fields are nil when the source issue does not carry them.
type Ticket struct {
	Key      string  `json:"key"`
	Summary  string  `json:"summary"`
	Status   *string `json:"status"`
	Priority *string `json:"priority"`
	Assignee *string `json:"assignee"`
	Reporter *string `json:"reporter"`
	Created  *string `json:"created,omitempty"`
	Updated  *string `json:"updated,omitempty"`
}

// FlattenIssue maps a nested Jira issue to the flat Ticket shape
func FlattenIssue(issue JiraIssue) Ticket {
	t := Ticket{
		Key:     issue.Key,
		Summary: issue.Fields.Summary,
	}
	if issue.Fields.Status != nil {
		t.Status = &issue.Fields.Status.Name
	}
	if issue.Fields.Priority != nil {
		t.Priority = &issue.Fields.Priority.Name
	}
	if issue.Fields.Assignee != nil {
		t.Assignee = &issue.Fields.Assignee.DisplayName
	}
	if issue.Fields.Reporter != nil {
		t.Reporter = &issue.Fields.Reporter.DisplayName
	}
	if issue.Fields.Created != "" {
		t.Created = &issue.Fields.Created
	}
	if issue.Fields.Updated != "" {
		t.Updated = &issue.Fields.Updated
	}
	return t
}

// FlattenIssues maps a slice of issues, never returning nil
func FlattenIssues(issues []JiraIssue) []Ticket {
	tickets := make([]Ticket, 0, len(issues))
	for _, issue := range issues {
		tickets = append(tickets, FlattenIssue(issue))
	}
	return tickets
}
