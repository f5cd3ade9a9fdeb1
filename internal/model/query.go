package model

// Credentials identify a Jira server and the bearer token used against
// it. They are supplied per call and must never appear in logs or in
// error text returned to the client.
type Credentials struct {
	BaseURL string `json:"jira_url"`
	Token   string `json:"-"`
}

// QueryResult is the terminal shape of the natural-language query
// pipeline. On success JQL, Tickets, Total and Analysis are set; on
// failure JQL carries the query that was attempted and Error/Message
// describe what went wrong.
type QueryResult struct {
	Success  bool     `json:"success"`
	JQL      string   `json:"jql"`
	Tickets  []Ticket `json:"tickets,omitempty"`
	Total    int      `json:"total,omitempty"`
	Analysis string   `json:"analysis,omitempty"`

	// Degraded is set when a recoverable stage (translation, analysis)
	// fell back to a substitute value; Warnings say which.
	Degraded bool     `json:"degraded,omitempty"`
	Warnings []string `json:"warnings,omitempty"`

	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// SuccessResult builds the happy-path query result
func SuccessResult(jql string, tickets []Ticket, total int, analysis string) *QueryResult {
	if tickets == nil {
		tickets = []Ticket{}
	}
	return &QueryResult{
		Success:  true,
		JQL:      jql,
		Tickets:  tickets,
		Total:    total,
		Analysis: analysis,
	}
}

// FailureResult builds the execute-stage failure result
func FailureResult(jql, errText, message string) *QueryResult {
	if message == "" {
		message = "Unknown error"
	}
	return &QueryResult{
		Success: false,
		JQL:     jql,
		Error:   errText,
		Message: message,
	}
}
