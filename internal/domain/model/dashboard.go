package model

// XPTotal is an xp amount together with its display string.
type XPTotal struct {
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
}

// AuditSummary extends the audit totals with their display strings and gauge fill.
type AuditSummary struct {
	AuditAggregate
	UpFormatted   string  `json:"up_formatted"`
	DownFormatted string  `json:"down_formatted"`
	GaugeFraction float64 `json:"gauge_fraction"`
	Band          string  `json:"band"`
}

// ProjectEntry is a project aggregate with its formatted xp.
type ProjectEntry struct {
	Aggregate
	Formatted string `json:"formatted"`
}

// Dashboard is the complete derived view of one account.
// Lists are never nil so that they encode as [] rather than null.
type Dashboard struct {
	User         User           `json:"user"`
	DisplayName  string         `json:"display_name"`
	XP           XPTotal        `json:"xp"`
	Audit        AuditSummary   `json:"audit"`
	Skills       []Aggregate    `json:"skills"`
	Projects     []ProjectEntry `json:"projects"`
	TopProjects  []ProjectEntry `json:"top_projects"`
	Latest       []ProjectEntry `json:"latest_projects"`
	PassFail     PassFail       `json:"pass_fail"`
	Exercises    []Exercise     `json:"exercises"`
	Technologies []Technology   `json:"technologies"`
	// Warnings names the optional queries that fell back to their defaults.
	Warnings []string `json:"warnings"`
}

// DisplayName returns "First Last" when known, otherwise the login.
func (u User) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Login
	}
}
