package graphql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/xpdash/internal/domain/model"
	"github.com/okian/xpdash/pkg/logger"
	"github.com/okian/xpdash/pkg/metrics"
)

// Query names used for metrics, logs and fallback warnings.
const (
	QueryUser         = "user"
	QueryProjects     = "projects"
	QueryXP           = "xp"
	QueryAudit        = "audit"
	QuerySkills       = "skills"
	QueryPiscine      = "piscine"
	QueryTechnologies = "technologies"
)

// Skill query shapes, tried in order.
const (
	SkillShapeAndLike = "and_like"
	SkillShapeILike   = "ilike"
)

const userQuery = `{
  user {
    id
    login
    email
    firstName
    lastName
  }
}`

const projectsQuery = `{
  transaction(
    where: { type: { _eq: "xp" }, object: { type: { _eq: "project" } } }
    order_by: { createdAt: desc }
  ) {
    id
    type
    amount
    objectId
    path
    createdAt
    object { name type }
  }
}`

const xpQuery = `query($path: String!) {
  transaction(
    where: { type: { _eq: "xp" }, event: { path: { _ilike: $path } } }
  ) {
    id
    type
    amount
    objectId
    path
    createdAt
    event { path }
  }
}`

const xpQueryAll = `{
  transaction(where: { type: { _eq: "xp" } }) {
    id
    type
    amount
    objectId
    path
    createdAt
    event { path }
  }
}`

const auditQuery = `query($path: String!) {
  transaction(
    where: { type: { _in: ["up", "down"] }, event: { path: { _ilike: $path } } }
  ) {
    id
    type
    amount
    path
    event { path }
  }
}`

const auditQueryAll = `{
  transaction(where: { type: { _in: ["up", "down"] } }) {
    id
    type
    amount
    path
    event { path }
  }
}`

const skillsAndLikeQuery = `{
  transaction(
    where: { _and: [{ type: { _like: "skill_%" } }] }
    distinct_on: [type]
    order_by: { type: asc, amount: desc }
  ) {
    id
    type
    amount
  }
}`

const skillsILikeQuery = `{
  transaction(
    where: { type: { _ilike: "skill_%" } }
    distinct_on: [type]
    order_by: { type: asc, amount: desc }
  ) {
    id
    type
    amount
  }
}`

const piscineQuery = `query($paths: [progress_bool_exp!]) {
  progress(
    where: { _or: $paths }
    order_by: { createdAt: desc }
  ) {
    id
    grade
    objectId
    path
    createdAt
    object { name type }
  }
}`

const technologiesQuery = `{
  progress(where: { object: { type: { _eq: "project" } } }) {
    id
    grade
    objectId
    path
    createdAt
    object { name type }
  }
  transaction(
    where: {
      type: { _eq: "xp" }
      _or: [
        { object: { type: { _eq: "project" } } }
        { path: { _ilike: "%piscine%" } }
      ]
    }
  ) {
    id
    type
    amount
    objectId
    path
    createdAt
    object { name type attrs }
  }
}`

type objectNode struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type eventNode struct {
	Path string `json:"path"`
}

type transactionNode struct {
	ID        int64       `json:"id"`
	Type      string      `json:"type"`
	Amount    float64     `json:"amount"`
	ObjectID  int64       `json:"objectId"`
	Path      string      `json:"path"`
	CreatedAt string      `json:"createdAt"`
	Object    *objectNode `json:"object"`
	Event     *eventNode  `json:"event"`
}

type progressNode struct {
	ID        int64       `json:"id"`
	Grade     *float64    `json:"grade"`
	ObjectID  int64       `json:"objectId"`
	Path      string      `json:"path"`
	CreatedAt string      `json:"createdAt"`
	Object    *objectNode `json:"object"`
}

// record converts the node. With eventPath set the event path replaces the
// transaction path, since path filters apply to the event.
func (n transactionNode) record(eventPath bool) model.TransactionRecord {
	r := model.TransactionRecord{
		ID:        n.ID,
		Type:      n.Type,
		Amount:    n.Amount,
		ObjectID:  n.ObjectID,
		Path:      n.Path,
		CreatedAt: parseTime(n.CreatedAt),
	}
	if n.Object != nil {
		r.ObjectName = n.Object.Name
		r.ObjectType = n.Object.Type
	}
	if eventPath && n.Event != nil && n.Event.Path != "" {
		r.Path = n.Event.Path
	}
	return r
}

func (n progressNode) record() model.ProgressRecord {
	r := model.ProgressRecord{
		ID:        n.ID,
		Grade:     model.UngradedGrade,
		ObjectID:  n.ObjectID,
		Path:      n.Path,
		CreatedAt: parseTime(n.CreatedAt),
	}
	if n.Grade != nil {
		r.Grade = *n.Grade
	}
	if n.Object != nil {
		r.ObjectName = n.Object.Name
		r.ObjectType = n.Object.Type
	}
	return r
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func transactions(nodes []transactionNode, eventPath bool) []model.TransactionRecord {
	out := make([]model.TransactionRecord, len(nodes))
	for i, n := range nodes {
		out[i] = n.record(eventPath)
	}
	return out
}

func progress(nodes []progressNode) []model.ProgressRecord {
	out := make([]model.ProgressRecord, len(nodes))
	for i, n := range nodes {
		out[i] = n.record()
	}
	return out
}

// User returns the signed-in account. The API returns a one-element list.
func (c *Client) User(ctx context.Context, token string) (model.User, error) {
	var data struct {
		User []struct {
			ID        int64  `json:"id"`
			Login     string `json:"login"`
			Email     string `json:"email"`
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
		} `json:"user"`
	}
	if err := c.query(ctx, QueryUser, token, userQuery, nil, &data); err != nil {
		return model.User{}, err
	}
	if len(data.User) == 0 || data.User[0].Login == "" {
		return model.User{}, ErrUserNotFound
	}
	u := data.User[0]
	metrics.RecordUpstreamRecords(QueryUser, 1)
	return model.User{
		Login:     u.Login,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}, nil
}

// ProjectTransactions returns xp grants attached to projects, newest first.
func (c *Client) ProjectTransactions(ctx context.Context, token string) ([]model.TransactionRecord, error) {
	var data struct {
		Transaction []transactionNode `json:"transaction"`
	}
	if err := c.query(ctx, QueryProjects, token, projectsQuery, nil, &data); err != nil {
		return nil, err
	}
	metrics.RecordUpstreamRecords(QueryProjects, len(data.Transaction))
	return transactions(data.Transaction, false), nil
}

// XPTransactions returns xp grants whose event path ends with pathSuffix.
// An empty suffix returns every xp grant.
func (c *Client) XPTransactions(ctx context.Context, token, pathSuffix string) ([]model.TransactionRecord, error) {
	var data struct {
		Transaction []transactionNode `json:"transaction"`
	}
	doc, vars := xpQueryAll, map[string]any(nil)
	if pathSuffix != "" {
		doc, vars = xpQuery, map[string]any{"path": "%" + pathSuffix}
	}
	if err := c.query(ctx, QueryXP, token, doc, vars, &data); err != nil {
		return nil, err
	}
	metrics.RecordUpstreamRecords(QueryXP, len(data.Transaction))
	return transactions(data.Transaction, true), nil
}

// AuditTransactions returns audit up and down grants whose event path ends with pathSuffix.
func (c *Client) AuditTransactions(ctx context.Context, token, pathSuffix string) ([]model.TransactionRecord, error) {
	var data struct {
		Transaction []transactionNode `json:"transaction"`
	}
	doc, vars := auditQueryAll, map[string]any(nil)
	if pathSuffix != "" {
		doc, vars = auditQuery, map[string]any{"path": "%" + pathSuffix}
	}
	if err := c.query(ctx, QueryAudit, token, doc, vars, &data); err != nil {
		return nil, err
	}
	metrics.RecordUpstreamRecords(QueryAudit, len(data.Transaction))
	return transactions(data.Transaction, true), nil
}

// SkillTransactions returns the highest grant per skill type.
// The _and/_like shape is tried first; servers that reject it get the _ilike shape.
func (c *Client) SkillTransactions(ctx context.Context, token string) ([]model.TransactionRecord, error) {
	shapes := []struct {
		name string
		doc  string
	}{
		{SkillShapeAndLike, skillsAndLikeQuery},
		{SkillShapeILike, skillsILikeQuery},
	}

	var lastErr error
	for _, shape := range shapes {
		var data struct {
			Transaction []transactionNode `json:"transaction"`
		}
		err := c.query(ctx, QuerySkills, token, shape.doc, nil, &data)
		if err == nil {
			metrics.RecordSkillQueryShape(shape.name)
			metrics.RecordUpstreamRecords(QuerySkills, len(data.Transaction))
			return transactions(data.Transaction, false), nil
		}
		if !errors.Is(err, ErrQuery) {
			return nil, err
		}
		c.logger.Debug(ctx, "skill query shape rejected",
			logger.String("shape", shape.name),
			logger.Error(err),
		)
		lastErr = err
	}
	return nil, fmt.Errorf("no skill query shape accepted: %w", lastErr)
}

// PiscineProgress returns graded attempts whose path contains any of paths.
// No paths means no records.
func (c *Client) PiscineProgress(ctx context.Context, token string, paths []string) ([]model.ProgressRecord, error) {
	if len(paths) == 0 {
		return []model.ProgressRecord{}, nil
	}
	filters := make([]map[string]any, len(paths))
	for i, p := range paths {
		filters[i] = map[string]any{"path": map[string]any{"_ilike": "%" + p + "%"}}
	}

	var data struct {
		Progress []progressNode `json:"progress"`
	}
	if err := c.query(ctx, QueryPiscine, token, piscineQuery, map[string]any{"paths": filters}, &data); err != nil {
		return nil, err
	}
	metrics.RecordUpstreamRecords(QueryPiscine, len(data.Progress))
	return progress(data.Progress), nil
}

// TechnologyData is the raw input of the technology summary.
type TechnologyData struct {
	Progress     []model.ProgressRecord
	Transactions []model.TransactionRecord
}

// TechnologyRecords returns project progress and project or piscine xp grants in one round trip.
func (c *Client) TechnologyRecords(ctx context.Context, token string) (TechnologyData, error) {
	var data struct {
		Progress    []progressNode    `json:"progress"`
		Transaction []transactionNode `json:"transaction"`
	}
	if err := c.query(ctx, QueryTechnologies, token, technologiesQuery, nil, &data); err != nil {
		return TechnologyData{}, err
	}
	metrics.RecordUpstreamRecords(QueryTechnologies, len(data.Progress)+len(data.Transaction))
	return TechnologyData{
		Progress:     progress(data.Progress),
		Transactions: transactions(data.Transaction, false),
	}, nil
}
