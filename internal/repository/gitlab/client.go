package gitlab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hasura/go-graphql-client"

	"hufschlaeger.net/task-records/internal/config"
	gitlabDomain "hufschlaeger.net/task-records/internal/domain/gitlab"
)

const PageSize = 100

type authTransport struct {
	token string
	base  http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(req)
}

type Repository struct {
	config *config.Config
	client *graphql.Client
	logger *slog.Logger
}

func NewRepository(cfg *config.Config, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &authTransport{
			token: cfg.GitLabToken,
			base:  http.DefaultTransport,
		},
	}

	return &Repository{
		config: cfg,
		client: graphql.NewClient(cfg.GetGitLabBaseURL()+"/api/graphql", httpClient),
		logger: logger,
	}
}

// GetIssues holt alle Issues eines Projekts, seitenweise über den GraphQL-Cursor.
// Ein Milestone von nil, "" oder "*" bedeutet: kein Filter.
func (r *Repository) GetIssues(ctx context.Context, projectPath string, milestoneTitle *string) ([]gitlabDomain.Issue, error) {
	var all []gitlabDomain.Issue
	var after *string

	milestones := []graphql.String{}
	if milestoneTitle != nil && *milestoneTitle != "" && *milestoneTitle != "*" {
		milestones = append(milestones, graphql.String(*milestoneTitle))
	}

	for {
		var query gitlabDomain.ProjectQuery
		variables := map[string]interface{}{
			"projectPath":    graphql.ID(projectPath),
			"first":          graphql.Int(PageSize),
			"after":          (*graphql.String)(after),
			"milestoneTitle": milestones,
		}

		r.logger.Debug("GitLab GraphQL query", "project", projectPath, "after", after)

		if err := r.client.Query(ctx, &query, variables); err != nil {
			return nil, fmt.Errorf("GraphQL query fehler: %w", err)
		}

		issues := query.Project.Issues.Nodes
		all = append(all, issues...)

		if !query.Project.Issues.PageInfo.HasNextPage {
			break
		}
		after = query.Project.Issues.PageInfo.EndCursor
		if after == nil {
			break
		}
	}

	return all, nil
}

// ValidateConnection prüft ob Token und URL funktionieren
func (r *Repository) ValidateConnection(ctx context.Context) error {
	var query gitlabDomain.CurrentUserQuery
	if err := r.client.Query(ctx, &query, nil); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	if query.CurrentUser == nil {
		return errors.New("invalid GitLab token")
	}
	return nil
}
