package api

import (
	"context"
	"fmt"
	"net/http"

	"taskdeck/internal/model"
)

// MyProjects lists the projects visible to the signed-in user.
func (c *Client) MyProjects(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	if err := c.do(ctx, http.MethodGet, "/projects/my-projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Project(ctx context.Context, id int64) (model.Project, error) {
	var out model.Project
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, &out); err != nil {
		return model.Project{}, err
	}
	return out, nil
}

func (c *Client) CreateProject(ctx context.Context, p model.Project) (model.Project, error) {
	var out model.Project
	if err := c.do(ctx, http.MethodPost, "/projects", p, &out); err != nil {
		return model.Project{}, err
	}
	return out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id int64, p model.Project) (model.Project, error) {
	var out model.Project
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/projects/%d", id), p, &out); err != nil {
		return model.Project{}, err
	}
	return out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}

func (c *Client) ProjectStats(ctx context.Context, id int64) (model.ProjectStats, error) {
	var out model.ProjectStats
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/stats", id), nil, &out); err != nil {
		return model.ProjectStats{}, err
	}
	return out, nil
}

func (c *Client) ProjectTeam(ctx context.Context, id int64) ([]model.TeamMember, error) {
	var out []model.TeamMember
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/team", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type addMemberRequest struct {
	UserID int64          `json:"userId"`
	Role   model.TeamRole `json:"role"`
}

func (c *Client) AddTeamMember(ctx context.Context, projectID, userID int64, role model.TeamRole) error {
	req := addMemberRequest{UserID: userID, Role: role}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/projects/%d/team", projectID), req, nil)
}

func (c *Client) RemoveTeamMember(ctx context.Context, projectID, userID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d/team/%d", projectID, userID), nil, nil)
}
