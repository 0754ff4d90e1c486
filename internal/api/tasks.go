package api

import (
	"context"
	"fmt"
	"net/http"

	"taskdeck/internal/model"
)

// Tasks lists the signed-in user's tasks across projects.
func (c *Client) Tasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectTasks lists all tasks belonging to one project.
func (c *Client) ProjectTasks(ctx context.Context, projectID int64) ([]model.Task, error) {
	var out []model.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/project/%d", projectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTask(ctx context.Context, t model.Task) (model.Task, error) {
	var out model.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", t, &out); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int64, t model.Task) (model.Task, error) {
	var out model.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), t, &out); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}
