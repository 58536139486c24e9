// ABOUTME: Machine resource endpoints
// ABOUTME: The plain list endpoint returns a bare array, unlike the others

package client

import (
	"context"
	"net/url"
)

// Machine is a production machine on the factory floor.
type Machine struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Model            string  `json:"model"`
	Description      string  `json:"description"`
	Status           string  `json:"status"`
	SerialNumber     string  `json:"serialNumber"`
	InstallationDate string  `json:"installationDate"`
	Temperature      float64 `json:"temperature"`
	LastMaintenance  string  `json:"lastMaintenance"`
}

// MachineSummary aggregates fleet counts from /machines/summary.
type MachineSummary struct {
	Total       int `json:"total"`
	Running     int `json:"running"`
	Stopped     int `json:"stopped"`
	Maintenance int `json:"maintenance"`
}

// ListAllMachines calls GET /machines, which returns an unwrapped array.
func (c *Client) ListAllMachines(ctx context.Context, sort, filter string) ([]Machine, error) {
	v := url.Values{}
	if sort == "" {
		sort = "id,desc"
	}
	v.Set("sort", sort)
	if filter != "" {
		v.Set("filter", filter)
	}
	resp, err := get[[]Machine](c, ctx, "/machines", v)
	if err != nil {
		return nil, err
	}
	return *resp, nil
}

// GetMachine calls GET /machines/{id}.
func (c *Client) GetMachine(ctx context.Context, id string) (*Machine, error) {
	resp, err := get[Envelope[Machine]](c, ctx, "/machines/"+id, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateMachine calls POST /machines.
func (c *Client) CreateMachine(ctx context.Context, machine Machine) (*Machine, error) {
	resp, err := post[Envelope[Machine]](c, ctx, "/machines", machine)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateMachine calls PUT /machines/{id}.
func (c *Client) UpdateMachine(ctx context.Context, id string, machine Machine) (*Machine, error) {
	resp, err := put[Envelope[Machine]](c, ctx, "/machines/"+id, machine)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteMachine calls DELETE /machines/{id}.
func (c *Client) DeleteMachine(ctx context.Context, id string) error {
	_, err := del[Envelope[struct{}]](c, ctx, "/machines/"+id)
	return err
}

// MachinesSummary calls GET /machines/summary.
func (c *Client) MachinesSummary(ctx context.Context) (*MachineSummary, error) {
	return get[MachineSummary](c, ctx, "/machines/summary", nil)
}
