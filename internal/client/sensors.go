// ABOUTME: Sensor resource endpoints
// ABOUTME: Paginated list plus CRUD and the fleet summary

package client

import (
	"context"
	"fmt"
)

// Sensor is a monitoring sensor attached to a machine.
type Sensor struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Location    string  `json:"location"`
	MachineID   int     `json:"machineId"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	Status      string  `json:"status"`
	LastReading string  `json:"lastReading"`
}

// SensorSummary aggregates fleet counts from /sensors/summary.
type SensorSummary struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	Inactive    int `json:"inactive"`
	Maintenance int `json:"maintenance"`
}

// ListSensors calls GET /sensors with pagination parameters.
func (c *Client) ListSensors(ctx context.Context, q ListQuery) (*Page[Sensor], error) {
	return get[Page[Sensor]](c, ctx, "/sensors", q.values())
}

// GetSensor calls GET /sensors/{id}.
func (c *Client) GetSensor(ctx context.Context, id int) (*Sensor, error) {
	resp, err := get[Envelope[Sensor]](c, ctx, fmt.Sprintf("/sensors/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateSensor calls POST /sensors.
func (c *Client) CreateSensor(ctx context.Context, sensor Sensor) (*Sensor, error) {
	resp, err := post[Envelope[Sensor]](c, ctx, "/sensors", sensor)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateSensor calls PUT /sensors/{id}.
func (c *Client) UpdateSensor(ctx context.Context, id int, sensor Sensor) (*Sensor, error) {
	resp, err := put[Envelope[Sensor]](c, ctx, fmt.Sprintf("/sensors/%d", id), sensor)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteSensor calls DELETE /sensors/{id}.
func (c *Client) DeleteSensor(ctx context.Context, id int) error {
	_, err := del[Envelope[struct{}]](c, ctx, fmt.Sprintf("/sensors/%d", id))
	return err
}

// SensorsSummary calls GET /sensors/summary.
func (c *Client) SensorsSummary(ctx context.Context) (*SensorSummary, error) {
	return get[SensorSummary](c, ctx, "/sensors/summary", nil)
}
