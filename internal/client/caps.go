// ABOUTME: Bottle-cap resource endpoints including defect detection
// ABOUTME: Detection uploads an image as multipart form data

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Cap is an inspected bottle cap.
type Cap struct {
	ID             int    `json:"id"`
	BatchNumber    string `json:"batchNumber"`
	ProductionDate string `json:"productionDate"`
	MachineID      int    `json:"machineId"`
	IsDefective    bool   `json:"isDefective"`
	DefectType     string `json:"defectType,omitempty"`
	InspectionDate string `json:"inspectionDate"`
}

// CapDetection is the result of running defect detection on an image.
type CapDetection struct {
	ID          int     `json:"id"`
	ImageURL    string  `json:"imageUrl"`
	DetectedAt  string  `json:"detectedAt"`
	IsDefective bool    `json:"isDefective"`
	DefectType  string  `json:"defectType,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// CapSummary aggregates inspection counts from /caps/summary.
type CapSummary struct {
	Total     int     `json:"total"`
	Defective int     `json:"defective"`
	Rate      float64 `json:"rate"`
}

// ListCaps calls GET /caps with pagination parameters.
func (c *Client) ListCaps(ctx context.Context, q ListQuery) (*Page[Cap], error) {
	return get[Page[Cap]](c, ctx, "/caps", q.values())
}

// GetCap calls GET /caps/{id}.
func (c *Client) GetCap(ctx context.Context, id int) (*Cap, error) {
	resp, err := get[Envelope[Cap]](c, ctx, fmt.Sprintf("/caps/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateCap calls POST /caps.
func (c *Client) CreateCap(ctx context.Context, cap Cap) (*Cap, error) {
	resp, err := post[Envelope[Cap]](c, ctx, "/caps", cap)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateCap calls PUT /caps/{id}.
func (c *Client) UpdateCap(ctx context.Context, id int, cap Cap) (*Cap, error) {
	resp, err := put[Envelope[Cap]](c, ctx, fmt.Sprintf("/caps/%d", id), cap)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteCap calls DELETE /caps/{id}.
func (c *Client) DeleteCap(ctx context.Context, id int) error {
	_, err := del[Envelope[struct{}]](c, ctx, fmt.Sprintf("/caps/%d", id))
	return err
}

// CapsSummary calls GET /caps/summary.
func (c *Client) CapsSummary(ctx context.Context) (*CapSummary, error) {
	return get[CapSummary](c, ctx, "/caps/summary", nil)
}

// DetectCap uploads an image to POST /caps/detect for defect analysis.
func (c *Client) DetectCap(ctx context.Context, filename string, image io.Reader) (*CapDetection, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/caps/detect", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := send[Envelope[CapDetection]](c, ctx, req, true)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DetectionHistory calls GET /caps/detect/history.
func (c *Client) DetectionHistory(ctx context.Context, page, size int) (*Page[CapDetection], error) {
	q := ListQuery{Page: page, Size: size, Sort: "id,desc"}
	return get[Page[CapDetection]](c, ctx, "/caps/detect/history", q.values())
}
