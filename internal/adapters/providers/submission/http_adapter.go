package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/providers"
	apperrors "github.com/Shehabmohammed598/med-appoint-muse-sub000/pkg/errors"
)

// HTTPAdapter implements SubmissionProvider against the hosted backend's
// REST table endpoints.
type HTTPAdapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPAdapter creates a new HTTP submission adapter
func NewHTTPAdapter(baseURL, apiKey string, timeout time.Duration) providers.SubmissionProvider {
	return &HTTPAdapter{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// SubmitAppointment inserts a regular appointment row
func (a *HTTPAdapter) SubmitAppointment(ctx context.Context, sub providers.AppointmentSubmission) error {
	return a.post(ctx, "/rest/v1/appointments", sub)
}

// SubmitEmergencyRequest inserts an emergency request row
func (a *HTTPAdapter) SubmitEmergencyRequest(ctx context.Context, sub providers.EmergencySubmission) error {
	return a.post(ctx, "/rest/v1/emergency_requests", sub)
}

func (a *HTTPAdapter) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal submission", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return apperrors.NewInternalError("failed to build submission request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
		req.Header.Set("apikey", a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return apperrors.NewSubmissionError("submission request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperrors.NewSubmissionError(
			fmt.Sprintf("backend rejected submission: status %d", resp.StatusCode),
			fmt.Errorf("%s", detail),
		)
	}

	return nil
}
