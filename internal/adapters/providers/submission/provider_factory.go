package submission

import (
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/providers"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/pkg/config"
)

// NewSubmissionProvider creates the remote submission capability from
// configuration. Without a backend URL the mock provider is used for local
// development.
func NewSubmissionProvider(cfg config.SubmissionConfig) providers.SubmissionProvider {
	if cfg.BaseURL == "" {
		return NewMockAdapter()
	}
	return NewHTTPAdapter(cfg.BaseURL, cfg.APIKey, cfg.Timeout)
}
