package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/constants"
	"github.com/Joshua-Anderson1/scoutradioz/internal/localstore"
)

// FetchError is a network or malformed-response failure from the
// scouting API. No local state has been touched when it is returned;
// the operation is safe to retry.
type FetchError struct {
	Code       string
	Message    string
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.Endpoint, e.Message, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.Endpoint, e.Message)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ScoutAPIProvider is the HTTP client for the remote scouting data API.
type ScoutAPIProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewScoutAPIProvider creates a new scouting API provider
func NewScoutAPIProvider() *ScoutAPIProvider {
	baseURL := os.Getenv("SCOUT_API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://scoutradioz.com/api" // Default
	}

	return &ScoutAPIProvider{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetEvent fetches the event document for an event key
func (p *ScoutAPIProvider) GetEvent(ctx context.Context, eventKey string) (*localstore.Event, error) {
	if eventKey == "" {
		return nil, &FetchError{
			Code:    constants.ErrCodeInvalidRequest,
			Message: "event key cannot be empty",
		}
	}

	var event localstore.Event
	if err := p.doGET(ctx, "/"+eventKey, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// GetTeams fetches the participating teams for an event
func (p *ScoutAPIProvider) GetTeams(ctx context.Context, eventKey string) ([]localstore.Team, error) {
	if eventKey == "" {
		return nil, &FetchError{
			Code:    constants.ErrCodeInvalidRequest,
			Message: "event key cannot be empty",
		}
	}

	var teams []localstore.Team
	if err := p.doGET(ctx, fmt.Sprintf("/%s/teams", eventKey), &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// GetMatches fetches the light match schedule for an event
func (p *ScoutAPIProvider) GetMatches(ctx context.Context, eventKey string) ([]localstore.LightMatch, error) {
	if eventKey == "" {
		return nil, &FetchError{
			Code:    constants.ErrCodeInvalidRequest,
			Message: "event key cannot be empty",
		}
	}

	var matches []localstore.LightMatch
	if err := p.doGET(ctx, fmt.Sprintf("/%s/matches", eventKey), &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// GetMatchScoutingAssignments fetches match scouting assignments for an
// org at an event
func (p *ScoutAPIProvider) GetMatchScoutingAssignments(ctx context.Context, orgKey, eventKey string) ([]localstore.MatchScoutingRecord, error) {
	if orgKey == "" || eventKey == "" {
		return nil, &FetchError{
			Code:    constants.ErrCodeInvalidRequest,
			Message: "org key and event key cannot be empty",
		}
	}

	var records []localstore.MatchScoutingRecord
	endpoint := fmt.Sprintf("/orgs/%s/%s/assignments/match", orgKey, eventKey)
	if err := p.doGET(ctx, endpoint, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetLayout fetches the form layout elements for an org, year and form
// type (match or pit)
func (p *ScoutAPIProvider) GetLayout(ctx context.Context, orgKey string, year int, formType string) ([]localstore.LayoutElement, error) {
	if orgKey == "" {
		return nil, &FetchError{
			Code:    constants.ErrCodeInvalidRequest,
			Message: "org key cannot be empty",
		}
	}

	var kind string
	switch formType {
	case constants.FormTypeMatch:
		kind = "match"
	case constants.FormTypePit:
		kind = "pit"
	default:
		return nil, &FetchError{
			Code:    constants.ErrCodeInvalidRequest,
			Message: fmt.Sprintf("unknown form type %q", formType),
		}
	}

	var elements []localstore.LayoutElement
	endpoint := fmt.Sprintf("/orgs/%s/%d/layout/%s", orgKey, year, kind)
	if err := p.doGET(ctx, endpoint, &elements); err != nil {
		return nil, err
	}
	return elements, nil
}

// doGET performs a GET request and decodes the JSON response
func (p *ScoutAPIProvider) doGET(ctx context.Context, endpoint string, result interface{}) error {
	url := p.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return &FetchError{
			Code:     constants.ErrCodeNetworkError,
			Message:  "failed to create request",
			Endpoint: endpoint,
			Err:      err,
		}
	}

	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return &FetchError{
			Code:     constants.ErrCodeNetworkError,
			Message:  constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Endpoint: endpoint,
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{
			Code:       constants.ErrCodeBadStatus,
			Message:    fmt.Sprintf("unexpected status %d", resp.StatusCode),
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &FetchError{
			Code:       constants.ErrCodeMalformedResponse,
			Message:    constants.GetErrorMessage(constants.ErrCodeMalformedResponse),
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	return nil
}
