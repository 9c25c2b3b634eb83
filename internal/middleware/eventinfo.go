package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/auth"
	"github.com/Joshua-Anderson1/scoutradioz/internal/common"
	"github.com/Joshua-Anderson1/scoutradioz/internal/db/repositories"
	"github.com/Joshua-Anderson1/scoutradioz/internal/logging"
)

// NoEventDefined is the sentinel event name downstream rendering shows
// when the org has no current event selected.
const NoEventDefined = "No event defined"

// EventInfo is the request-scoped event context consumed by downstream
// rendering. Lookup misses degrade to sentinel values; they never fail
// the request.
type EventInfo struct {
	OrgKey    string
	OrgName   string
	EventKey  string
	EventName string
	Year      int
	TeamKeys  []string
}

type eventInfoCtxKey struct{}

// GetEventInfo returns the event context attached by the EventInfo
// middleware, or nil if the middleware did not run.
func GetEventInfo(ctx context.Context) *EventInfo {
	if info, ok := ctx.Value(eventInfoCtxKey{}).(*EventInfo); ok {
		return info
	}
	return nil
}

// EventInfoMiddleware resolves the signed-in user's org, that org's
// currently selected event, and the event's team roster. Lookups are
// cached briefly since every page render needs them.
func EventInfoMiddleware(orgRepo *repositories.OrgRepository, eventRepo *repositories.EventRepository, cache common.CacheInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info := &EventInfo{EventName: NoEventDefined}

			claims := auth.GetUserClaims(r.Context())
			if claims != nil && claims.OrgKey() != "" {
				resolved, err := cache.GetOrSet(
					"eventinfo:"+claims.OrgKey(),
					60*time.Second,
					func() (any, error) {
						return resolveEventInfo(r.Context(), orgRepo, eventRepo, claims.OrgKey())
					},
				)
				if err != nil {
					logging.Warn("Event info lookup failed, using sentinel values",
						"org_key", claims.OrgKey(),
						"error", err.Error(),
					)
				} else if ei, ok := resolved.(*EventInfo); ok {
					info = ei
				}
			}

			ctx := context.WithValue(r.Context(), eventInfoCtxKey{}, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveEventInfo(ctx context.Context, orgRepo *repositories.OrgRepository, eventRepo *repositories.EventRepository, orgKey string) (*EventInfo, error) {
	info := &EventInfo{OrgKey: orgKey, EventName: NoEventDefined}

	org, err := orgRepo.GetByKey(ctx, orgKey)
	if err != nil {
		return nil, fmt.Errorf("org lookup: %w", err)
	}
	if org == nil {
		return info, nil
	}
	info.OrgName = org.Nickname

	if !org.CurrentEventKey.Valid || org.CurrentEventKey.String == "" {
		return info, nil
	}

	event, err := eventRepo.GetByKey(ctx, org.CurrentEventKey.String)
	if err != nil {
		return nil, fmt.Errorf("event lookup: %w", err)
	}
	if event == nil {
		return info, nil
	}

	info.EventKey = event.Key
	info.EventName = event.Name
	info.Year = event.Year
	info.TeamKeys = event.TeamKeys
	return info, nil
}
