package auth

import "github.com/Joshua-Anderson1/scoutradioz/internal/constants"

// UserClaims is the identity attached to an authenticated request.
type UserClaims interface {
	UserID() string
	Name() string
	OrgKey() string
	AccessLevel() constants.AccessLevel
	// Anonymous reports whether this is the shared per-org default
	// identity rather than a signed-in individual.
	Anonymous() bool
}

// SessionClaims is the identity loaded from a server-side session.
type SessionClaims struct {
	UserIDVal      string
	NameVal        string
	OrgKeyVal      string
	AccessLevelVal constants.AccessLevel
}

func (c *SessionClaims) UserID() string                     { return c.UserIDVal }
func (c *SessionClaims) Name() string                       { return c.NameVal }
func (c *SessionClaims) OrgKey() string                     { return c.OrgKeyVal }
func (c *SessionClaims) AccessLevel() constants.AccessLevel { return c.AccessLevelVal }
func (c *SessionClaims) Anonymous() bool                    { return c.NameVal == DefaultUserName }

// DefaultUserName is the shared per-org identity a device assumes after
// org selection but before an individual signs in.
const DefaultUserName = "default_user"

// DefaultClaims is the anonymous per-org identity. It carries the
// lowest access level.
type DefaultClaims struct {
	OrgKeyVal string
}

func (c *DefaultClaims) UserID() string                     { return "" }
func (c *DefaultClaims) Name() string                       { return DefaultUserName }
func (c *DefaultClaims) OrgKey() string                     { return c.OrgKeyVal }
func (c *DefaultClaims) AccessLevel() constants.AccessLevel { return constants.AccessViewer }
func (c *DefaultClaims) Anonymous() bool                    { return true }
