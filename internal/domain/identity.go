package domain

import "strings"

type Capability string

const CapabilitySuperAdmin Capability = "super_admin"

// Identity is what the credential verifier vouches for. It is derived from
// the bearer token on every request and never persisted.
type Identity struct {
	SubjectID    string
	Email        string
	Capabilities []Capability
}

func (i Identity) Has(capability Capability) bool {
	for _, c := range i.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// Actor is the verified caller of a gated operation.
type Actor struct {
	SubjectID    string   `json:"subjectId"`
	Email        string   `json:"email"`
	Profile      *Profile `json:"profile"`
	IsSuperAdmin bool     `json:"isSuperAdmin"`
}

func (a *Actor) Role() Role {
	if a.Profile == nil {
		return ""
	}
	return a.Profile.Role
}

func (a *Actor) DisplayName() string {
	if a.Profile != nil {
		if name := a.Profile.Name(); name != "" {
			return name
		}
	}
	if at := strings.Index(a.Email, "@"); at > 0 {
		return a.Email[:at]
	}
	return a.Email
}

// Owns reports whether the actor may act on a resource owned by ownerID.
func (a *Actor) Owns(ownerID string) bool {
	return a.IsSuperAdmin || a.SubjectID == ownerID
}
