package roletoggle

import "errors"

// ErrInsufficientPermissions is what a Provider returns (possibly wrapped)
// when the platform rejects a membership change.
var ErrInsufficientPermissions = errors.New("insufficient permissions")

// FailureReason classifies why a single selection in a batch was not applied.
type FailureReason string

const (
	ReasonRoleNoLongerExists      FailureReason = "role_no_longer_exists"
	ReasonInsufficientPermissions FailureReason = "insufficient_permissions"
)

// Failure records one selection that could not be toggled.
type Failure struct {
	RoleID string
	Reason FailureReason
}

// Result partitions one batch of selections into applied and failed toggles.
// The lists keep selection order.
type Result struct {
	Added   []string
	Removed []string
	Failed  []Failure
}

// Provider resolves role identifiers against the guild's live role set and
// applies membership changes.
type Provider interface {
	RoleExists(guildID, roleID string) bool
	AddRole(guildID, memberID, roleID string) error
	RemoveRole(guildID, memberID, roleID string) error
}

// Apply toggles each selected role for the member: selections the member
// already holds are removed, the rest are added. Membership is evaluated
// against the current snapshot once per call and not re-read between entries,
// so a duplicate selection is processed twice in the same direction. Failures
// never abort the batch and applied toggles are never rolled back; every
// entry is an independent best-effort operation.
func Apply(p Provider, guildID, memberID string, current map[string]bool, selected []string) Result {
	var res Result
	for _, roleID := range selected {
		if !p.RoleExists(guildID, roleID) {
			res.Failed = append(res.Failed, Failure{RoleID: roleID, Reason: ReasonRoleNoLongerExists})
			continue
		}
		if current[roleID] {
			if err := p.RemoveRole(guildID, memberID, roleID); err != nil {
				res.Failed = append(res.Failed, Failure{RoleID: roleID, Reason: ReasonInsufficientPermissions})
				continue
			}
			res.Removed = append(res.Removed, roleID)
		} else {
			if err := p.AddRole(guildID, memberID, roleID); err != nil {
				res.Failed = append(res.Failed, Failure{RoleID: roleID, Reason: ReasonInsufficientPermissions})
				continue
			}
			res.Added = append(res.Added, roleID)
		}
	}
	return res
}

// Snapshot builds the membership set Apply evaluates against.
func Snapshot(roleIDs []string) map[string]bool {
	set := make(map[string]bool, len(roleIDs))
	for _, id := range roleIDs {
		set[id] = true
	}
	return set
}
