package enums

import "fmt"

// MembershipStatus captures the lifecycle of a team membership.
type MembershipStatus string

const (
	MembershipStatusPending MembershipStatus = "pending"
	MembershipStatusActive  MembershipStatus = "active"
	MembershipStatusLeft    MembershipStatus = "left"
	MembershipStatusRemoved MembershipStatus = "removed"
	MembershipStatusBlocked MembershipStatus = "blocked"
)

var validMembershipStatuses = []MembershipStatus{
	MembershipStatusPending,
	MembershipStatusActive,
	MembershipStatusLeft,
	MembershipStatusRemoved,
	MembershipStatusBlocked,
}

// LiveMembershipStatuses are the statuses under which a membership counts for
// permission checks and the per-(team,user) uniqueness constraint.
var LiveMembershipStatuses = []MembershipStatus{
	MembershipStatusPending,
	MembershipStatusActive,
}

// String implements fmt.Stringer.
func (m MembershipStatus) String() string {
	return string(m)
}

// IsValid reports whether the value matches a known MembershipStatus.
func (m MembershipStatus) IsValid() bool {
	for _, candidate := range validMembershipStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// IsLive reports whether the membership is pending or active.
func (m MembershipStatus) IsLive() bool {
	return m == MembershipStatusPending || m == MembershipStatusActive
}

// IsTerminal reports whether the membership has ended. Terminal rows never
// transition back; re-inviting resets them to a fresh pending cycle.
func (m MembershipStatus) IsTerminal() bool {
	return m == MembershipStatusLeft || m == MembershipStatusRemoved || m == MembershipStatusBlocked
}

// ParseMembershipStatus converts raw input into a MembershipStatus.
func ParseMembershipStatus(value string) (MembershipStatus, error) {
	for _, candidate := range validMembershipStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid membership status %q", value)
}
