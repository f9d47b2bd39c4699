package reputation

import "fmt"

// Role names one of the two disjoint actor populations. Each role has its
// own action catalog and eligibility predicates.
type Role string

const (
	RoleWorker Role = "worker"
	RoleClient Role = "client"
)

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleWorker, RoleClient:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q (want worker or client)", s)
	}
}
