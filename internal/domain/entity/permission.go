package entity

import (
	"fmt"
	"sort"
	"strings"
)

// Permission is a named capability granted to a redactor.
type Permission string

const (
	// PermManageTopics allows creating, updating and deleting topics.
	PermManageTopics Permission = "topics.manage"
	// PermDeleteAnyNewspaper allows deleting newspapers the actor does not publish.
	PermDeleteAnyNewspaper Permission = "newspapers.delete_any"
	// PermDeleteAnyRedactor allows deleting other accounts and registering new ones.
	PermDeleteAnyRedactor Permission = "redactors.delete_any"
)

var knownPermissions = []Permission{PermManageTopics, PermDeleteAnyNewspaper, PermDeleteAnyRedactor}

// AllPermissions returns every known permission in a stable order.
func AllPermissions() []Permission {
	out := make([]Permission, len(knownPermissions))
	copy(out, knownPermissions)
	return out
}

// ParsePermission converts a name into a Permission, rejecting unknown names.
func ParsePermission(name string) (Permission, error) {
	p := Permission(strings.TrimSpace(strings.ToLower(name)))
	for _, k := range knownPermissions {
		if p == k {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown permission %q", name)
}

// PermissionSet is a sorted, duplicate-free list of permissions.
type PermissionSet []Permission

// NewPermissionSet builds a normalized set from perms.
func NewPermissionSet(perms ...Permission) PermissionSet {
	if len(perms) == 0 {
		return nil
	}
	seen := make(map[Permission]struct{}, len(perms))
	out := make(PermissionSet, 0, len(perms))
	for _, p := range perms {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Has reports whether p is in the set.
func (s PermissionSet) Has(p Permission) bool {
	for _, q := range s {
		if q == p {
			return true
		}
	}
	return false
}

// With returns a new set that also contains perms.
func (s PermissionSet) With(perms ...Permission) PermissionSet {
	all := make([]Permission, 0, len(s)+len(perms))
	all = append(all, s...)
	all = append(all, perms...)
	return NewPermissionSet(all...)
}

// Without returns a new set with perms removed.
func (s PermissionSet) Without(perms ...Permission) PermissionSet {
	out := make([]Permission, 0, len(s))
	for _, p := range s {
		drop := false
		for _, r := range perms {
			if p == r {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, p)
		}
	}
	return NewPermissionSet(out...)
}

// Strings returns the permission names.
func (s PermissionSet) Strings() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = string(p)
	}
	return out
}

// Role is a named bundle of permissions. Roles are expanded into permissions
// when granted and are never compared during authorization.
type Role string

const (
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

var rolePermissions = map[Role][]Permission{
	RoleModerator: {PermManageTopics, PermDeleteAnyNewspaper, PermDeleteAnyRedactor},
	RoleAdmin:     {PermManageTopics, PermDeleteAnyNewspaper, PermDeleteAnyRedactor},
}

// ParseRole converts a name into a Role.
func ParseRole(name string) (Role, error) {
	r := Role(strings.TrimSpace(strings.ToLower(name)))
	if _, ok := rolePermissions[r]; !ok {
		return "", fmt.Errorf("unknown role %q", name)
	}
	return r, nil
}

// Permissions expands the role into its permission set.
func (r Role) Permissions() PermissionSet {
	return NewPermissionSet(rolePermissions[r]...)
}
