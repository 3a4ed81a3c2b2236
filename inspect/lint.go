package inspect

import (
	"fmt"
	"sort"

	goPermit "github.com/MrEthical07/goPermit"
)

// ProblemCode classifies an advisory lint finding.
type ProblemCode string

const (
	// ProblemRoleUndefined flags a role that is assigned but has no
	// definition; it grants nothing.
	ProblemRoleUndefined ProblemCode = "role-undefined"
	// ProblemRoleUnassigned flags a role that is defined but not assigned;
	// its permissions are inert.
	ProblemRoleUnassigned ProblemCode = "role-unassigned"
	// ProblemRestrictionUnmatched flags a global restriction that overlaps
	// no grant; it blocks nothing today.
	ProblemRestrictionUnmatched ProblemCode = "restriction-unmatched"
	// ProblemSectorRestrictionUnmatched flags a sector restriction that
	// overlaps no grant.
	ProblemSectorRestrictionUnmatched ProblemCode = "sector-restriction-unmatched"
	// ProblemDuplicateEntry flags a repeated element inside one config
	// list; the resolver deduplicates, but the config is noisy.
	ProblemDuplicateEntry ProblemCode = "duplicate-entry"
)

// Problem is one advisory lint finding. Findings never block construction;
// every config, however odd, still resolves.
type Problem struct {
	Code    ProblemCode `json:"code"`
	Message string      `json:"message"`
}

// Lint inspects cfg for configurations that are legal but probably not what
// the author meant. Findings are sorted by code, then message.
func Lint(cfg goPermit.Config) []Problem {
	var problems []Problem
	add := func(code ProblemCode, format string, args ...any) {
		problems = append(problems, Problem{
			Code:    code,
			Message: fmt.Sprintf(format, args...),
		})
	}

	assigned := map[goPermit.Role]bool{}
	for _, role := range cfg.Roles {
		assigned[role] = true
	}

	for _, role := range cfg.Roles {
		if _, ok := cfg.RoleDefinitions[role]; !ok {
			add(ProblemRoleUndefined, "role %q is assigned but never defined; it grants nothing", role)
		}
	}
	for role := range cfg.RoleDefinitions {
		if !assigned[role] {
			add(ProblemRoleUnassigned, "role %q is defined but not assigned; its permissions are inert", role)
		}
	}

	// The grant side a restriction could ever intersect.
	granted := map[goPermit.Permission]bool{}
	for _, p := range cfg.Permissions {
		granted[p] = true
	}
	for role, perms := range cfg.RoleDefinitions {
		if !assigned[role] {
			continue
		}
		for _, p := range perms {
			granted[p] = true
		}
	}

	for _, p := range cfg.Restrictions {
		if !granted[p] {
			add(ProblemRestrictionUnmatched, "restriction %q overlaps no grant; it blocks nothing", p)
		}
	}
	for sector, perms := range cfg.SectorRestrictions {
		for _, p := range perms {
			if !granted[p] {
				add(ProblemSectorRestrictionUnmatched,
					"sector %q restriction %q overlaps no grant; it blocks nothing", sector, p)
			}
		}
	}

	lintDuplicates(add, "permissions", cfg.Permissions)
	lintDuplicates(add, "restrictions", cfg.Restrictions)
	seenRoles := map[goPermit.Role]bool{}
	for _, role := range cfg.Roles {
		if seenRoles[role] {
			add(ProblemDuplicateEntry, "roles lists %q more than once", role)
		}
		seenRoles[role] = true
	}

	sort.Slice(problems, func(i, j int) bool {
		if problems[i].Code != problems[j].Code {
			return problems[i].Code < problems[j].Code
		}
		return problems[i].Message < problems[j].Message
	})

	return problems
}

func lintDuplicates(add func(ProblemCode, string, ...any), list string, perms []goPermit.Permission) {
	seen := map[goPermit.Permission]bool{}
	for _, p := range perms {
		if seen[p] {
			add(ProblemDuplicateEntry, "%s lists %q more than once", list, p)
		}
		seen[p] = true
	}
}
