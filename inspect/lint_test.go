package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	goPermit "github.com/MrEthical07/goPermit"
)

func codes(problems []Problem) []ProblemCode {
	out := make([]ProblemCode, 0, len(problems))
	for _, p := range problems {
		out = append(out, p.Code)
	}
	return out
}

func TestLintCleanConfig(t *testing.T) {
	problems := Lint(goPermit.Config{
		Permissions: []goPermit.Permission{"read"},
		Roles:       []goPermit.Role{"admin"},
		RoleDefinitions: map[goPermit.Role][]goPermit.Permission{
			"admin": {"delete"},
		},
		Restrictions: []goPermit.Permission{"delete"},
	})
	assert.Empty(t, problems)
}

func TestLintZeroConfig(t *testing.T) {
	assert.Empty(t, Lint(goPermit.Config{}))
}

func TestLintRoleFindings(t *testing.T) {
	problems := Lint(goPermit.Config{
		Roles: []goPermit.Role{"assigned-only"},
		RoleDefinitions: map[goPermit.Role][]goPermit.Permission{
			"defined-only": {"view"},
		},
	})

	assert.Contains(t, codes(problems), ProblemRoleUndefined)
	assert.Contains(t, codes(problems), ProblemRoleUnassigned)
}

func TestLintUnmatchedRestrictions(t *testing.T) {
	problems := Lint(goPermit.Config{
		Permissions:  []goPermit.Permission{"read"},
		Restrictions: []goPermit.Permission{"never-granted"},
		SectorRestrictions: map[goPermit.Sector][]goPermit.Permission{
			"finance": {"also-never-granted"},
		},
	})

	assert.Contains(t, codes(problems), ProblemRestrictionUnmatched)
	assert.Contains(t, codes(problems), ProblemSectorRestrictionUnmatched)
}

func TestLintUnassignedRoleDoesNotCountAsGrant(t *testing.T) {
	// The restriction overlaps a defined-but-unassigned role's permission;
	// that role grants nothing, so the restriction still blocks nothing.
	problems := Lint(goPermit.Config{
		RoleDefinitions: map[goPermit.Role][]goPermit.Permission{
			"viewer": {"view"},
		},
		Restrictions: []goPermit.Permission{"view"},
	})

	assert.Contains(t, codes(problems), ProblemRestrictionUnmatched)
}

func TestLintDuplicates(t *testing.T) {
	problems := Lint(goPermit.Config{
		Permissions: []goPermit.Permission{"read", "read"},
		Roles:       []goPermit.Role{"admin", "admin"},
		RoleDefinitions: map[goPermit.Role][]goPermit.Permission{
			"admin": {"read"},
		},
	})

	got := codes(problems)
	count := 0
	for _, c := range got {
		if c == ProblemDuplicateEntry {
			count++
		}
	}
	assert.Equal(t, 2, count, "one finding per duplicated list: %v", problems)
}

func TestLintFindingsAreSorted(t *testing.T) {
	problems := Lint(goPermit.Config{
		Roles: []goPermit.Role{"b", "a"},
	})

	assert.Len(t, problems, 2)
	assert.True(t, problems[0].Message < problems[1].Message)
	for _, p := range problems {
		assert.Equal(t, ProblemRoleUndefined, p.Code)
	}
}
