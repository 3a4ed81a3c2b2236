package inspect

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	goPermit "github.com/MrEthical07/goPermit"
)

// Renderer turns decisions, reports, and lint findings into terminal text.
// A styled renderer colors verdicts with lipgloss; a plain one emits bare
// text for pipes and logs.
type Renderer struct {
	header   lipgloss.Style
	allow    lipgloss.Style
	deny     lipgloss.Style
	restrict lipgloss.Style
	dim      lipgloss.Style
}

// NewRenderer returns a Renderer. With styled false every style is the
// identity and output is plain text.
func NewRenderer(styled bool) *Renderer {
	r := &Renderer{}
	if !styled {
		return r
	}

	r.header = lipgloss.NewStyle().Bold(true)
	r.allow = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	r.deny = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	r.restrict = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	r.dim = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	return r
}

func (r *Renderer) verdict(allowed bool) string {
	if allowed {
		return r.allow.Render("allow")
	}
	return r.deny.Render("deny")
}

// Decision renders one explained decision as a short block.
func (r *Renderer) Decision(d Decision) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", r.header.Render(string(d.Permission)), r.verdict(d.Allowed))

	switch {
	case d.DirectGrant:
		b.WriteString("  granted: directly\n")
	case len(d.GrantingRoles) > 0:
		fmt.Fprintf(&b, "  granted: via %s\n", joinRoles(d.GrantingRoles))
	default:
		b.WriteString(r.dim.Render("  granted: no") + "\n")
	}

	switch d.Reason {
	case goPermit.ReasonDirect:
		b.WriteString(r.restrict.Render("  restricted: globally") + "\n")
	case goPermit.ReasonSector:
		b.WriteString(r.restrict.Render(fmt.Sprintf("  restricted: by sector %q", d.RestrictingSector)) + "\n")
	default:
		b.WriteString(r.dim.Render("  restricted: no") + "\n")
	}

	return b.String()
}

// Report renders the full state summary.
func (r *Renderer) Report(rep Report) string {
	var b strings.Builder

	if rep.ActiveSector != goPermit.NoSector {
		fmt.Fprintf(&b, "%s %s\n", r.header.Render("sector:"), rep.ActiveSector)
	} else {
		fmt.Fprintf(&b, "%s %s\n", r.header.Render("sector:"), r.dim.Render("(none)"))
	}

	b.WriteString(r.header.Render("permissions:") + "\n")
	if len(rep.Effective) == 0 {
		b.WriteString(r.dim.Render("  (none)") + "\n")
	}
	for _, pr := range rep.Effective {
		line := fmt.Sprintf("  %-24s %s", pr.Permission, r.verdict(pr.Allowed))
		if pr.Reason != goPermit.ReasonNone {
			line += r.restrict.Render(fmt.Sprintf("  [restricted: %s]", pr.Reason))
		}
		b.WriteString(line + "\n")
	}

	if len(rep.Roles) > 0 {
		b.WriteString(r.header.Render("roles:") + "\n")
		for _, role := range rep.Roles {
			var notes []string
			if !role.Assigned {
				notes = append(notes, "not assigned")
			}
			if !role.Defined {
				notes = append(notes, "undefined")
			}
			line := fmt.Sprintf("  %-16s %s", role.Role, joinPermissions(role.Permissions))
			if len(notes) > 0 {
				line += r.dim.Render("  (" + strings.Join(notes, ", ") + ")")
			}
			b.WriteString(line + "\n")
		}
	}

	if len(rep.Restrictions) > 0 {
		fmt.Fprintf(&b, "%s %s\n", r.header.Render("restricted:"), joinPermissions(rep.Restrictions))
	}

	for _, sr := range rep.SectorRestrictions {
		marker := " "
		if sr.Active {
			marker = r.restrict.Render("*")
		}
		fmt.Fprintf(&b, "%s %s %-16s %s\n",
			r.header.Render("sector-restricted:"), marker, sr.Sector, joinPermissions(sr.Restrictions))
	}

	return b.String()
}

// Problems renders lint findings, one per line.
func (r *Renderer) Problems(problems []Problem) string {
	if len(problems) == 0 {
		return r.dim.Render("no findings") + "\n"
	}

	var b strings.Builder
	for _, p := range problems {
		fmt.Fprintf(&b, "%s %s\n", r.restrict.Render(string(p.Code)+":"), p.Message)
	}
	return b.String()
}

func joinRoles(roles []goPermit.Role) string {
	parts := make([]string, 0, len(roles))
	for _, role := range roles {
		parts = append(parts, string(role))
	}
	return strings.Join(parts, ", ")
}

func joinPermissions(perms []goPermit.Permission) string {
	if len(perms) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(perms))
	for _, p := range perms {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, ", ")
}
