package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/animator/pkg/domain"
)

// stateClasses styles nodes by their current state.
// Force black text (color:#000) for contrast on light fills in both themes.
var stateClasses = map[domain.State]string{
	domain.StateExited:   "fill:#eceff1,stroke:#90a4ae,color:#000",
	domain.StateEntering: "fill:#fff9c4,stroke:#fbc02d,stroke-width:2px,color:#000",
	domain.StateEntered:  "fill:#c8e6c9,stroke:#2e7d32,stroke-width:2px,color:#000",
	domain.StateExiting:  "fill:#ffccbc,stroke:#d84315,stroke-width:2px,color:#000",
}

// GenerateMermaid produces a Mermaid flowchart of an animator tree.
// It applies semantic styling:
// - Root: ((Circle))
// - Combine: [[Subroutine]]
// - Default: [Rectangle]
// Merge children hang from dotted edges and disallowed children are annotated.
// With withStates, every node is classed by its current state.
func GenerateMermaid(nodes []domain.NodeSnapshot, withStates bool) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range nodes {
		safeID := sanitizeMermaidID(string(node.ID))

		opener, closer := "[", "]"
		switch {
		case node.ParentID == "":
			opener, closer = "((", "))"
		case node.Combine:
			opener, closer = "[[", "]]"
		}

		label := node.Name
		if label == "" {
			label = string(node.ID)
		}
		label = strings.ReplaceAll(label, "\"", "'")
		if len(node.Children) > 0 {
			label = fmt.Sprintf("%s <br/> %s", label, node.Manager)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label, closer)

		if node.ParentID == "" {
			continue
		}
		safeParent := sanitizeMermaidID(string(node.ParentID))
		arrow := "-->"
		switch {
		case !node.Allowed:
			arrow = "-. \"blocked\" .->"
		case node.Merge:
			arrow = "-.->"
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", safeParent, arrow, safeID)
	}

	if withStates {
		sb.WriteString("\n    %% State Styles\n")
		for _, state := range domain.States {
			fmt.Fprintf(&sb, "    classDef %s %s;\n", state, stateClasses[state])
		}
		for _, node := range nodes {
			fmt.Fprintf(&sb, "    class %s %s;\n", sanitizeMermaidID(string(node.ID)), node.State)
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(
		".", "_",
		"-", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		" ", "_",
	).Replace(id)
}
