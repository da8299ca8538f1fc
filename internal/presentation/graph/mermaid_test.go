package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/animator/internal/presentation/graph"
	"github.com/aretw0/animator/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name       string
		nodes      []domain.NodeSnapshot
		withStates bool
		contains   []string
		excludes   []string
	}{
		{
			name: "Root Shape",
			nodes: []domain.NodeSnapshot{
				{ID: "ui:1", Name: "menu", Manager: domain.ManagerStagger, Children: []domain.NodeID{"ui:2"}},
			},
			contains: []string{`ui_1(("menu <br/> stagger"))`},
		},
		{
			name: "Combine Shape",
			nodes: []domain.NodeSnapshot{
				{ID: "ui:1"},
				{ID: "ui:2", ParentID: "ui:1", Combine: true, Allowed: true},
			},
			contains: []string{
				`ui_2[["ui:2"]]`,
				"ui_1 --> ui_2",
			},
		},
		{
			name: "Edge Kinds",
			nodes: []domain.NodeSnapshot{
				{ID: "r"},
				{ID: "m", ParentID: "r", Merge: true, Allowed: true},
				{ID: "b", ParentID: "r", Allowed: false},
			},
			contains: []string{
				"r -.-> m",
				`r -. "blocked" .-> b`,
			},
		},
		{
			name: "ID Sanitization",
			nodes: []domain.NodeSnapshot{
				{ID: "path/to.node-1", Name: `say "hi"`},
			},
			contains: []string{`path_to_node_1(("say 'hi'"))`},
		},
		{
			name: "State Classes",
			nodes: []domain.NodeSnapshot{
				{ID: "r", State: domain.StateEntered},
				{ID: "c", ParentID: "r", State: domain.StateEntering, Allowed: true},
			},
			withStates: true,
			contains: []string{
				"classDef entering",
				"class r entered;",
				"class c entering;",
			},
		},
		{
			name:     "No States",
			nodes:    []domain.NodeSnapshot{{ID: "r", State: domain.StateEntered}},
			excludes: []string{"classDef", "class r"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.nodes, tt.withStates)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnexpected substring: %v", got, unwanted)
				}
			}
		})
	}
}
