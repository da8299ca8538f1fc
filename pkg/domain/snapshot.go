package domain

// NodeSnapshot is a read-only view of one node, used by renderers and adapters.
type NodeSnapshot struct {
	ID       NodeID      `json:"id"`
	Name     string      `json:"name,omitempty"`
	ParentID NodeID      `json:"parent_id,omitempty"`
	Depth    int         `json:"depth"`
	State    State       `json:"state"`
	Manager  ManagerName `json:"manager"`
	Merge    bool        `json:"merge,omitempty"`
	Combine  bool        `json:"combine,omitempty"`
	Allowed  bool        `json:"allowed"`
	Enter    float64     `json:"enter"`
	Exit     float64     `json:"exit"`
	Children []NodeID    `json:"children,omitempty"`
}
