package inspect

// Node is one section of the page in the inspection tree.
type Node struct {
	// Type is the section kind (e.g., "Prompt", "Slider", "Tabs").
	Type string `json:"type"`

	// ID is an optional identifier for the section.
	ID string `json:"id,omitempty"`

	// Bounds are in body coordinates: Y counts lines from the top of the
	// scrollable page, not from the top of the terminal.
	Bounds Bounds `json:"bounds"`

	// Visible is false for sections scrolled out of the viewport.
	Visible bool `json:"visible"`

	// State contains section specific values.
	State map[string]interface{} `json:"state,omitempty"`

	Children []*Node `json:"children,omitempty"`

	// Content is the plain text of short sections.
	Content string `json:"content,omitempty"`
}

// Bounds represents component position and dimensions.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewNode creates a new Node with the given type.
func NewNode(nodeType string) *Node {
	return &Node{
		Type:    nodeType,
		Visible: true,
		State:   make(map[string]interface{}),
	}
}

// WithID sets the node ID and returns the node for chaining.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

// WithBounds sets the node bounds and returns the node for chaining.
func (n *Node) WithBounds(x, y, width, height int) *Node {
	n.Bounds = Bounds{X: x, Y: y, Width: width, Height: height}
	return n
}

// WithVisible sets visibility and returns the node for chaining.
func (n *Node) WithVisible(visible bool) *Node {
	n.Visible = visible
	return n
}

// WithState adds a state key-value pair and returns the node for chaining.
func (n *Node) WithState(key string, value interface{}) *Node {
	if n.State == nil {
		n.State = make(map[string]interface{})
	}
	n.State[key] = value
	return n
}

// AddChild adds a child node and returns the parent for chaining.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// WithContent sets the node content and returns the node for chaining.
func (n *Node) WithContent(content string) *Node {
	n.Content = content
	return n
}

// Find returns the first node of the given type in a depth-first walk.
func (n *Node) Find(nodeType string) *Node {
	if n == nil {
		return nil
	}
	if n.Type == nodeType {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(nodeType); found != nil {
			return found
		}
	}
	return nil
}
