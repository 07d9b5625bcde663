package gallery

// NodeType identifies the kind of a tree node.
type NodeType string

const (
	// TypeAlbum is a container node that may hold further nodes.
	TypeAlbum NodeType = "Album"
	// TypePhoto is a leaf node backed by an image file.
	TypePhoto NodeType = "Photo"
)

// Node is one entry in the exported gallery tree.
// Nodes are immutable once loaded; whichever component fetched a node
// owns it and there is no shared mutation.
type Node struct {
	// ID is the unique identifier of the node within the whole tree.
	ID int64 `json:"id"`

	// Type is either TypeAlbum or TypePhoto.
	Type NodeType `json:"type"`

	// HasChildren reports whether an album node has any children.
	HasChildren bool `json:"hasChildren"`

	// Title is the display title of the node.
	Title string `json:"title"`

	// Description is the free-text description, may be empty.
	Description string `json:"description"`

	// Path is the relative path of the node below the export root.
	Path string `json:"path"`

	// Timestamp is the origination timestamp in Unix seconds, if known.
	Timestamp *int64 `json:"timestamp"`

	// Width and Height are the full-size image dimensions for photos.
	Width  *int `json:"width"`
	Height *int `json:"height"`

	// ThumbWidth and ThumbHeight are the derivative thumbnail dimensions.
	ThumbWidth  *int `json:"thumbWidth"`
	ThumbHeight *int `json:"thumbHeight"`
}

// IsExpandable reports whether the node is an album that can be descended
// into. Photos and empty albums are terminal.
func (n *Node) IsExpandable() bool {
	return n.Type == TypeAlbum && n.HasChildren
}
