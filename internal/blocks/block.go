// Package blocks models the Notion block tree: a closed set of block
// variants, the Container capability implemented by variants that nest other
// blocks, and JSON decoding of API payloads into that model.
package blocks

// Block is implemented by every block variant. The set of variants is closed;
// types outside this package cannot satisfy the interface.
type Block interface {
	// Type reports the variant's discriminator.
	Type() Type
	// ID is the Notion block identifier.
	ID() string
	// HasChildren reports the API's has_children flag. It says nothing about
	// whether children have been fetched.
	HasChildren() bool

	header() *Header
}

// Container is implemented by variants that own an ordered list of child
// blocks. Leaf variants never implement it.
type Container interface {
	Block
	// Children returns the attached children in fetch order.
	Children() []Block
	// AppendChild attaches child as the last child. It is called by the tree
	// assembler only, before rendering starts.
	AppendChild(child Block)
	// Meta returns the render-time positional metadata.
	Meta() Meta

	withMeta(meta Meta) Block
}

// Header holds the fields shared by every block payload.
type Header struct {
	Object         string `json:"object,omitempty"`
	BlockID        string `json:"id"`
	BlockType      Type   `json:"type"`
	HasChildrenRaw bool   `json:"has_children"`
	Archived       bool   `json:"archived,omitempty"`
	CreatedTime    string `json:"created_time,omitempty"`
	LastEditedTime string `json:"last_edited_time,omitempty"`
}

// ID returns the block identifier.
func (h *Header) ID() string { return h.BlockID }

// HasChildren returns the has_children flag.
func (h *Header) HasChildren() bool { return h.HasChildrenRaw }

func (h *Header) header() *Header { return h }

// Meta is positional metadata assigned while rendering. Order is the 1-based
// position of a block within its run of siblings and Depth its nesting level.
type Meta struct {
	Order int
	Depth int
}

// DefaultMeta is the metadata of a top-level block rendered on its own.
func DefaultMeta() Meta {
	return Meta{Order: 1, Depth: 0}
}

// Nested carries children and render metadata for container variants.
type Nested struct {
	children []Block
	meta     Meta
}

// Children returns the attached children.
func (n *Nested) Children() []Block { return n.children }

// AppendChild attaches child as the last child.
func (n *Nested) AppendChild(child Block) {
	if child == nil {
		return
	}
	n.children = append(n.children, child)
}

// Meta returns the render metadata, defaulting Order to 1.
func (n *Nested) Meta() Meta {
	if n.meta.Order == 0 {
		return Meta{Order: 1, Depth: n.meta.Depth}
	}
	return n.meta
}

func (n *Nested) setMeta(meta Meta) { n.meta = meta }

// WithMeta returns b annotated with meta. Containers are shallow-copied so the
// fetched tree is left untouched; leaves carry no metadata and are returned
// as-is.
func WithMeta(b Block, meta Meta) Block {
	if c, ok := b.(Container); ok {
		return c.withMeta(meta)
	}
	return b
}

// Children returns the children of b, or nil when b is a leaf.
func Children(b Block) []Block {
	if c, ok := b.(Container); ok {
		return c.Children()
	}
	return nil
}

// Append attaches child to parent when parent is a container and reports
// whether it did.
func Append(parent, child Block) bool {
	c, ok := parent.(Container)
	if !ok {
		return false
	}
	c.AppendChild(child)
	return true
}

// Walk visits b and its descendants depth-first in document order. Returning
// false from fn skips the node's children.
func Walk(b Block, fn func(Block) bool) {
	if b == nil || !fn(b) {
		return
	}
	for _, child := range Children(b) {
		Walk(child, fn)
	}
}

type metaSetter[T any] interface {
	*T
	Block
	setMeta(Meta)
}

func cloneWithMeta[T any, P metaSetter[T]](b P, meta Meta) Block {
	clone := *b
	P(&clone).setMeta(meta)
	return P(&clone)
}

// Document is an ordered list of top-level blocks.
type Document struct {
	Blocks []Block
}

// NewDocument wraps top-level blocks into a document.
func NewDocument(blocks []Block) Document {
	return Document{Blocks: blocks}
}

// Walk visits every block of the document depth-first in document order.
func (d Document) Walk(fn func(Block) bool) {
	for _, b := range d.Blocks {
		Walk(b, fn)
	}
}
