package blocks

import (
	"github.com/mikecat1024/notion-to-markdown/internal/richtext"
)

// TextContent is the payload shared by blocks made of a single rich text run.
type TextContent struct {
	RichText []richtext.Span `json:"rich_text"`
	Color    string          `json:"color,omitempty"`
}

// Paragraph is a plain text block.
type Paragraph struct {
	Header
	Nested
	Content TextContent `json:"paragraph"`
}

func (*Paragraph) Type() Type                  { return TypeParagraph }
func (b *Paragraph) withMeta(meta Meta) Block { return cloneWithMeta(b, meta) }

// HeadingContent is the payload of heading blocks.
type HeadingContent struct {
	RichText     []richtext.Span `json:"rich_text"`
	Color        string          `json:"color,omitempty"`
	IsToggleable bool            `json:"is_toggleable,omitempty"`
}

// Heading is a level 1, 2 or 3 heading. Toggleable headings carry children.
type Heading struct {
	Header
	Nested
	Level   int
	Content HeadingContent
}

// Type derives the discriminator from the heading level.
func (b *Heading) Type() Type {
	switch b.Level {
	case 2:
		return TypeHeading2
	case 3:
		return TypeHeading3
	default:
		return TypeHeading1
	}
}

func (b *Heading) withMeta(meta Meta) Block { return cloneWithMeta(b, meta) }

// BulletedListItem is an unordered list entry.
type BulletedListItem struct {
	Header
	Nested
	Content TextContent `json:"bulleted_list_item"`
}

func (*BulletedListItem) Type() Type                  { return TypeBulletedListItem }
func (b *BulletedListItem) withMeta(meta Meta) Block { return cloneWithMeta(b, meta) }

// NumberedListItem is an ordered list entry. Its ordinal comes from Meta.
type NumberedListItem struct {
	Header
	Nested
	Content TextContent `json:"numbered_list_item"`
}

func (*NumberedListItem) Type() Type                  { return TypeNumberedListItem }
func (b *NumberedListItem) withMeta(meta Meta) Block { return cloneWithMeta(b, meta) }

// ToDoContent is the payload of a to-do block.
type ToDoContent struct {
	RichText []richtext.Span `json:"rich_text"`
	Checked  bool            `json:"checked"`
	Color    string          `json:"color,omitempty"`
}

// ToDo is a checkbox list entry.
type ToDo struct {
	Header
	Nested
	Content ToDoContent `json:"to_do"`
}

func (*ToDo) Type() Type                  { return TypeToDo }
func (b *ToDo) withMeta(meta Meta) Block { return cloneWithMeta(b, meta) }

// Toggle is a collapsible block whose text introduces its children.
type Toggle struct {
	Header
	Nested
	Content TextContent `json:"toggle"`
}

func (*Toggle) Type() Type                  { return TypeToggle }
func (b *Toggle) withMeta(meta Meta) Block { return cloneWithMeta(b, meta) }

// Quote is a block quotation.
type Quote struct {
	Header
	Nested
	Content TextContent `json:"quote"`
}

func (*Quote) Type() Type                  { return TypeQuote }
func (b *Quote) withMeta(meta Meta) Block { return cloneWithMeta(b, meta) }

// Icon is the emoji or image decorating a callout or page.
type Icon struct {
	Type     string   `json:"type"`
	Emoji    string   `json:"emoji,omitempty"`
	External *FileURL `json:"external,omitempty"`
	File     *FileURL `json:"file,omitempty"`
}

// CalloutContent is the payload of a callout block.
type CalloutContent struct {
	RichText []richtext.Span `json:"rich_text"`
	Icon     *Icon           `json:"icon,omitempty"`
	Color    string          `json:"color,omitempty"`
}

// Emoji returns the callout's emoji icon, or an empty string.
func (c CalloutContent) Emoji() string {
	if c.Icon == nil {
		return ""
	}
	return c.Icon.Emoji
}

// Callout is a highlighted quotation with an optional icon.
type Callout struct {
	Header
	Nested
	Content CalloutContent `json:"callout"`
}

func (*Callout) Type() Type                  { return TypeCallout }
func (b *Callout) withMeta(meta Meta) Block { return cloneWithMeta(b, meta) }

// CodeContent is the payload of a code block.
type CodeContent struct {
	RichText []richtext.Span `json:"rich_text"`
	Caption  []richtext.Span `json:"caption,omitempty"`
	Language string          `json:"language"`
}

// Code is a fenced code block.
type Code struct {
	Header
	Content CodeContent `json:"code"`
}

func (*Code) Type() Type { return TypeCode }

// EquationContent holds a block level KaTeX expression.
type EquationContent struct {
	Expression string `json:"expression"`
}

// Equation is a display math block.
type Equation struct {
	Header
	Content EquationContent `json:"equation"`
}

func (*Equation) Type() Type { return TypeEquation }

// Divider is a horizontal rule.
type Divider struct {
	Header
}

func (*Divider) Type() Type { return TypeDivider }

// TableContent describes a table's shape. Rows arrive as children.
type TableContent struct {
	TableWidth      int  `json:"table_width"`
	HasColumnHeader bool `json:"has_column_header"`
	HasRowHeader    bool `json:"has_row_header"`
}

// Table is a simple table. Its children must all be TableRow blocks.
type Table struct {
	Header
	Nested
	Content TableContent `json:"table"`
}

func (*Table) Type() Type                  { return TypeTable }
func (b *Table) withMeta(meta Meta) Block { return cloneWithMeta(b, meta) }

// Rows returns the table's row children, skipping anything else.
func (b *Table) Rows() []*TableRow {
	rows := make([]*TableRow, 0, len(b.children))
	for _, child := range b.children {
		if row, ok := child.(*TableRow); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// TableRowContent holds one row of cells; each cell is a rich text run.
type TableRowContent struct {
	Cells [][]richtext.Span `json:"cells"`
}

// TableRow is a row of a Table. It is only meaningful as a table child.
type TableRow struct {
	Header
	Content TableRowContent `json:"table_row"`
}

func (*TableRow) Type() Type { return TypeTableRow }

// FileURL is a hosted or external file reference.
type FileURL struct {
	URL        string `json:"url"`
	ExpiryTime string `json:"expiry_time,omitempty"`
}

// FileObject is the file payload shared by media blocks. Exactly one of File
// and External is expected to be set.
type FileObject struct {
	Type     string          `json:"type"`
	File     *FileURL        `json:"file,omitempty"`
	External *FileURL        `json:"external,omitempty"`
	Name     string          `json:"name,omitempty"`
	Caption  []richtext.Span `json:"caption,omitempty"`
}

// URL returns the hosted URL, falling back to the external one.
func (f FileObject) URL() string {
	if f.File != nil && f.File.URL != "" {
		return f.File.URL
	}
	if f.External != nil {
		return f.External.URL
	}
	return ""
}

// Image is an embedded image.
type Image struct {
	Header
	Content FileObject `json:"image"`
}

func (*Image) Type() Type { return TypeImage }

// Video is an embedded video.
type Video struct {
	Header
	Content FileObject `json:"video"`
}

func (*Video) Type() Type { return TypeVideo }

// File is an uploaded or linked file attachment.
type File struct {
	Header
	Content FileObject `json:"file"`
}

func (*File) Type() Type { return TypeFile }

// PDF is an embedded PDF document.
type PDF struct {
	Header
	Content FileObject `json:"pdf"`
}

func (*PDF) Type() Type { return TypePDF }

// URLContent is the payload of blocks that only reference a URL.
type URLContent struct {
	URL     string          `json:"url"`
	Caption []richtext.Span `json:"caption,omitempty"`
}

// Embed is an embedded third-party resource.
type Embed struct {
	Header
	Content URLContent `json:"embed"`
}

func (*Embed) Type() Type { return TypeEmbed }

// Bookmark is a saved web link.
type Bookmark struct {
	Header
	Content URLContent `json:"bookmark"`
}

func (*Bookmark) Type() Type { return TypeBookmark }

// LinkPreview is a rich preview of a supported web link.
type LinkPreview struct {
	Header
	Content URLContent `json:"link_preview"`
}

func (*LinkPreview) Type() Type { return TypeLinkPreview }

// LinkToPageContent references another page or database.
type LinkToPageContent struct {
	Type       string `json:"type"`
	PageID     string `json:"page_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
}

// Target returns the referenced page or database identifier.
func (c LinkToPageContent) Target() string {
	if c.Type == "database_id" || (c.PageID == "" && c.DatabaseID != "") {
		return c.DatabaseID
	}
	return c.PageID
}

// LinkToPage links to another page or database in the workspace.
type LinkToPage struct {
	Header
	Content LinkToPageContent `json:"link_to_page"`
}

func (*LinkToPage) Type() Type { return TypeLinkToPage }

// TitleContent holds the title of a child page or database.
type TitleContent struct {
	Title string `json:"title"`
}

// ChildPage is a sub-page. Its block id is the page id.
type ChildPage struct {
	Header
	Content TitleContent `json:"child_page"`
}

func (*ChildPage) Type() Type { return TypeChildPage }

// ChildDatabase is an inline database.
type ChildDatabase struct {
	Header
	Content TitleContent `json:"child_database"`
}

func (*ChildDatabase) Type() Type { return TypeChildDatabase }

// ColumnList groups Column blocks laid out side by side.
type ColumnList struct {
	Header
	Nested
}

func (*ColumnList) Type() Type                  { return TypeColumnList }
func (b *ColumnList) withMeta(meta Meta) Block { return cloneWithMeta(b, meta) }

// Column is one column of a ColumnList.
type Column struct {
	Header
	Nested
}

func (*Column) Type() Type                  { return TypeColumn }
func (b *Column) withMeta(meta Meta) Block { return cloneWithMeta(b, meta) }

// SyncedFrom points a synced block copy at its original.
type SyncedFrom struct {
	Type    string `json:"type"`
	BlockID string `json:"block_id"`
}

// SyncedContent is the payload of a synced block. SyncedFrom is nil for the
// original block.
type SyncedContent struct {
	SyncedFrom *SyncedFrom `json:"synced_from"`
}

// SyncedBlock mirrors content shared across pages.
type SyncedBlock struct {
	Header
	Nested
	Content SyncedContent `json:"synced_block"`
}

func (*SyncedBlock) Type() Type                  { return TypeSyncedBlock }
func (b *SyncedBlock) withMeta(meta Meta) Block { return cloneWithMeta(b, meta) }

// Breadcrumb shows the page's location in the workspace.
type Breadcrumb struct {
	Header
}

func (*Breadcrumb) Type() Type { return TypeBreadcrumb }

// TableOfContents lists the headings of the enclosing document.
type TableOfContents struct {
	Header
}

func (*TableOfContents) Type() Type { return TypeTableOfContents }

// Template is a template button.
type Template struct {
	Header
	Content TextContent `json:"template"`
}

func (*Template) Type() Type { return TypeTemplate }

// Unsupported is a block the API reports as unsupported.
type Unsupported struct {
	Header
}

func (*Unsupported) Type() Type { return TypeUnsupported }

// Unexpected stands in for a block whose type tag is unknown. Tag keeps the
// original discriminator for diagnostics.
type Unexpected struct {
	Header
	Tag string
}

func (*Unexpected) Type() Type { return TypeUnexpected }

var (
	_ Container = (*Paragraph)(nil)
	_ Container = (*Heading)(nil)
	_ Container = (*BulletedListItem)(nil)
	_ Container = (*NumberedListItem)(nil)
	_ Container = (*ToDo)(nil)
	_ Container = (*Toggle)(nil)
	_ Container = (*Quote)(nil)
	_ Container = (*Callout)(nil)
	_ Container = (*Table)(nil)
	_ Container = (*ColumnList)(nil)
	_ Container = (*Column)(nil)
	_ Container = (*SyncedBlock)(nil)

	_ Block = (*Code)(nil)
	_ Block = (*Equation)(nil)
	_ Block = (*Divider)(nil)
	_ Block = (*TableRow)(nil)
	_ Block = (*Image)(nil)
	_ Block = (*Video)(nil)
	_ Block = (*File)(nil)
	_ Block = (*PDF)(nil)
	_ Block = (*Embed)(nil)
	_ Block = (*Bookmark)(nil)
	_ Block = (*LinkPreview)(nil)
	_ Block = (*LinkToPage)(nil)
	_ Block = (*ChildPage)(nil)
	_ Block = (*ChildDatabase)(nil)
	_ Block = (*Breadcrumb)(nil)
	_ Block = (*TableOfContents)(nil)
	_ Block = (*Template)(nil)
	_ Block = (*Unsupported)(nil)
	_ Block = (*Unexpected)(nil)
)
