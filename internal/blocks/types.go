package blocks

// Type is the block type discriminator used by the Notion API.
type Type string

const (
	TypeParagraph        Type = "paragraph"
	TypeHeading1         Type = "heading_1"
	TypeHeading2         Type = "heading_2"
	TypeHeading3         Type = "heading_3"
	TypeBulletedListItem Type = "bulleted_list_item"
	TypeNumberedListItem Type = "numbered_list_item"
	TypeToDo             Type = "to_do"
	TypeToggle           Type = "toggle"
	TypeQuote            Type = "quote"
	TypeCallout          Type = "callout"
	TypeCode             Type = "code"
	TypeEquation         Type = "equation"
	TypeDivider          Type = "divider"
	TypeTable            Type = "table"
	TypeTableRow         Type = "table_row"
	TypeImage            Type = "image"
	TypeVideo            Type = "video"
	TypeFile             Type = "file"
	TypePDF              Type = "pdf"
	TypeEmbed            Type = "embed"
	TypeBookmark         Type = "bookmark"
	TypeLinkPreview      Type = "link_preview"
	TypeLinkToPage       Type = "link_to_page"
	TypeChildPage        Type = "child_page"
	TypeChildDatabase    Type = "child_database"
	TypeColumnList       Type = "column_list"
	TypeColumn           Type = "column"
	TypeSyncedBlock      Type = "synced_block"
	TypeBreadcrumb       Type = "breadcrumb"
	TypeTableOfContents  Type = "table_of_contents"
	TypeTemplate         Type = "template"
	TypeUnsupported      Type = "unsupported"

	// TypeUnexpected is never sent by the API. It tags blocks whose type
	// discriminator is not recognised by this package.
	TypeUnexpected Type = "unexpected"
)

// IsListItem reports whether blocks of type t render as list items and
// therefore share an enclosing list with adjacent list item siblings.
func (t Type) IsListItem() bool {
	switch t {
	case TypeBulletedListItem, TypeNumberedListItem, TypeToDo:
		return true
	default:
		return false
	}
}

// IsHeading reports whether t is one of the three heading levels.
func (t Type) IsHeading() bool {
	switch t {
	case TypeHeading1, TypeHeading2, TypeHeading3:
		return true
	default:
		return false
	}
}
