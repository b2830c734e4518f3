package blocks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingType is returned when a payload has no type discriminator.
var ErrMissingType = errors.New("blocks: payload has no type")

type envelope struct {
	Header
	Children []json.RawMessage `json:"children,omitempty"`
}

// Decode parses a single block payload. Unknown type tags decode to
// *Unexpected rather than failing. A top-level "children" array, as found in
// offline exports, is decoded recursively and attached to container blocks.
func Decode(data []byte) (Block, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode block header: %w", err)
	}
	if env.BlockType == "" {
		return nil, ErrMissingType
	}

	block, err := decodeVariant(env.Header, data)
	if err != nil {
		return nil, fmt.Errorf("decode %s block %s: %w", env.BlockType, env.BlockID, err)
	}

	if len(env.Children) == 0 {
		return block, nil
	}
	for _, raw := range env.Children {
		child, err := Decode(raw)
		if err != nil {
			return nil, err
		}
		Append(block, child)
	}
	return block, nil
}

// DecodeList parses a JSON array of block payloads.
func DecodeList(data []byte) ([]Block, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode block list: %w", err)
	}
	out := make([]Block, 0, len(raws))
	for _, raw := range raws {
		b, err := Decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// DecodeDump reads a saved children listing: either a JSON array of blocks
// or a list response envelope with a results array.
func DecodeDump(data []byte) ([]Block, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return DecodeList(trimmed)
	}
	var page ChildrenPage
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, fmt.Errorf("decode children dump: %w", err)
	}
	return page.Results, nil
}

func decodeVariant(h Header, data []byte) (Block, error) {
	var target Block
	switch h.BlockType {
	case TypeParagraph:
		target = &Paragraph{}
	case TypeHeading1, TypeHeading2, TypeHeading3:
		return decodeHeading(h, data)
	case TypeBulletedListItem:
		target = &BulletedListItem{}
	case TypeNumberedListItem:
		target = &NumberedListItem{}
	case TypeToDo:
		target = &ToDo{}
	case TypeToggle:
		target = &Toggle{}
	case TypeQuote:
		target = &Quote{}
	case TypeCallout:
		target = &Callout{}
	case TypeCode:
		target = &Code{}
	case TypeEquation:
		target = &Equation{}
	case TypeDivider:
		target = &Divider{}
	case TypeTable:
		target = &Table{}
	case TypeTableRow:
		target = &TableRow{}
	case TypeImage:
		target = &Image{}
	case TypeVideo:
		target = &Video{}
	case TypeFile:
		target = &File{}
	case TypePDF:
		target = &PDF{}
	case TypeEmbed:
		target = &Embed{}
	case TypeBookmark:
		target = &Bookmark{}
	case TypeLinkPreview:
		target = &LinkPreview{}
	case TypeLinkToPage:
		target = &LinkToPage{}
	case TypeChildPage:
		target = &ChildPage{}
	case TypeChildDatabase:
		target = &ChildDatabase{}
	case TypeColumnList:
		target = &ColumnList{}
	case TypeColumn:
		target = &Column{}
	case TypeSyncedBlock:
		target = &SyncedBlock{}
	case TypeBreadcrumb:
		target = &Breadcrumb{}
	case TypeTableOfContents:
		target = &TableOfContents{}
	case TypeTemplate:
		target = &Template{}
	case TypeUnsupported:
		target = &Unsupported{}
	default:
		return &Unexpected{Header: h, Tag: string(h.BlockType)}, nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return nil, err
	}
	return target, nil
}

func decodeHeading(h Header, data []byte) (Block, error) {
	var payload map[Type]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	heading := &Heading{Header: h}
	switch h.BlockType {
	case TypeHeading2:
		heading.Level = 2
	case TypeHeading3:
		heading.Level = 3
	default:
		heading.Level = 1
	}

	if raw, ok := payload[h.BlockType]; ok {
		if err := json.Unmarshal(raw, &heading.Content); err != nil {
			return nil, err
		}
	}
	return heading, nil
}

// ChildrenPage is one page of the block children listing endpoint.
type ChildrenPage struct {
	Results    []Block
	NextCursor *string
	HasMore    bool
}

// UnmarshalJSON decodes a paginated list response.
func (p *ChildrenPage) UnmarshalJSON(data []byte) error {
	var raw struct {
		Results    []json.RawMessage `json:"results"`
		NextCursor *string           `json:"next_cursor"`
		HasMore    bool              `json:"has_more"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode children page: %w", err)
	}

	results := make([]Block, 0, len(raw.Results))
	for _, item := range raw.Results {
		b, err := Decode(item)
		if err != nil {
			return err
		}
		results = append(results, b)
	}

	p.Results = results
	p.NextCursor = raw.NextCursor
	p.HasMore = raw.HasMore
	return nil
}

// Cursor returns the cursor for the next page and whether one exists.
func (p *ChildrenPage) Cursor() (string, bool) {
	if p == nil || p.NextCursor == nil || *p.NextCursor == "" {
		return "", false
	}
	return *p.NextCursor, true
}
