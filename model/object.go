package model

// ContentObject is the atomic unit of extracted page content: one layout
// object with its resolution index, normalized bounding box, structural
// kind tag, and (for text-bearing kinds) its text.
//
// Content is nil for non-text objects. The distinction between nil and the
// empty string is load-bearing: an empty text box still has Content set.
type ContentObject struct {
	// Index is the order in which the object was resolved by the layout
	// pass on its page. Zero-based, unique per page.
	Index int `json:"index"`

	// BBox is the object's bounding box, normalized before storage.
	BBox Rect `json:"bbox"`

	// Type identifies the structural kind reported by the decoder
	// (e.g. "TextBox", "Figure", "Curve"). Open-ended: upstream decoders
	// may introduce new kinds at any time.
	Type string `json:"type"`

	// Content is the object's text, or nil for non-text objects.
	Content *string `json:"content"`
}

// NewTextObject creates a text-bearing ContentObject.
func NewTextObject(index int, bbox Rect, kind, content string) ContentObject {
	return ContentObject{
		Index:   index,
		BBox:    bbox.Normalize(),
		Type:    kind,
		Content: &content,
	}
}

// NewObject creates a non-text ContentObject. Content stays nil.
func NewObject(index int, bbox Rect, kind string) ContentObject {
	return ContentObject{
		Index: index,
		BBox:  bbox.Normalize(),
		Type:  kind,
	}
}

// IsText reports whether the object carries text content.
func (o ContentObject) IsText() bool {
	return o.Content != nil
}

// Text returns the object's content, or "" for non-text objects.
func (o ContentObject) Text() string {
	if o.Content == nil {
		return ""
	}
	return *o.Content
}

// WithContent returns a copy of the object whose Content is replaced.
// Index, BBox and Type are carried over unchanged. Calling WithContent on
// a non-text object is a bug in the caller; the replacement is applied
// anyway since the model has no way to refuse it.
func (o ContentObject) WithContent(content string) ContentObject {
	o.Content = &content
	return o
}
