package tool

// Role identifies who a content item is meant for.
type Role string

const (
	// RoleAssistant is the automated agent issuing tool calls.
	RoleAssistant Role = "assistant"
	// RoleUser is the human operator watching the session.
	RoleUser Role = "user"
)

// ContentType discriminates the payload carried by a Content item.
type ContentType string

const (
	ContentText     ContentType = "text"
	ContentResource ContentType = "resource"
	ContentImage    ContentType = "image"
)

// Resource is an embedded text resource, identified by URI.
type Resource struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

// Annotations tag a content item with its audience and display priority.
// A nil Audience means the item is visible to everyone. Lower priority
// means more ephemeral output that a UI may collapse.
type Annotations struct {
	Audience []Role   `json:"audience,omitempty"`
	Priority *float64 `json:"priority,omitempty"`
}

// Content is one item of a tool call result.
type Content struct {
	Type        ContentType  `json:"type"`
	Text        string       `json:"text,omitempty"`
	Resource    *Resource    `json:"resource,omitempty"`
	Data        string       `json:"data,omitempty"` // base64, images only
	MimeType    string       `json:"mimeType,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty"`
}

// Text creates a plain text item.
func Text(text string) Content {
	return Content{Type: ContentText, Text: text}
}

// EmbeddedText creates a text resource item.
func EmbeddedText(uri, text string) Content {
	return Content{
		Type:     ContentResource,
		Resource: &Resource{URI: uri, MimeType: "text", Text: text},
	}
}

// Image creates an image item from base64 data.
func Image(data, mimeType string) Content {
	return Content{Type: ContentImage, Data: data, MimeType: mimeType}
}

// WithAudience returns a copy of c restricted to the given roles.
func (c Content) WithAudience(roles ...Role) Content {
	a := c.annotations()
	a.Audience = append([]Role(nil), roles...)
	c.Annotations = a
	return c
}

// WithPriority returns a copy of c with the given display priority.
func (c Content) WithPriority(priority float64) Content {
	a := c.annotations()
	a.Priority = &priority
	c.Annotations = a
	return c
}

// annotations returns a fresh copy so items never share annotation state.
func (c Content) annotations() *Annotations {
	if c.Annotations == nil {
		return &Annotations{}
	}
	cp := *c.Annotations
	cp.Audience = append([]Role(nil), c.Annotations.Audience...)
	return &cp
}

// Audience returns the roles the item is restricted to, or nil if unrestricted.
func (c Content) Audience() []Role {
	if c.Annotations == nil {
		return nil
	}
	return c.Annotations.Audience
}

// Priority returns the display priority if one was set.
func (c Content) Priority() (float64, bool) {
	if c.Annotations == nil || c.Annotations.Priority == nil {
		return 0, false
	}
	return *c.Annotations.Priority, true
}

// VisibleTo reports whether role should see the item.
func (c Content) VisibleTo(role Role) bool {
	audience := c.Audience()
	if len(audience) == 0 {
		return true
	}
	for _, r := range audience {
		if r == role {
			return true
		}
	}
	return false
}

// AsText returns the textual payload of text and resource items.
func (c Content) AsText() (string, bool) {
	switch c.Type {
	case ContentText:
		return c.Text, true
	case ContentResource:
		if c.Resource != nil {
			return c.Resource.Text, true
		}
	}
	return "", false
}

// ForAudience keeps only the items visible to role, preserving order.
func ForAudience(items []Content, role Role) []Content {
	out := make([]Content, 0, len(items))
	for _, item := range items {
		if item.VisibleTo(role) {
			out = append(out, item)
		}
	}
	return out
}
