package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Markup writes HTML for hand-written components. The first write error is
// kept and every later call becomes a no-op.
type Markup struct {
	ctx context.Context
	w   io.Writer
	err error
}

// NewMarkup creates a Markup writing to w
func NewMarkup(ctx context.Context, w io.Writer) *Markup {
	return &Markup{ctx: ctx, w: w}
}

// Func turns a Markup body into a templ component
func Func(fn func(m *Markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := NewMarkup(ctx, w)
		fn(m)
		return m.Err()
	})
}

// Context returns the render context
func (m *Markup) Context() context.Context {
	return m.ctx
}

// Raw writes trusted HTML
func (m *Markup) Raw(parts ...string) *Markup {
	for _, p := range parts {
		if m.err != nil {
			return m
		}
		_, m.err = io.WriteString(m.w, p)
	}
	return m
}

// Text writes escaped text, safe in element bodies and quoted attributes
func (m *Markup) Text(s string) *Markup {
	return m.Raw(templ.EscapeString(s))
}

// Int writes an integer
func (m *Markup) Int(n int) *Markup {
	return m.Raw(strconv.Itoa(n))
}

// URL writes a sanitized, escaped URL for href and src attributes
func (m *Markup) URL(s string) *Markup {
	return m.Text(string(templ.URL(s)))
}

// Render writes a child component
func (m *Markup) Render(c templ.Component) *Markup {
	if m.err != nil || c == nil {
		return m
	}
	m.err = c.Render(m.ctx, m.w)
	return m
}

// If writes the raw parts only when cond holds
func (m *Markup) If(cond bool, parts ...string) *Markup {
	if cond {
		m.Raw(parts...)
	}
	return m
}

// Err returns the first write error
func (m *Markup) Err() error {
	return m.err
}
