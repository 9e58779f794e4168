package components

import (
	"context"

	"food-ordering-web/internal/middleware"
	"food-ordering-web/internal/validation"

	"github.com/a-h/templ"
)

// getCSRFToken gets the CSRF token from the request context
func getCSRFToken(ctx context.Context) string {
	return middleware.GetCSRFToken(ctx)
}

// CSRFField is the hidden token input every POST form carries
func CSRFField() templ.Component {
	return Func(func(m *Markup) {
		m.Raw(`<input type="hidden" name="csrf_token" value="`).Text(getCSRFToken(m.Context())).Raw(`">`)
	})
}

// FieldProps describes one labelled form input
type FieldProps struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	InputMode   string
	MaxLength   int
	Errors      validation.Errors
}

// Field renders an input with its inline validation message
func Field(p FieldProps) templ.Component {
	return Func(func(m *Markup) {
		typ := p.Type
		if typ == "" {
			typ = "text"
		}
		msg := p.Errors.Get(p.Name)

		m.Raw(`<div class="mb-4"><label for="`).Text(p.Name).Raw(`" class="mb-1 block text-sm font-medium text-gray-700">`).Text(p.Label).Raw(`</label>`)
		m.Raw(`<input id="`).Text(p.Name).Raw(`" name="`).Text(p.Name).Raw(`" type="`).Text(typ).Raw(`" value="`).Text(p.Value).Raw(`"`)
		if p.Placeholder != "" {
			m.Raw(` placeholder="`).Text(p.Placeholder).Raw(`"`)
		}
		if p.InputMode != "" {
			m.Raw(` inputmode="`).Text(p.InputMode).Raw(`"`)
		}
		if p.MaxLength > 0 {
			m.Raw(` maxlength="`).Int(p.MaxLength).Raw(`"`)
		}
		if msg != "" {
			m.Raw(` aria-invalid="true" class="w-full rounded-lg border border-red-500 px-3 py-2">`)
			m.Raw(`<p class="mt-1 text-sm text-red-600">`).Text(msg).Raw(`</p>`)
		} else {
			m.Raw(` class="w-full rounded-lg border border-gray-300 px-3 py-2">`)
		}
		m.Raw(`</div>`)
	})
}

// FormMessage shows a form level error above the fields
func FormMessage(message string) templ.Component {
	return Func(func(m *Markup) {
		if message == "" {
			return
		}
		m.Raw(`<div role="alert" class="mb-4 rounded-lg border border-red-200 bg-red-50 p-3 text-sm text-red-800">`).Text(message).Raw(`</div>`)
	})
}
