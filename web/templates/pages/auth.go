package pages

import (
	"food-ordering-web/internal/modal"
	"food-ordering-web/internal/models"
	"food-ordering-web/internal/services"
	"food-ordering-web/internal/validation"
	"food-ordering-web/web/templates/components"

	"github.com/a-h/templ"
)

// SignInForm is the state of the sign-in form, on its page or in the modal
type SignInForm struct {
	Email    string
	Redirect string
	Message  string
	Errors   validation.Errors
}

// HomePage is the landing page with the sign-in modal
type HomePage struct {
	Page   components.Page
	Modal  modal.State
	SignIn SignInForm
}

// Home renders the landing page
func Home(p HomePage) templ.Component {
	body := components.Func(func(m *Markup) {
		m.Raw(`<section class="py-12 text-center">`)
		m.Raw(`<h1 class="mb-4 text-4xl font-bold text-gray-900">Hungry? Order from the best restaurants around you.</h1>`)
		switch {
		case p.Page.Session == nil:
			m.Raw(`<p class="mb-8 text-gray-600">Sign in to browse menus and place orders.</p>`)
			m.Raw(`<a href="/?modal=signin" class="rounded-lg bg-red-600 px-6 py-3 font-medium text-white hover:bg-red-700">Sign in</a>`)
		case p.Page.Session.IsRestaurant():
			m.Raw(`<a href="/restaurants/dashboard" class="rounded-lg bg-red-600 px-6 py-3 font-medium text-white hover:bg-red-700">Open dashboard</a>`)
		default:
			m.Render(searchBox(services.SearchQuery{}))
			m.Render(categoryShortcuts())
		}
		m.Raw(`</section>`)
	})

	var overlay templ.Component
	if p.Modal.IsOpen(modal.SignIn) && p.Page.Session == nil {
		overlay = components.Modal("Sign in", "/", signInForm(p.SignIn))
	}
	return components.Layout(p.Page, body, overlay)
}

// LoginPage is the standalone sign-in page
type LoginPage struct {
	Page components.Page
	Form SignInForm
}

// Login renders the sign-in page
func Login(p LoginPage) templ.Component {
	body := components.Func(func(m *Markup) {
		m.Raw(`<div class="mx-auto max-w-md rounded-xl bg-white p-8 shadow">`)
		m.Raw(`<h1 class="mb-6 text-2xl font-bold">Sign in</h1>`)
		m.Render(signInForm(p.Form))
		m.Raw(`</div>`)
	})
	return components.Layout(p.Page, body, nil)
}

// SignInFormPartial is the form alone, swapped in by HTMX after a failed attempt
func SignInFormPartial(f SignInForm) templ.Component {
	return signInForm(f)
}

func signInForm(f SignInForm) templ.Component {
	return components.Func(func(m *Markup) {
		m.Raw(`<form id="signin-form" method="POST" action="/login" hx-post="/login" hx-target="#signin-form" hx-swap="outerHTML" hx-indicator="#signin-indicator">`)
		m.Render(components.CSRFField())
		m.Raw(`<input type="hidden" name="redirect" value="`).Text(f.Redirect).Raw(`">`)
		m.Render(components.FormMessage(f.Message))
		m.Render(components.Field(components.FieldProps{Name: "email", Label: "Email", Type: "email", Value: f.Email, Placeholder: "you@example.com", Errors: f.Errors}))
		m.Render(components.Field(components.FieldProps{Name: "password", Label: "Password", Type: "password", Errors: f.Errors}))
		m.Raw(`<button type="submit" class="w-full rounded-lg bg-red-600 py-2 font-medium text-white hover:bg-red-700">Sign in</button>`)
		m.Render(components.Indicator("signin-indicator"))
		m.Raw(`<p class="mt-4 text-center text-sm text-gray-600">No account yet? <a href="/signup/client" class="text-red-600 hover:underline">Sign up</a></p>`)
		m.Raw(`</form>`)
	})
}

// SignUpPage is the customer sign-up page
type SignUpPage struct {
	Page    components.Page
	Form    services.SignUpForm
	Message string
	Errors  validation.Errors
}

// SignUp renders the customer sign-up page
func SignUp(p SignUpPage) templ.Component {
	body := components.Func(func(m *Markup) {
		m.Raw(`<div class="mx-auto max-w-md rounded-xl bg-white p-8 shadow">`)
		m.Raw(`<h1 class="mb-6 text-2xl font-bold">Create your account</h1>`)
		m.Render(signUpForm(p))
		m.Raw(`</div>`)
	})
	return components.Layout(p.Page, body, nil)
}

// SignUpFormPartial is the form alone for HTMX swaps
func SignUpFormPartial(p SignUpPage) templ.Component {
	return signUpForm(p)
}

func signUpForm(p SignUpPage) templ.Component {
	return components.Func(func(m *Markup) {
		m.Raw(`<form id="signup-form" method="POST" action="/signup/client" hx-post="/signup/client" hx-target="#signup-form" hx-swap="outerHTML" hx-indicator="#signup-indicator">`)
		m.Render(components.CSRFField())
		m.Render(components.FormMessage(p.Message))
		m.Render(components.Field(components.FieldProps{Name: "name", Label: "Name", Value: p.Form.Name, Errors: p.Errors}))
		m.Render(components.Field(components.FieldProps{Name: "email", Label: "Email", Type: "email", Value: p.Form.Email, Errors: p.Errors}))
		m.Render(components.Field(components.FieldProps{Name: "password", Label: "Password", Type: "password", Errors: p.Errors}))
		m.Render(components.Field(components.FieldProps{Name: "confirmPassword", Label: "Confirm password", Type: "password", Errors: p.Errors}))
		m.Raw(`<button type="submit" class="w-full rounded-lg bg-red-600 py-2 font-medium text-white hover:bg-red-700">Sign up</button>`)
		m.Render(components.Indicator("signup-indicator"))
		m.Raw(`</form>`)
	})
}

// accountLabel is shown on the dashboards
func accountLabel(sess *models.Session) string {
	if sess == nil {
		return ""
	}
	return sess.AccountType.Label()
}
