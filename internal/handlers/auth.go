package handlers

import (
	"errors"
	"net/http"
	"strings"

	"food-ordering-web/internal/middleware"
	"food-ordering-web/internal/models"
	"food-ordering-web/internal/services"
	"food-ordering-web/internal/session"
	"food-ordering-web/internal/validation"
	"food-ordering-web/web/templates/pages"

	"github.com/rs/zerolog"
)

const genericFailure = "Something went wrong. Please try again."

// AuthHandler handles sign-in, sign-out and customer sign-up
type AuthHandler struct {
	signup  *services.SignupService
	limiter *middleware.LoginRateLimiter
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(signup *services.SignupService, limiter *middleware.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{
		signup:  signup,
		limiter: limiter,
	}
}

// landingFor is where a user goes after signing in
func landingFor(sess *models.Session, redirect string) string {
	if redirect != "" {
		return redirect
	}
	if sess.IsRestaurant() {
		return "/restaurants/dashboard"
	}
	return "/restaurant/search"
}

// Home renders the landing page. ?modal=signin opens the sign-in modal.
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	st := state(r)
	form := pages.SignInForm{Redirect: middleware.SafeRedirect(r.URL.Query().Get("redirect"), "")}
	render(w, r, http.StatusOK, pages.Home(pages.HomePage{
		Page:   page(r, st, ""),
		Modal:  st.Modal,
		SignIn: form,
	}))
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	st := state(r)
	redirect := middleware.SafeRedirect(r.URL.Query().Get("redirect"), "")

	// If user is already logged in, skip the form
	if sess := st.Session.Current(); sess != nil {
		http.Redirect(w, r, landingFor(sess, redirect), http.StatusSeeOther)
		return
	}

	render(w, r, http.StatusOK, pages.Login(pages.LoginPage{
		Page: page(r, st, "Sign in"),
		Form: pages.SignInForm{Redirect: redirect},
	}))
}

// LoginSubmit handles login form submission
func (h *AuthHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	st := state(r)
	creds := session.Credentials{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	form := pages.SignInForm{
		Email:    creds.Email,
		Redirect: middleware.SafeRedirect(r.FormValue("redirect"), ""),
	}

	sess, err := st.Session.SignIn(r.Context(), creds)
	if err != nil {
		logger := zerolog.Ctx(r.Context())
		var verrs validation.Errors
		var authErr *session.AuthError
		switch {
		case errors.As(err, &verrs):
			form.Errors = verrs
		case errors.As(err, &authErr):
			logger.Info().Err(err).Str("email", creds.Email).Msg("sign-in rejected")
			form.Message = authErr.Message
		default:
			logger.Error().Err(err).Msg("sign-in failed")
			form.Message = genericFailure
		}
		h.renderSignInForm(w, r, st, form)
		return
	}

	h.limiter.Reset(middleware.ClientIP(r))
	zerolog.Ctx(r.Context()).Info().
		Str("subject", sess.SubjectID).
		Str("account_type", string(sess.AccountType)).
		Msg("user signed in")
	middleware.Redirect(w, r, landingFor(sess, form.Redirect))
}

// renderSignInForm shows the form again with its errors. HTMX swaps only
// successful responses, so the partial goes out as 200.
func (h *AuthHandler) renderSignInForm(w http.ResponseWriter, r *http.Request, st *middleware.State, form pages.SignInForm) {
	if middleware.IsHTMXRequest(r) {
		render(w, r, http.StatusOK, pages.SignInFormPartial(form))
		return
	}
	render(w, r, http.StatusUnprocessableEntity, pages.Login(pages.LoginPage{
		Page: page(r, st, "Sign in"),
		Form: form,
	}))
}

// Logout signs the user out and clears everything tied to the account
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	st := state(r)
	if err := st.Session.SignOut(); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to sign out")
		http.Error(w, "Failed to sign out", http.StatusInternalServerError)
		return
	}
	middleware.Redirect(w, r, "/")
}

// SignUpPage renders the customer sign-up page
func (h *AuthHandler) SignUpPage(w http.ResponseWriter, r *http.Request) {
	st := state(r)
	if sess := st.Session.Current(); sess != nil {
		http.Redirect(w, r, landingFor(sess, ""), http.StatusSeeOther)
		return
	}
	render(w, r, http.StatusOK, pages.SignUp(pages.SignUpPage{Page: page(r, st, "Sign up")}))
}

// SignUpSubmit registers a customer and sends them to the sign-in modal
func (h *AuthHandler) SignUpSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	st := state(r)
	form := services.SignUpForm{
		Name:            r.FormValue("name"),
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirmPassword"),
	}

	profile, err := h.signup.RegisterClient(r.Context(), form)
	if err != nil {
		view := pages.SignUpPage{Form: form}
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			view.Errors = verrs
		case errors.Is(err, services.ErrSignupRejected):
			view.Message = "We could not create your account. Please try again."
		default:
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("sign-up failed")
			view.Message = userMessage(err)
		}
		view.Form.Password, view.Form.ConfirmPassword = "", ""

		if middleware.IsHTMXRequest(r) {
			render(w, r, http.StatusOK, pages.SignUpFormPartial(view))
			return
		}
		view.Page = page(r, st, "Sign up")
		render(w, r, http.StatusUnprocessableEntity, pages.SignUp(view))
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("subject", profile.SubjectID).Msg("customer registered")
	success(r, st, "Account created. Please sign in.")
	middleware.Redirect(w, r, "/?modal=signin")
}
