package httpx

import (
	"net/http"
	"strconv"

	"github.com/openstax/rope/internal/domain/model"
	apperrors "github.com/openstax/rope/internal/errors"
	"github.com/openstax/rope/internal/http/validation"
	"github.com/openstax/rope/internal/service"
)

const usersPath = "/users"

// maxEmailLen is the longest address RFC 5321 allows.
const maxEmailLen = 254

type usersView struct {
	Form   model.NewUserRequest
	Errors map[string]string
	Status int
}

func (h *UIHandlers) renderUsers(w http.ResponseWriter, r *http.Request, v usersView) {
	sh, _ := viewer(r)
	b := h.newPage(w, r, PageMeta{PageTitle: "Users", CurrentPage: PageUsers}).
		With("Form", v.Form).
		WithFieldErrors(v.Errors)

	users, err := h.Users.List(r.Context(), sh.Credentials())
	if err != nil {
		b.WithError(errMessage(err))
		if v.Status == 0 {
			v.Status = formStatus(r, err)
		}
	}
	b.With("Users", users)
	h.render(w, r, pageView{Data: b.Build(), Status: v.Status})
}

// UsersPage lists the accounts allowed to sign in. Admins only.
func (h *UIHandlers) UsersPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}
	h.renderUsers(w, r, usersView{})
}

// AddUser grants a new account access. Admins only.
func (h *UIHandlers) AddUser(w http.ResponseWriter, r *http.Request) {
	sh, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	in := model.NewUserRequest{
		Email:     r.PostFormValue(fieldEmail),
		IsAdmin:   formBool(r, fieldIsAdmin),
		IsManager: formBool(r, fieldIsManager),
	}

	fv := validation.New().Validate(fieldEmail, in.Email, validation.Required("Email", maxEmailLen))
	if msg := fv.First(fieldEmail); msg != "" {
		err := apperrors.ValidationField(fieldEmail, msg)
		h.renderUsers(w, r, usersView{Form: in, Errors: fv.Errors(), Status: formStatus(r, err)})
		return
	}

	user, err := h.Users.Add(r.Context(), sh.Credentials(), in)
	if errs := fieldErrors(err); errs != nil {
		h.renderUsers(w, r, usersView{Form: in, Errors: errs, Status: formStatus(r, err)})
		return
	}
	h.finish(w, r, outcome{RedirectTo: usersPath, Success: "Added " + user.Email, Err: err})
}

// UpdatePermissions sets a user's admin and manager flags. The backend
// replaces the whole user, so the current record is loaded first.
func (h *UIHandlers) UpdatePermissions(w http.ResponseWriter, r *http.Request) {
	sh, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	users, err := h.Users.List(r.Context(), sh.Credentials())
	if err != nil {
		h.finish(w, r, outcome{RedirectTo: usersPath, Err: err})
		return
	}
	user, err := service.FindUser(users, id)
	if err != nil {
		h.finish(w, r, outcome{RedirectTo: usersPath, Err: err})
		return
	}
	user.IsAdmin = formBool(r, fieldIsAdmin)
	user.IsManager = formBool(r, fieldIsManager)

	updated, err := h.Users.UpdatePermissions(r.Context(), sh.Credentials(), user)
	h.finish(w, r, outcome{RedirectTo: usersPath, Success: "Updated permissions for " + updated.Email, Err: err})
}

// DeleteUser revokes an account. Admins only.
func (h *UIHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	sh, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	err := h.Users.Delete(r.Context(), sh.Credentials(), id)
	h.finish(w, r, outcome{RedirectTo: usersPath, Success: "User deleted", Err: err})
}

// pathID parses the {id} path value, answering 404 when it is not a number.
func (h *UIHandlers) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		h.NotFound(w, r)
		return 0, false
	}
	return id, true
}

// formBool reads a checkbox: present with "on", "true" or "1" means checked.
func formBool(r *http.Request, field string) bool {
	switch r.PostFormValue(field) {
	case "on", "true", "1":
		return true
	default:
		return false
	}
}
