package httpx

import (
	"net/http"
	"slices"
	"strings"

	"github.com/openstax/rope/internal/domain/model"
	apperrors "github.com/openstax/rope/internal/errors"
	"github.com/openstax/rope/internal/http/validation"
	"github.com/openstax/rope/internal/service"
)

const (
	settingsPath = "/settings"

	maxSettingLen  = 255
	maxDistrictLen = 255
)

// SettingsPage shows the Moodle settings and the school districts. Admins only.
func (h *UIHandlers) SettingsPage(w http.ResponseWriter, r *http.Request) {
	sh, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	b := h.newPage(w, r, PageMeta{PageTitle: "Settings", CurrentPage: PageSettings})

	status := http.StatusOK
	page, err := h.Settings.LoadPage(r.Context(), sh.Credentials())
	if err != nil {
		b.WithError(errMessage(err))
		status = formStatus(r, err)
	}
	b.With("MoodleSettings", page.Settings).
		With("Districts", page.Districts)
	h.render(w, r, pageView{Data: b.Build(), Status: status})
}

// SaveMoodleSettings saves every setting posted as setting.<name>.
func (h *UIHandlers) SaveMoodleSettings(w http.ResponseWriter, r *http.Request) {
	sh, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.finish(w, r, outcome{RedirectTo: settingsPath, Err: apperrors.Validation(service.MsgSettingsSaveFailed)})
		return
	}

	values := make(map[string]string)
	var names []string
	fv := validation.New()
	for key, vals := range r.PostForm {
		name, found := strings.CutPrefix(key, settingFieldPrefix)
		if !found || name == "" || len(vals) == 0 {
			continue
		}
		value := strings.TrimSpace(vals[0])
		rules := []validation.Validator{validation.MaxLen(name, maxSettingLen)}
		if name == model.SettingBaseCourseID || name == model.SettingCourseCategory {
			rules = append(rules, validation.OptionalID(name))
		}
		fv.Validate(name, value, rules...)
		values[name] = value
		names = append(names, name)
	}
	slices.Sort(names)
	if msg := fv.First(names...); msg != "" {
		h.finish(w, r, outcome{RedirectTo: settingsPath, Err: apperrors.Validation(msg)})
		return
	}

	current, err := h.Settings.Load(r.Context(), sh.Credentials())
	if err != nil {
		h.finish(w, r, outcome{RedirectTo: settingsPath, Err: err})
		return
	}
	_, err = h.Settings.Save(r.Context(), sh.Credentials(), current.WithValues(values))
	h.finish(w, r, outcome{RedirectTo: settingsPath, Success: service.MsgSettingsSaved, Err: err})
}

// AddDistrict creates an active school district.
func (h *UIHandlers) AddDistrict(w http.ResponseWriter, r *http.Request) {
	sh, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	name := r.PostFormValue(fieldName)
	if msg := validation.MaxLen("District name", maxDistrictLen)(name); msg != "" {
		h.finish(w, r, outcome{RedirectTo: settingsPath, Err: apperrors.ValidationField(fieldName, msg)})
		return
	}
	_, err := h.Settings.AddDistrict(r.Context(), sh.Credentials(), name)
	h.finish(w, r, outcome{RedirectTo: settingsPath, Success: service.MsgDistrictAdded, Err: err})
}

// UpdateDistrict toggles a district's active flag (action=toggle) or renames it (name=...).
func (h *UIHandlers) UpdateDistrict(w http.ResponseWriter, r *http.Request) {
	sh, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	districts, err := h.Settings.ListDistricts(r.Context(), sh.Credentials())
	if err != nil {
		h.finish(w, r, outcome{RedirectTo: settingsPath, Err: err})
		return
	}
	d, err := service.FindDistrict(districts, id)
	if err != nil {
		h.finish(w, r, outcome{RedirectTo: settingsPath, Err: err})
		return
	}

	var updated model.SchoolDistrict
	if r.PostFormValue(fieldAction) == "toggle" {
		updated, err = h.Settings.SetDistrictActive(r.Context(), sh.Credentials(), d, !d.Active)
	} else {
		name := r.PostFormValue(fieldName)
		if msg := validation.MaxLen("District name", maxDistrictLen)(name); msg != "" {
			h.finish(w, r, outcome{RedirectTo: settingsPath, Err: apperrors.ValidationField(fieldName, msg)})
			return
		}
		updated, err = h.Settings.RenameDistrict(r.Context(), sh.Credentials(), d, name)
	}
	h.finish(w, r, outcome{
		RedirectTo: settingsPath,
		Success:    service.DistrictUpdatedMessage(updated.Name),
		Err:        err,
	})
}
