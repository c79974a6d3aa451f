package httpx

import (
	"net/http"

	"github.com/openstax/rope/internal/http/ui/viewmodel"
	"github.com/openstax/rope/internal/shell"
)

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{data: basePageData(r, meta)}
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// WithFlashes attaches one-shot messages popped from the flash store.
func (b *TemplateDataBuilder) WithFlashes(flashes []viewmodel.Flash) *TemplateDataBuilder {
	if len(flashes) > 0 {
		b.data["Flashes"] = flashes
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}

// buildLayout constructs shared layout metadata from the request's shell.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   CSRFToken(r),
	}
	if layout.Title == "" {
		layout.Title = "ROPE"
	}

	sh, ok := shell.FromContext(r.Context())
	if !ok {
		return layout
	}
	id := sh.Identity()
	if !id.IsSignedIn() {
		return layout
	}
	layout.IsAuthenticated = true
	layout.IsAdmin = id.CanAdminister()
	layout.CanManageBuilds = id.CanManageBuilds()
	layout.User = &viewmodel.User{Email: id.Email, IsAdmin: id.IsAdmin, IsManager: id.IsManager}
	return layout
}

func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"IsAdmin":         layout.IsAdmin,
		"CanManageBuilds": layout.CanManageBuilds,
		"Errors":          map[string]string{},
	}

	if layout.CSRFToken != "" {
		data["CSRFToken"] = layout.CSRFToken
	}
	if layout.User != nil {
		data["User"] = layout.User
	}

	return data
}
