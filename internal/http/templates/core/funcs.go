// Package core holds the template helpers shared by every page.
package core

import (
	"bytes"
	"errors"
	"html/template"
	"strconv"
	"strings"

	"github.com/openstax/rope/internal/domain/model"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
func Funcs(deps Deps) template.FuncMap {
	funcs := template.FuncMap{
		"sectionTmpl": deps.ContentTemplateFor,
		"add":         func(a, b int) int { return a + b },
		"lower":       strings.ToLower,
		"derefInt":    DerefInt,
		"derefStr":    DerefStr,
		"statusClass": StatusClass,
		"fieldError":  FieldError,
	}

	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - rendered by our own html/template set; values were escaped during ExecuteTemplate.
		return template.HTML(buf.String()), nil
	}
	return funcs
}

// DerefInt renders an optional integer, blank when absent.
func DerefInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// DerefStr renders an optional string, blank when absent.
func DerefStr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// StatusClass maps a course build status to a badge class.
func StatusClass(s model.CourseBuildStatus) string {
	switch s {
	case model.CourseBuildStatusCompleted:
		return "badge-success"
	case model.CourseBuildStatusFailed:
		return "badge-error"
	case model.CourseBuildStatusProcessing:
		return "badge-info"
	default:
		return "badge-neutral"
	}
}

// FieldError looks up a field's message in a validation error map.
func FieldError(errs any, field string) string {
	m, ok := errs.(map[string]string)
	if !ok {
		return ""
	}
	return m[field]
}
