package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	domainauth "github.com/openstax/rope/internal/domain/auth"
	"github.com/openstax/rope/internal/domain/model"
)

type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case outputTable, outputJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid options: table, json)", s)
	}
}

// table is a header plus rows of tab-separated cells.
type table struct {
	header []string
	rows   [][]string
}

// render writes t as aligned columns, or v as indented JSON.
func (a *app) render(t table, v any) error {
	if a.format == outputJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(t.header, "\t")); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	for _, row := range t.rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return tw.Flush()
}

type identityJSON struct {
	Status    string `json:"status"`
	Email     string `json:"email,omitempty"`
	IsAdmin   bool   `json:"is_admin"`
	IsManager bool   `json:"is_manager"`
}

func identityRow(id domainauth.Identity) identityJSON {
	return identityJSON{Status: id.Status.String(), Email: id.Email, IsAdmin: id.IsAdmin, IsManager: id.IsManager}
}

func identityTable(id domainauth.Identity) table {
	return table{
		header: []string{"STATUS", "EMAIL", "ADMIN", "MANAGER"},
		rows: [][]string{{
			id.Status.String(), id.Email, strconv.FormatBool(id.IsAdmin), strconv.FormatBool(id.IsManager),
		}},
	}
}

type userJSON struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	IsManager bool   `json:"is_manager"`
}

func userRows(users []model.User) []userJSON {
	out := make([]userJSON, 0, len(users))
	for _, u := range users {
		out = append(out, userJSON{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin, IsManager: u.IsManager})
	}
	return out
}

func userTable(users []model.User) table {
	t := table{header: []string{"ID", "EMAIL", "ADMIN", "MANAGER"}}
	for _, u := range users {
		t.rows = append(t.rows, []string{
			strconv.Itoa(u.ID), u.Email, strconv.FormatBool(u.IsAdmin), strconv.FormatBool(u.IsManager),
		})
	}
	return t
}

type settingJSON struct {
	ID    *int   `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

func settingRows(settings model.MoodleSettings) []settingJSON {
	out := make([]settingJSON, 0, len(settings))
	for _, s := range settings {
		out = append(out, settingJSON{ID: s.ID, Name: s.Name, Value: s.Value})
	}
	return out
}

func settingTable(settings model.MoodleSettings) table {
	t := table{header: []string{"ID", "NAME", "VALUE"}}
	for _, s := range settings {
		t.rows = append(t.rows, []string{optInt(s.ID), s.Name, s.Value})
	}
	return t
}

type districtJSON struct {
	ID     *int   `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func districtRows(districts []model.SchoolDistrict) []districtJSON {
	out := make([]districtJSON, 0, len(districts))
	for _, d := range districts {
		out = append(out, districtJSON{ID: d.ID, Name: d.Name, Active: d.Active})
	}
	return out
}

func districtTable(districts []model.SchoolDistrict) table {
	t := table{header: []string{"ID", "NAME", "ACTIVE"}}
	for _, d := range districts {
		t.rows = append(t.rows, []string{optInt(d.ID), d.Name, strconv.FormatBool(d.Active)})
	}
	return t
}

type buildJSON struct {
	ID                  int     `json:"id"`
	InstructorEmail     string  `json:"instructor_email"`
	InstructorName      string  `json:"instructor_name"`
	SchoolDistrictName  string  `json:"school_district_name"`
	AcademicYear        string  `json:"academic_year"`
	CourseName          string  `json:"course_name"`
	CourseID            *int    `json:"course_id"`
	CourseEnrollmentURL *string `json:"course_enrollment_url"`
	CourseEnrollmentKey *string `json:"course_enrollment_key"`
	CreatorEmail        string  `json:"creator_email"`
	Status              string  `json:"status"`
}

func buildRows(builds []model.CourseBuild) []buildJSON {
	out := make([]buildJSON, 0, len(builds))
	for _, b := range builds {
		out = append(out, buildJSON{
			ID:                  b.ID,
			InstructorEmail:     b.InstructorEmail,
			InstructorName:      b.InstructorName(),
			SchoolDistrictName:  b.SchoolDistrictName,
			AcademicYear:        b.AcademicYear,
			CourseName:          b.CourseName,
			CourseID:            b.CourseID,
			CourseEnrollmentURL: b.CourseEnrollmentURL,
			CourseEnrollmentKey: b.CourseEnrollmentKey,
			CreatorEmail:        b.CreatorEmail,
			Status:              string(b.Status),
		})
	}
	return out
}

func buildTable(builds []model.CourseBuild) table {
	t := table{header: []string{"ID", "INSTRUCTOR", "DISTRICT", "YEAR", "COURSE", "COURSE ID", "ENROLLMENT URL", "STATUS", "CREATOR"}}
	for _, b := range builds {
		t.rows = append(t.rows, []string{
			strconv.Itoa(b.ID),
			b.InstructorEmail,
			b.SchoolDistrictName,
			b.AcademicYear,
			b.CourseName,
			optInt(b.CourseID),
			optString(b.CourseEnrollmentURL),
			string(b.Status),
			b.CreatorEmail,
		})
	}
	return t
}
