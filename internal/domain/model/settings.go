//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// Names of the Moodle settings rope always shows.
const (
	SettingAcademicYear      = "academic_year"
	SettingAcademicYearShort = "academic_year_short"
	SettingCourseCategory    = "course_category"
	SettingBaseCourseID      = "base_course_id"
)

// MoodleSetting is a named value used when building courses.
// ID is nil until the setting exists in the backend.
type MoodleSetting struct {
	ID    *int
	Name  string
	Value string
}

// Persisted reports whether the backend already stores this setting.
func (s MoodleSetting) Persisted() bool { return s.ID != nil }

// MoodleSettings is an ordered collection of settings with lookup by name.
type MoodleSettings []MoodleSetting

// DefaultMoodleSettings returns the settings every deployment needs, with empty values.
func DefaultMoodleSettings() MoodleSettings {
	return MoodleSettings{
		{Name: SettingAcademicYear},
		{Name: SettingAcademicYearShort},
		{Name: SettingCourseCategory},
		{Name: SettingBaseCourseID},
	}
}

// Find returns the setting with the given name.
func (s MoodleSettings) Find(name string) (MoodleSetting, bool) {
	for _, setting := range s {
		if setting.Name == name {
			return setting, true
		}
	}
	return MoodleSetting{}, false
}

// Value returns the value of the named setting, or "" when missing.
func (s MoodleSettings) Value(name string) string {
	setting, _ := s.Find(name)
	return setting.Value
}

// Merge overlays remote settings onto s. Settings in s keep their position;
// remote settings with new names are appended in the order given.
func (s MoodleSettings) Merge(remote []MoodleSetting) MoodleSettings {
	out := make(MoodleSettings, len(s), len(s)+len(remote))
	copy(out, s)

	index := make(map[string]int, len(out))
	for i, setting := range out {
		index[setting.Name] = i
	}
	for _, r := range remote {
		if i, ok := index[r.Name]; ok {
			out[i] = r
			continue
		}
		index[r.Name] = len(out)
		out = append(out, r)
	}
	return out
}

// WithValues returns a copy of s with values replaced from the given map.
// Names not present in s are ignored.
func (s MoodleSettings) WithValues(values map[string]string) MoodleSettings {
	out := make(MoodleSettings, len(s))
	for i, setting := range s {
		if v, ok := values[setting.Name]; ok {
			setting.Value = v
		}
		out[i] = setting
	}
	return out
}
