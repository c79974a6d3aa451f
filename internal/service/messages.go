package service

// Messages shown inline on rope's pages.
const (
	MsgAdminOnly   = "This page is admin only"
	MsgManagerOnly = "Only admins and managers can create course builds"

	MsgInvalidInstitutionEmail = "Please enter a valid Rice University email"
	MsgListUsersFailed         = "Failed to get users"
	MsgAddUserFailed           = "Failed to add user"
	MsgDeleteUserFailed        = "Failed to delete user"
	MsgUpdatePermissionsFailed = "Failed to update user permissions"

	MsgSettingsSaved      = "Settings saved successfully"
	MsgSettingsSaveFailed = "Failed to save settings"
	MsgDistrictAdded      = "District added successfully"
	MsgDistrictAddFailed  = "Error adding district"

	MsgNoMoodleAccount    = "User with that email does not have a Moodle account"
	MsgMoodleLookupFailed = "Failed to retrieve instructor from Moodle"
	MsgNoCourseBuild      = "A course build does not exist for that instructor"
	MsgCourseBuildsFailed = "Failed to retrieve course builds"
	MsgCourseBuildCreated = "Course build successfully created!"
	MsgCourseBuildFailed  = "Unable to create course build!"

	MsgFirstNameRequired   = "Instructor first name required"
	MsgLastNameRequired    = "Instructor last name required"
	MsgInvalidEmail        = "Invalid email"
	MsgEmailRequired       = "Instructor email required"
	MsgDistrictRequired    = "A school district must be selected"
	MsgDistrictsLoadFailed = "Failed to load school districts"
	MsgSettingsLoadFailed  = "Failed to load settings"

	MsgLoginFailed  = "Unable to sign in"
	MsgLogoutFailed = "Unable to sign out"
)

// DistrictUpdatedMessage is the confirmation after a district changes.
func DistrictUpdatedMessage(name string) string {
	return `District "` + name + `" updated successfully`
}

// DistrictUpdateFailedMessage is the error after a district update fails.
func DistrictUpdateFailedMessage(name string) string {
	return `Error updating district "` + name + `"`
}
