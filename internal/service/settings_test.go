package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/openstax/rope/internal/domain/model"
	apperrors "github.com/openstax/rope/internal/errors"
	"github.com/openstax/rope/internal/mocks"
	"github.com/openstax/rope/internal/testutil"
)

func newSettingsService(t *testing.T) (*SettingsService, *mocks.MockSettingsAPI) {
	t.Helper()
	api := mocks.NewMockSettingsAPI(gomock.NewController(t))
	return NewSettingsService(SettingsServiceOptions{API: api}), api
}

func TestSettingsService_Load_MergesDefaults(t *testing.T) {
	svc, api := newSettingsService(t)
	api.EXPECT().ListMoodleSettings(gomock.Any(), testCreds).Return([]model.MoodleSetting{
		{ID: testutil.IntPtr(5), Name: model.SettingCourseCategory, Value: "12"},
		{ID: testutil.IntPtr(6), Name: "extra", Value: "x"},
	}, nil)

	got, err := svc.Load(context.Background(), testCreds)

	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, model.SettingAcademicYear, got[0].Name)
	assert.False(t, got[0].Persisted())
	assert.Equal(t, "12", got.Value(model.SettingCourseCategory))
	assert.Equal(t, "extra", got[4].Name)
}

func TestSettingsService_Load_Failure(t *testing.T) {
	svc, api := newSettingsService(t)
	api.EXPECT().ListMoodleSettings(gomock.Any(), gomock.Any()).Return(nil, apperrors.Upstream("boom"))

	_, err := svc.Load(context.Background(), testCreds)

	assert.True(t, apperrors.IsUpstream(err))
	assert.Equal(t, MsgSettingsLoadFailed, apperrors.GetMessage(err, ""))
}

func TestSettingsService_Save_CreatesAndUpdates(t *testing.T) {
	svc, api := newSettingsService(t)
	existing := model.MoodleSetting{ID: testutil.IntPtr(1), Name: model.SettingAcademicYear, Value: "AY 2025"}
	missing := model.MoodleSetting{Name: model.SettingBaseCourseID, Value: "7"}

	api.EXPECT().UpdateMoodleSetting(gomock.Any(), testCreds, existing).Return(existing, nil)
	api.EXPECT().CreateMoodleSetting(gomock.Any(), testCreds, missing).
		DoAndReturn(func(_ context.Context, _ any, s model.MoodleSetting) (model.MoodleSetting, error) {
			s.ID = testutil.IntPtr(8)
			return s, nil
		})

	saved, err := svc.Save(context.Background(), testCreds, model.MoodleSettings{existing, missing})

	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, existing, saved[0])
	require.NotNil(t, saved[1].ID)
	assert.Equal(t, 8, *saved[1].ID)
}

func TestSettingsService_Save_AnyFailureFails(t *testing.T) {
	svc, api := newSettingsService(t)
	settings := model.MoodleSettings(testutil.MoodleSettings())

	api.EXPECT().UpdateMoodleSetting(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, s model.MoodleSetting) (model.MoodleSetting, error) {
			if s.Name == model.SettingCourseCategory {
				return model.MoodleSetting{}, apperrors.Upstream("status 500")
			}
			return s, nil
		}).AnyTimes()

	saved, err := svc.Save(context.Background(), testCreds, settings)

	require.Error(t, err)
	assert.Nil(t, saved)
	assert.Equal(t, MsgSettingsSaveFailed, apperrors.GetMessage(err, ""))
}

func TestSettingsService_Set(t *testing.T) {
	svc, api := newSettingsService(t)
	api.EXPECT().ListMoodleSettings(gomock.Any(), gomock.Any()).Return(testutil.MoodleSettings(), nil)
	api.EXPECT().UpdateMoodleSetting(gomock.Any(), gomock.Any(),
		model.MoodleSetting{ID: testutil.IntPtr(1), Name: model.SettingAcademicYear, Value: "AY 2026"}).
		DoAndReturn(func(_ context.Context, _ any, s model.MoodleSetting) (model.MoodleSetting, error) { return s, nil })

	got, err := svc.Set(context.Background(), testCreds, model.SettingAcademicYear, "AY 2026")

	require.NoError(t, err)
	assert.Equal(t, "AY 2026", got.Value)
}

func TestSettingsService_ListDistricts_Sorted(t *testing.T) {
	svc, api := newSettingsService(t)
	api.EXPECT().ListSchoolDistricts(gomock.Any(), gomock.Any()).Return(testutil.Districts(), nil)

	got, err := svc.ListDistricts(context.Background(), testCreds)

	require.NoError(t, err)
	names := make([]string, len(got))
	for i, d := range got {
		names[i] = d.Name
	}
	assert.Equal(t, []string{"andover_isd", "mesa_isd", "snowfall_isd"}, names)
}

func TestSettingsService_AddDistrict(t *testing.T) {
	svc, api := newSettingsService(t)
	api.EXPECT().CreateSchoolDistrict(gomock.Any(), testCreds, model.SchoolDistrict{Name: "cedar_isd", Active: true}).
		Return(model.SchoolDistrict{ID: testutil.IntPtr(4), Name: "cedar_isd", Active: true}, nil)

	d, err := svc.AddDistrict(context.Background(), testCreds, "  cedar_isd ")

	require.NoError(t, err)
	assert.Equal(t, 4, *d.ID)
}

func TestSettingsService_AddDistrict_EmptyName(t *testing.T) {
	svc, _ := newSettingsService(t)

	_, err := svc.AddDistrict(context.Background(), testCreds, "   ")

	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "District name cannot be empty", apperrors.GetMessage(err, ""))
}

func TestSettingsService_AddDistrict_BackendFailure(t *testing.T) {
	svc, api := newSettingsService(t)
	api.EXPECT().CreateSchoolDistrict(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(model.SchoolDistrict{}, apperrors.Upstream("boom"))

	_, err := svc.AddDistrict(context.Background(), testCreds, "cedar_isd")

	assert.Equal(t, MsgDistrictAddFailed, apperrors.GetMessage(err, ""))
}

func TestSettingsService_UpdateDistrict(t *testing.T) {
	svc, api := newSettingsService(t)
	d := model.SchoolDistrict{ID: testutil.IntPtr(2), Name: "snowfall_isd", Active: true}

	api.EXPECT().UpdateSchoolDistrict(gomock.Any(), gomock.Any(),
		model.SchoolDistrict{ID: testutil.IntPtr(2), Name: "snowfall_isd", Active: false}).
		DoAndReturn(func(_ context.Context, _ any, in model.SchoolDistrict) (model.SchoolDistrict, error) { return in, nil })
	api.EXPECT().UpdateSchoolDistrict(gomock.Any(), gomock.Any(),
		model.SchoolDistrict{ID: testutil.IntPtr(2), Name: "winterfall_isd", Active: true}).
		Return(model.SchoolDistrict{}, apperrors.Upstream("boom"))

	off, err := svc.SetDistrictActive(context.Background(), testCreds, d, false)
	require.NoError(t, err)
	assert.False(t, off.Active)

	_, err = svc.RenameDistrict(context.Background(), testCreds, d, "winterfall_isd")
	assert.Equal(t, `Error updating district "winterfall_isd"`, apperrors.GetMessage(err, ""))

	_, err = svc.RenameDistrict(context.Background(), testCreds, d, "")
	assert.True(t, apperrors.IsValidation(err))
}

func TestFindDistrict(t *testing.T) {
	d, err := FindDistrict(testutil.Districts(), 3)
	require.NoError(t, err)
	assert.Equal(t, "mesa_isd", d.Name)

	_, err = FindDistrict(append(testutil.Districts(), model.SchoolDistrict{Name: "unsaved"}), 42)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSettingsService_LoadPage(t *testing.T) {
	svc, api := newSettingsService(t)
	api.EXPECT().ListMoodleSettings(gomock.Any(), gomock.Any()).Return(testutil.MoodleSettings(), nil)
	api.EXPECT().ListSchoolDistricts(gomock.Any(), gomock.Any()).Return(testutil.Districts(), nil)

	page, err := svc.LoadPage(context.Background(), testCreds)

	require.NoError(t, err)
	assert.Equal(t, "AY 2024", page.Settings.Value(model.SettingAcademicYear))
	assert.Len(t, page.Districts, 3)
}

func TestSettingsService_LoadPage_Failure(t *testing.T) {
	svc, api := newSettingsService(t)
	api.EXPECT().ListMoodleSettings(gomock.Any(), gomock.Any()).Return(testutil.MoodleSettings(), nil).AnyTimes()
	api.EXPECT().ListSchoolDistricts(gomock.Any(), gomock.Any()).Return(nil, apperrors.Upstream("boom"))

	_, err := svc.LoadPage(context.Background(), testCreds)

	assert.Equal(t, MsgDistrictsLoadFailed, apperrors.GetMessage(err, ""))
}
