package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/openstax/rope/internal/domain/model"
	apperrors "github.com/openstax/rope/internal/errors"
	"github.com/openstax/rope/internal/ports"
)

// SettingsServiceOptions groups dependencies for SettingsService.
type SettingsServiceOptions struct {
	API           ports.SettingsAPI
	Observability Observability
}

// SettingsService manages the Moodle settings and school districts.
type SettingsService struct {
	api ports.SettingsAPI
	obs Observability
}

// NewSettingsService constructs a new SettingsService.
func NewSettingsService(opts SettingsServiceOptions) *SettingsService {
	if opts.API == nil {
		panic("service: SettingsService requires a SettingsAPI")
	}
	return &SettingsService{api: opts.API, obs: opts.Observability}
}

// Load returns the default settings overlaid with what the backend stores.
func (s *SettingsService) Load(ctx context.Context, creds ports.Credentials) (model.MoodleSettings, error) {
	remote, err := s.api.ListMoodleSettings(ctx, creds)
	s.obs.operation("settings.load", err)
	if err != nil {
		s.obs.logger().ErrorContext(ctx, "load moodle settings failed", "error", err)
		return nil, apperrors.Wrap(err, codeOr(err, apperrors.ErrCodeUpstream), MsgSettingsLoadFailed)
	}
	return model.DefaultMoodleSettings().Merge(remote), nil
}

// Save writes every setting, creating the ones the backend does not have yet
// and updating the rest. The writes run concurrently; the first failure
// fails the save and the others are canceled.
func (s *SettingsService) Save(ctx context.Context, creds ports.Credentials, settings model.MoodleSettings) (model.MoodleSettings, error) {
	saved := make(model.MoodleSettings, len(settings))

	g, gctx := errgroup.WithContext(ctx)
	for i, setting := range settings {
		g.Go(func() error {
			var (
				out model.MoodleSetting
				err error
			)
			if setting.Persisted() {
				out, err = s.api.UpdateMoodleSetting(gctx, creds, setting)
			} else {
				out, err = s.api.CreateMoodleSetting(gctx, creds, setting)
			}
			if err != nil {
				return err
			}
			saved[i] = out
			return nil
		})
	}

	err := g.Wait()
	s.obs.operation("settings.save", err)
	if err != nil {
		s.obs.logger().ErrorContext(ctx, "save moodle settings failed", "count", len(settings), "error", err)
		return nil, apperrors.Wrap(err, codeOr(err, apperrors.ErrCodeUpstream), MsgSettingsSaveFailed)
	}
	s.obs.logger().InfoContext(ctx, "moodle settings saved", "count", len(saved))
	return saved, nil
}

// Set updates a single named setting, creating it when missing.
func (s *SettingsService) Set(ctx context.Context, creds ports.Credentials, name, value string) (model.MoodleSetting, error) {
	current, err := s.Load(ctx, creds)
	if err != nil {
		return model.MoodleSetting{}, err
	}
	setting, ok := current.Find(name)
	if !ok {
		setting = model.MoodleSetting{Name: name}
	}
	setting.Value = value

	saved, err := s.Save(ctx, creds, model.MoodleSettings{setting})
	if err != nil {
		return model.MoodleSetting{}, err
	}
	return saved[0], nil
}

// ListDistricts returns every district ordered by name.
func (s *SettingsService) ListDistricts(ctx context.Context, creds ports.Credentials) ([]model.SchoolDistrict, error) {
	districts, err := s.api.ListSchoolDistricts(ctx, creds)
	s.obs.operation("district.list", err)
	if err != nil {
		s.obs.logger().ErrorContext(ctx, "list school districts failed", "error", err)
		return nil, apperrors.Wrap(err, codeOr(err, apperrors.ErrCodeUpstream), MsgDistrictsLoadFailed)
	}
	model.SortDistricts(districts)
	return districts, nil
}

// AddDistrict creates an active district.
func (s *SettingsService) AddDistrict(ctx context.Context, creds ports.Credentials, name string) (model.SchoolDistrict, error) {
	name, err := model.ValidateDistrictName(name)
	if err != nil {
		return model.SchoolDistrict{}, apperrors.ValidationField("name", err.Error())
	}

	d, err := s.api.CreateSchoolDistrict(ctx, creds, model.SchoolDistrict{Name: name, Active: true})
	s.obs.operation("district.add", err)
	if err != nil {
		s.obs.logger().ErrorContext(ctx, "add school district failed", "name", name, "error", err)
		return model.SchoolDistrict{}, apperrors.Wrap(err, codeOr(err, apperrors.ErrCodeUpstream), MsgDistrictAddFailed)
	}
	s.obs.logger().InfoContext(ctx, "school district added", "name", d.Name)
	return d, nil
}

// SetDistrictActive turns a district on or off for new course builds.
func (s *SettingsService) SetDistrictActive(ctx context.Context, creds ports.Credentials, d model.SchoolDistrict, active bool) (model.SchoolDistrict, error) {
	d.Active = active
	return s.updateDistrict(ctx, creds, d)
}

// RenameDistrict changes a district's name.
func (s *SettingsService) RenameDistrict(ctx context.Context, creds ports.Credentials, d model.SchoolDistrict, name string) (model.SchoolDistrict, error) {
	name, err := model.ValidateDistrictName(name)
	if err != nil {
		return model.SchoolDistrict{}, apperrors.ValidationField("name", err.Error())
	}
	d.Name = name
	return s.updateDistrict(ctx, creds, d)
}

func (s *SettingsService) updateDistrict(ctx context.Context, creds ports.Credentials, d model.SchoolDistrict) (model.SchoolDistrict, error) {
	updated, err := s.api.UpdateSchoolDistrict(ctx, creds, d)
	s.obs.operation("district.update", err)
	if err != nil {
		s.obs.logger().ErrorContext(ctx, "update school district failed", "name", d.Name, "error", err)
		return model.SchoolDistrict{}, apperrors.Wrap(err, codeOr(err, apperrors.ErrCodeUpstream), DistrictUpdateFailedMessage(d.Name))
	}
	return updated, nil
}

// FindDistrict returns the district with id from list.
func FindDistrict(districts []model.SchoolDistrict, id int) (model.SchoolDistrict, error) {
	for _, d := range districts {
		if d.ID != nil && *d.ID == id {
			return d, nil
		}
	}
	return model.SchoolDistrict{}, apperrors.NotFoundf("school district %d not found", id)
}

// SettingsPage is everything the settings page shows.
type SettingsPage struct {
	Settings  model.MoodleSettings
	Districts []model.SchoolDistrict
}

// LoadPage fetches the settings and the districts concurrently.
func (s *SettingsService) LoadPage(ctx context.Context, creds ports.Credentials) (SettingsPage, error) {
	var page SettingsPage

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		settings, err := s.Load(gctx, creds)
		page.Settings = settings
		return err
	})
	g.Go(func() error {
		districts, err := s.ListDistricts(gctx, creds)
		page.Districts = districts
		return err
	})
	if err := g.Wait(); err != nil {
		return SettingsPage{}, err
	}
	return page, nil
}
