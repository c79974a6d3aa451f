package service

import (
	"context"

	"github.com/openstax/rope/internal/domain/model"
	apperrors "github.com/openstax/rope/internal/errors"
	"github.com/openstax/rope/internal/ports"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	API ports.UserAPI
	// InstitutionDomain restricts new accounts; defaults to rice.edu.
	InstitutionDomain string
	Observability     Observability
}

// UserService manages the accounts allowed to use rope.
type UserService struct {
	api    ports.UserAPI
	domain string
	obs    Observability
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	if opts.API == nil {
		panic("service: UserService requires a UserAPI")
	}
	domain := opts.InstitutionDomain
	if domain == "" {
		domain = model.DefaultInstitutionDomain
	}
	return &UserService{api: opts.API, domain: domain, obs: opts.Observability}
}

// List returns every account.
func (s *UserService) List(ctx context.Context, creds ports.Credentials) ([]model.User, error) {
	users, err := s.api.ListUsers(ctx, creds)
	s.obs.operation("user.list", err)
	if err != nil {
		s.obs.logger().ErrorContext(ctx, "list users failed", "error", err)
		return nil, apperrors.Wrap(err, codeOr(err, apperrors.ErrCodeUpstream), MsgListUsersFailed)
	}
	return users, nil
}

// Add grants a new account access. The email must belong to the institution domain.
func (s *UserService) Add(ctx context.Context, creds ports.Credentials, in model.NewUserRequest) (model.User, error) {
	in.Email = model.NormalizeEmail(in.Email)
	if !model.ValidateInstitutionEmail(in.Email, s.domain) {
		return model.User{}, apperrors.ValidationField("email", MsgInvalidInstitutionEmail)
	}

	user, err := s.api.CreateUser(ctx, creds, in)
	s.obs.operation("user.add", err)
	if err != nil {
		s.obs.logger().ErrorContext(ctx, "add user failed", "email", in.Email, "error", err)
		return model.User{}, apperrors.Wrap(err, codeOr(err, apperrors.ErrCodeUpstream), MsgAddUserFailed)
	}
	s.obs.logger().InfoContext(ctx, "user added",
		"user_id", user.ID,
		"email", user.Email,
		"is_admin", user.IsAdmin,
		"is_manager", user.IsManager,
	)
	return user, nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, creds ports.Credentials, id int) error {
	err := s.api.DeleteUser(ctx, creds, id)
	s.obs.operation("user.delete", err)
	if err != nil {
		s.obs.logger().ErrorContext(ctx, "delete user failed", "user_id", id, "error", err)
		return apperrors.Wrap(err, codeOr(err, apperrors.ErrCodeUpstream), MsgDeleteUserFailed)
	}
	s.obs.logger().InfoContext(ctx, "user deleted", "user_id", id)
	return nil
}

// UpdatePermissions sends the full user record with its new roles.
func (s *UserService) UpdatePermissions(ctx context.Context, creds ports.Credentials, user model.User) (model.User, error) {
	updated, err := s.api.UpdateUser(ctx, creds, user)
	s.obs.operation("user.update_permissions", err)
	if err != nil {
		s.obs.logger().ErrorContext(ctx, "update user permissions failed", "user_id", user.ID, "error", err)
		return model.User{}, apperrors.Wrap(err, codeOr(err, apperrors.ErrCodeUpstream), MsgUpdatePermissionsFailed)
	}
	return updated, nil
}

// FindUser returns the account with id from list, or a not-found error.
func FindUser(users []model.User, id int) (model.User, error) {
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, apperrors.NotFoundf("user %d not found", id)
}
