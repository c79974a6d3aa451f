// Package mocks provides mock implementations of rope's ports for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// backend and identity interfaces in internal/ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	users := mocks.NewMockUserAPI(ctrl)
//	users.EXPECT().ListUsers(gomock.Any(), gomock.Any()).Return(list, nil)
package mocks

// Generate mocks for the REST backend ports (SessionAPI, UserAPI, SettingsAPI, MoodleAPI),
// the external identity token verifier, and the Moodle user cache.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=ports_mock.go github.com/openstax/rope/internal/ports SessionAPI,UserAPI,SettingsAPI,MoodleAPI,CourseBuildAPI,TokenVerifier,MoodleUserCache
