// Package mocks provides mock implementations for testing the orchestrator.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the backend interface. The mocks are generated using go:generate directives
// and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	backend := mocks.NewMockBackend(ctrl)
//	backend.EXPECT().SubmitScore(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
package mocks

// Generate mock for the Backend interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=backend_mock.go github.com/cheddaboards/cheddaboards-go/internal/ports Backend
