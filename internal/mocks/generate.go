// Package mocks provides mock implementations for testing the login flow.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the port interfaces. The mocks are generated using go:generate directives
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
//	issuer := mocks.NewMockSessionIssuer(ctrl)
//	issuer.EXPECT().Issue(gomock.Any()).Return(session, nil)
package mocks

// Generate mocks for the auth ports. This creates MockAccountDirectory,
// MockPasswordVerifier, MockAuditSink, MockSessionIssuer, MockTicketCodec and
// MockTicketGuard in ports_mock.go.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ports_mock.go github.com/ghollosi/next-sub004/internal/ports AccountDirectory,PasswordVerifier,AuditSink,SessionIssuer,TicketCodec,TicketGuard
