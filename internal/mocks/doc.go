// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized mock implementations can be reused across the service and
// API test suites.
//
// Usage:
//
//	users := mocks.NewMockUserStore()
//	users.FindLiveByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
//	    return nil, store.ErrUserNotFound // simulate a racing writer
//	}
//	dir, _ := service.NewUserDirectory(users, slog.Default())
package mocks
