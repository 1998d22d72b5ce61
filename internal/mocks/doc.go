// Package mocks provides centralized mock implementations for testing.
//
// Each mock has one function field per interface method. A nil field falls
// back to the mock's default return values, so tests only override the calls
// they care about:
//
//	tasks := &mocks.MockTaskStore{
//	    ListFn: func(ctx context.Context) ([]*domain.Task, error) {
//	        return nil, errors.New("store unavailable")
//	    },
//	}
package mocks
