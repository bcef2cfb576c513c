package git

import "context"

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// MockRepository is a configurable mock implementation of Repository for testing.
// Each method is backed by a function field. If the function field is nil,
// the method returns sensible zero values.
type MockRepository struct {
	RootFunc         func() string
	IdentityFunc     func() (string, string, error)
	ChangedFilesFunc func() ([]string, error)
	AddFunc          func(...string) error
	CommitFunc       func(...string) (string, error)
	TagFunc          func(string, string) error
	PushFunc         func(context.Context, bool) error
}

func (m *MockRepository) Root() string {
	if m.RootFunc != nil {
		return m.RootFunc()
	}
	return ""
}

func (m *MockRepository) Identity() (string, string, error) {
	if m.IdentityFunc != nil {
		return m.IdentityFunc()
	}
	return "", "", nil
}

func (m *MockRepository) ChangedFiles() ([]string, error) {
	if m.ChangedFilesFunc != nil {
		return m.ChangedFilesFunc()
	}
	return nil, nil
}

func (m *MockRepository) Add(paths ...string) error {
	if m.AddFunc != nil {
		return m.AddFunc(paths...)
	}
	return nil
}

func (m *MockRepository) Commit(messages ...string) (string, error) {
	if m.CommitFunc != nil {
		return m.CommitFunc(messages...)
	}
	return "", nil
}

func (m *MockRepository) Tag(name, message string) error {
	if m.TagFunc != nil {
		return m.TagFunc(name, message)
	}
	return nil
}

func (m *MockRepository) Push(ctx context.Context, tags bool) error {
	if m.PushFunc != nil {
		return m.PushFunc(ctx, tags)
	}
	return nil
}
