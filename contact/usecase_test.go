package contact_test

import (
	"context"
	"errors"
	"testing"

	"contactbook/contact"
	"contactbook/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) NextID(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockContactRepository) ListIDs(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockContactRepository) GetContact(ctx context.Context, id int) (contact.Contact, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(contact.Contact), args.Error(1)
}

func (m *MockContactRepository) PutContact(ctx context.Context, c contact.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContactRepository) DeleteContact(ctx context.Context, id int) (contact.Contact, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(contact.Contact), args.Error(1)
}

func strPtr(s string) *string {
	return &s
}

func TestAddContact(t *testing.T) {
	t.Run("should assign the next id and persist the record", func(t *testing.T) {
		r := new(MockContactRepository)
		uc := contact.NewUsecase(r)
		stored := contact.Contact{ID: 1, FirstName: "Anakin", LastName: "Skywalker", Job: "Jedi Knight", Description: "The Chosen one"}
		r.On("NextID", mock.Anything).Return(1, nil).Once()
		r.On("PutContact", mock.Anything, stored).Return(nil).Once()

		got, err := uc.AddContact(context.Background(), contact.Contact{
			FirstName:   "Anakin",
			LastName:    "Skywalker",
			Job:         "Jedi Knight",
			Description: "The Chosen one",
		})

		assert.NoError(t, err)
		assert.Equal(t, stored, got, "expected the stored record back")
		r.AssertExpectations(t)
	})

	t.Run("should discard any client-supplied id", func(t *testing.T) {
		r := new(MockContactRepository)
		uc := contact.NewUsecase(r)
		r.On("NextID", mock.Anything).Return(5, nil).Once()
		r.On("PutContact", mock.Anything, contact.Contact{ID: 5, FirstName: "Leia"}).Return(nil).Once()

		got, err := uc.AddContact(context.Background(), contact.Contact{ID: 999, FirstName: "Leia"})

		assert.NoError(t, err)
		assert.Equal(t, 5, got.ID)
		r.AssertExpectations(t)
	})

	t.Run("should fail when id allocation fails", func(t *testing.T) {
		r := new(MockContactRepository)
		uc := contact.NewUsecase(r)
		r.On("NextID", mock.Anything).Return(0, errors.New("store down")).Once()

		_, err := uc.AddContact(context.Background(), contact.Contact{FirstName: "Han"})

		assert.Error(t, err)
		r.AssertNotCalled(t, "PutContact")
	})
}

func TestGetContact(t *testing.T) {
	t.Run("should return the stored record", func(t *testing.T) {
		r := new(MockContactRepository)
		uc := contact.NewUsecase(r)
		c := contact.Contact{ID: 2, FirstName: "Obi-Wan", LastName: "Kenobi"}
		r.On("GetContact", mock.Anything, 2).Return(c, nil).Once()

		got, err := uc.GetContact(context.Background(), 2)

		assert.NoError(t, err)
		assert.Equal(t, c, got)
		r.AssertExpectations(t)
	})

	t.Run("should propagate not found", func(t *testing.T) {
		r := new(MockContactRepository)
		uc := contact.NewUsecase(r)
		r.On("GetContact", mock.Anything, 999).Return(contact.Contact{}, errs.Errorf(errs.ENOTFOUND, "contact 999 not found")).Once()

		_, err := uc.GetContact(context.Background(), 999)

		assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
		r.AssertExpectations(t)
	})
}

func TestUpdateContact(t *testing.T) {
	existing := contact.Contact{ID: 1, FirstName: "Anakin", LastName: "Skywalker", Job: "Jedi Knight", Description: "The Chosen one"}

	t.Run("should overwrite patched fields and keep the rest", func(t *testing.T) {
		r := new(MockContactRepository)
		uc := contact.NewUsecase(r)
		merged := existing
		merged.FirstName = "Darth"
		r.On("GetContact", mock.Anything, 1).Return(existing, nil).Once()
		r.On("PutContact", mock.Anything, merged).Return(nil).Once()

		got, err := uc.UpdateContact(context.Background(), 1, contact.Patch{FirstName: strPtr("Darth")})

		assert.NoError(t, err)
		assert.Equal(t, merged, got)
		r.AssertExpectations(t)
	})

	t.Run("should replace a field with the empty string when patched so", func(t *testing.T) {
		r := new(MockContactRepository)
		uc := contact.NewUsecase(r)
		merged := existing
		merged.Job = ""
		r.On("GetContact", mock.Anything, 1).Return(existing, nil).Once()
		r.On("PutContact", mock.Anything, merged).Return(nil).Once()

		got, err := uc.UpdateContact(context.Background(), 1, contact.Patch{Job: strPtr("")})

		assert.NoError(t, err)
		assert.Equal(t, "", got.Job)
		r.AssertExpectations(t)
	})

	t.Run("should be a no-op for an empty patch", func(t *testing.T) {
		r := new(MockContactRepository)
		uc := contact.NewUsecase(r)
		r.On("GetContact", mock.Anything, 1).Return(existing, nil).Once()
		r.On("PutContact", mock.Anything, existing).Return(nil).Once()

		got, err := uc.UpdateContact(context.Background(), 1, contact.Patch{})

		assert.NoError(t, err)
		assert.Equal(t, existing, got, "expected the record unchanged")
		r.AssertExpectations(t)
	})

	t.Run("should not write anything when the record is missing", func(t *testing.T) {
		r := new(MockContactRepository)
		uc := contact.NewUsecase(r)
		r.On("GetContact", mock.Anything, 404).Return(contact.Contact{}, errs.Errorf(errs.ENOTFOUND, "contact 404 not found")).Once()

		_, err := uc.UpdateContact(context.Background(), 404, contact.Patch{FirstName: strPtr("Darth")})

		assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
		r.AssertNotCalled(t, "PutContact")
	})
}

func TestDeleteContact(t *testing.T) {
	t.Run("should return the removed record", func(t *testing.T) {
		r := new(MockContactRepository)
		uc := contact.NewUsecase(r)
		c := contact.Contact{ID: 2, FirstName: "Padme"}
		r.On("DeleteContact", mock.Anything, 2).Return(c, nil).Once()

		got, err := uc.DeleteContact(context.Background(), 2)

		assert.NoError(t, err)
		assert.Equal(t, c, got)
		r.AssertExpectations(t)
	})

	t.Run("should propagate not found", func(t *testing.T) {
		r := new(MockContactRepository)
		uc := contact.NewUsecase(r)
		r.On("DeleteContact", mock.Anything, 999).Return(contact.Contact{}, errs.Errorf(errs.ENOTFOUND, "contact 999 not found")).Once()

		_, err := uc.DeleteContact(context.Background(), 999)

		assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
		r.AssertExpectations(t)
	})
}

func TestListContacts(t *testing.T) {
	t.Run("should return contacts ordered by ascending id", func(t *testing.T) {
		r := new(MockContactRepository)
		uc := contact.NewUsecase(r)
		r.On("ListIDs", mock.Anything).Return([]int{3, 1, 2}, nil).Once()
		r.On("GetContact", mock.Anything, 1).Return(contact.Contact{ID: 1, FirstName: "Anakin"}, nil).Once()
		r.On("GetContact", mock.Anything, 2).Return(contact.Contact{ID: 2, FirstName: "Leia"}, nil).Once()
		r.On("GetContact", mock.Anything, 3).Return(contact.Contact{ID: 3, FirstName: "Luke"}, nil).Once()

		got, err := uc.ListContacts(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, []contact.Contact{
			{ID: 1, FirstName: "Anakin"},
			{ID: 2, FirstName: "Leia"},
			{ID: 3, FirstName: "Luke"},
		}, got)
		r.AssertExpectations(t)
	})

	t.Run("should skip a record deleted during the listing", func(t *testing.T) {
		r := new(MockContactRepository)
		uc := contact.NewUsecase(r)
		r.On("ListIDs", mock.Anything).Return([]int{1, 2}, nil).Once()
		r.On("GetContact", mock.Anything, 1).Return(contact.Contact{}, errs.Errorf(errs.ENOTFOUND, "contact 1 not found")).Once()
		r.On("GetContact", mock.Anything, 2).Return(contact.Contact{ID: 2, FirstName: "Leia"}, nil).Once()

		got, err := uc.ListContacts(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, []contact.Contact{{ID: 2, FirstName: "Leia"}}, got)
		r.AssertExpectations(t)
	})

	t.Run("should return an empty list for an empty store", func(t *testing.T) {
		r := new(MockContactRepository)
		uc := contact.NewUsecase(r)
		r.On("ListIDs", mock.Anything).Return([]int{}, nil).Once()

		got, err := uc.ListContacts(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, got)
		r.AssertExpectations(t)
	})

	t.Run("should fail when enumeration fails", func(t *testing.T) {
		r := new(MockContactRepository)
		uc := contact.NewUsecase(r)
		r.On("ListIDs", mock.Anything).Return([]int(nil), errors.New("store down")).Once()

		_, err := uc.ListContacts(context.Background())

		assert.Error(t, err)
		r.AssertExpectations(t)
	})
}
