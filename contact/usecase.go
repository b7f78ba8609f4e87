package contact

import (
	"context"
	"sort"

	"contactbook/errs"
)

type Service interface {
	ListContacts(ctx context.Context) ([]Contact, error)
	GetContact(ctx context.Context, id int) (Contact, error)
	AddContact(ctx context.Context, c Contact) (Contact, error)
	UpdateContact(ctx context.Context, id int, p Patch) (Contact, error)
	DeleteContact(ctx context.Context, id int) (Contact, error)
}

// Repository is the persistence port. Ids are allocated by NextID from a
// counter that lives in the store itself, so allocation is atomic across
// concurrent callers and survives restarts. Absent records surface as
// errs.ENOTFOUND; store failures propagate untouched.
type Repository interface {
	NextID(ctx context.Context) (int, error)
	ListIDs(ctx context.Context) ([]int, error)
	GetContact(ctx context.Context, id int) (Contact, error)
	PutContact(ctx context.Context, c Contact) error
	DeleteContact(ctx context.Context, id int) (Contact, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

// ListContacts returns every stored contact ordered by ascending id.
// A record deleted between enumeration and fetch is skipped.
func (uc *Usecase) ListContacts(ctx context.Context) ([]Contact, error) {
	ids, err := uc.r.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	sort.Ints(ids)

	contacts := make([]Contact, 0, len(ids))
	for _, id := range ids {
		c, err := uc.r.GetContact(ctx, id)
		if err != nil {
			if errs.ErrorCode(err) == errs.ENOTFOUND {
				continue
			}
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

func (uc *Usecase) GetContact(ctx context.Context, id int) (Contact, error) {
	return uc.r.GetContact(ctx, id)
}

// AddContact allocates the next id, stores the record under it and returns
// the stored record. Any id carried by c is discarded.
func (uc *Usecase) AddContact(ctx context.Context, c Contact) (Contact, error) {
	id, err := uc.r.NextID(ctx)
	if err != nil {
		return Contact{}, err
	}
	c.ID = id
	if err := uc.r.PutContact(ctx, c); err != nil {
		return Contact{}, err
	}
	return c, nil
}

// UpdateContact merges p onto the stored record and writes it back under the
// same key. A missing record returns errs.ENOTFOUND with no side effect.
func (uc *Usecase) UpdateContact(ctx context.Context, id int, p Patch) (Contact, error) {
	c, err := uc.r.GetContact(ctx, id)
	if err != nil {
		return Contact{}, err
	}
	p.Apply(&c)
	if err := uc.r.PutContact(ctx, c); err != nil {
		return Contact{}, err
	}
	return c, nil
}

// DeleteContact removes the record and returns its last stored value.
func (uc *Usecase) DeleteContact(ctx context.Context, id int) (Contact, error) {
	return uc.r.DeleteContact(ctx, id)
}
