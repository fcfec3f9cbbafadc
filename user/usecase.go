package user

import (
	"context"
	"strings"
)

type Service interface {
	CreateUser(ctx context.Context, username, mail, address string) (int64, error)
	UpdateUsername(ctx context.Context, id int64, username string) (bool, error)
	Update(ctx context.Context, id int64, username, mail, address string) (bool, error)
	GetUser(ctx context.Context, id int64) (User, error)
	ListUsers(ctx context.Context, f Filter) ([]User, error)
}

// Repository persists users. UpdateUsername and Update run inside a single
// transaction each and return false when the id is unknown.
type Repository interface {
	CreateUser(ctx context.Context, username, mail, address string) (int64, error)
	UpdateUsername(ctx context.Context, id int64, username string) (bool, error)
	Update(ctx context.Context, id int64, username, mail, address string) (bool, error)
	GetByID(ctx context.Context, id int64) (User, error)
	AllUsers(ctx context.Context) ([]User, error)
	FindAllByUsername(ctx context.Context, username string) ([]User, error)
	FindAllByMail(ctx context.Context, mail string) ([]User, error)
	FindAllByAddress(ctx context.Context, address string) ([]User, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) CreateUser(ctx context.Context, username, mail, address string) (int64, error) {
	u := User{Username: username, Mail: mail, Address: address}
	if err := u.Validate(); err != nil {
		return 0, err
	}
	return uc.r.CreateUser(ctx, username, mail, address)
}

func (uc *Usecase) UpdateUsername(ctx context.Context, id int64, username string) (bool, error) {
	if err := validateUsername(username); err != nil {
		return false, err
	}
	return uc.r.UpdateUsername(ctx, id, username)
}

func (uc *Usecase) Update(ctx context.Context, id int64, username, mail, address string) (bool, error) {
	u := User{ID: id, Username: username, Mail: mail, Address: address}
	if err := u.Validate(); err != nil {
		return false, err
	}
	return uc.r.Update(ctx, id, username, mail, address)
}

func (uc *Usecase) GetUser(ctx context.Context, id int64) (User, error) {
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) ListUsers(ctx context.Context, f Filter) ([]User, error) {
	switch {
	case strings.TrimSpace(f.Username) != "":
		return uc.r.FindAllByUsername(ctx, f.Username)
	case strings.TrimSpace(f.Mail) != "":
		return uc.r.FindAllByMail(ctx, f.Mail)
	case strings.TrimSpace(f.Address) != "":
		return uc.r.FindAllByAddress(ctx, f.Address)
	default:
		return uc.r.AllUsers(ctx)
	}
}
