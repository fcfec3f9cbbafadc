package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog/user"

	"gorm.io/gorm"
)

// UserModel represents the database model for users
type UserModel struct {
	ID       int64  `gorm:"primaryKey"`
	Username string `gorm:"not null;uniqueIndex:users_username_key"`
	Mail     string `gorm:"not null"`
	Address  string `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// UserRepository implements user.Repository interface
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser persists a new user and returns the generated id.
func (r *UserRepository) CreateUser(ctx context.Context, username, mail, address string) (int64, error) {
	defer observe("users.create")()

	model := UserModel{Username: username, Mail: mail, Address: address}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&model).Error
	})
	if err != nil {
		return 0, translateUserError(err)
	}
	return model.ID, nil
}

// UpdateUsername changes only the username of an existing user.
func (r *UserRepository) UpdateUsername(ctx context.Context, id int64, username string) (bool, error) {
	defer observe("users.update_username")()

	return r.mutate(ctx, id, map[string]interface{}{
		"username": username,
	})
}

// Update replaces username, mail and address of an existing user.
func (r *UserRepository) Update(ctx context.Context, id int64, username, mail, address string) (bool, error) {
	defer observe("users.update")()

	return r.mutate(ctx, id, map[string]interface{}{
		"username": username,
		"mail":     mail,
		"address":  address,
	})
}

// GetByID fetches a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	defer observe("users.get")()

	var model UserModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return toDomainUser(model), nil
}

// AllUsers fetches all users from the database
func (r *UserRepository) AllUsers(ctx context.Context) ([]user.User, error) {
	defer observe("users.all")()
	return r.findAll(ctx, "", "")
}

func (r *UserRepository) FindAllByUsername(ctx context.Context, username string) ([]user.User, error) {
	defer observe("users.find_by_username")()
	return r.findAll(ctx, "username", username)
}

func (r *UserRepository) FindAllByMail(ctx context.Context, mail string) ([]user.User, error) {
	defer observe("users.find_by_mail")()
	return r.findAll(ctx, "mail", mail)
}

func (r *UserRepository) FindAllByAddress(ctx context.Context, address string) ([]user.User, error) {
	defer observe("users.find_by_address")()
	return r.findAll(ctx, "address", address)
}

// mutate loads the user inside a transaction and applies fields to it. Any
// error rolls the whole change back.
func (r *UserRepository) mutate(ctx context.Context, id int64, fields map[string]interface{}) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model UserModel
		if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true
		return tx.Model(&model).Updates(fields).Error
	})
	if err != nil {
		return false, translateUserError(err)
	}
	return found, nil
}

func (r *UserRepository) findAll(ctx context.Context, column, value string) ([]user.User, error) {
	query := r.db.WithContext(ctx).Order("id")
	if column != "" {
		query = query.Where(column+" = ?", value)
	}

	var models []UserModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = toDomainUser(model)
	}
	return users, nil
}

func translateUserError(err error) error {
	code, constraint, ok := constraintViolation(err)
	if !ok {
		return err
	}
	if code == sqlstateUniqueViolation && strings.Contains(strings.ToLower(constraint), "username") {
		return user.ErrUsernameTaken
	}
	return fmt.Errorf("%w: %s", user.ErrConstraintViolated, constraint)
}

func toDomainUser(model UserModel) user.User {
	return user.User{
		ID:       model.ID,
		Username: model.Username,
		Mail:     model.Mail,
		Address:  model.Address,
	}
}
