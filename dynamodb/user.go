package dynamodb

import (
	"context"
	"fmt"

	"catalog/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const usersCounter = "users"

// UserRepository stores users in a table keyed by "id" (N). Username
// uniqueness is not enforced here; the table has no secondary index for it.
type UserRepository struct {
	client API
	table  string
	ids    *Sequence
}

type userItem struct {
	ID       int64  `dynamodbav:"id"`
	Username string `dynamodbav:"username"`
	Mail     string `dynamodbav:"mail"`
	Address  string `dynamodbav:"address"`
}

func NewUserRepository(client API, table string, ids *Sequence) *UserRepository {
	return &UserRepository{
		client: client,
		table:  table,
		ids:    ids,
	}
}

func (r *UserRepository) CreateUser(ctx context.Context, username, mail, address string) (int64, error) {
	defer observe("users.create")()
	if err := validateTable(r.table); err != nil {
		return 0, err
	}

	id, err := r.ids.Next(ctx, usersCounter)
	if err != nil {
		return 0, err
	}

	av, err := attributevalue.MarshalMap(userItem{
		ID:       id,
		Username: username,
		Mail:     mail,
		Address:  address,
	})
	if err != nil {
		return 0, fmt.Errorf("dynamodb: marshal user: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.table,
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return 0, fmt.Errorf("dynamodb: put user: %w", err)
	}

	return id, nil
}

func (r *UserRepository) UpdateUsername(ctx context.Context, id int64, username string) (bool, error) {
	defer observe("users.update_username")()

	return r.update(ctx, id, stringAttr("username", username))
}

func (r *UserRepository) Update(ctx context.Context, id int64, username, mail, address string) (bool, error) {
	defer observe("users.update")()

	return r.update(ctx, id,
		stringAttr("username", username),
		stringAttr("mail", mail),
		stringAttr("address", address),
	)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	defer observe("users.get")()
	if err := validateTable(r.table); err != nil {
		return user.User{}, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &r.table,
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return user.User{}, fmt.Errorf("dynamodb: get user: %w", err)
	}
	if len(out.Item) == 0 {
		return user.User{}, user.ErrUserNotFound
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return user.User{}, fmt.Errorf("dynamodb: unmarshal user: %w", err)
	}
	return item.toDomain(), nil
}

func (r *UserRepository) AllUsers(ctx context.Context) ([]user.User, error) {
	defer observe("users.all")()
	return r.scan(ctx, "", "")
}

func (r *UserRepository) FindAllByUsername(ctx context.Context, username string) ([]user.User, error) {
	defer observe("users.find_by_username")()
	return r.scan(ctx, "username", username)
}

func (r *UserRepository) FindAllByMail(ctx context.Context, mail string) ([]user.User, error) {
	defer observe("users.find_by_mail")()
	return r.scan(ctx, "mail", mail)
}

func (r *UserRepository) FindAllByAddress(ctx context.Context, address string) ([]user.User, error) {
	defer observe("users.find_by_address")()
	return r.scan(ctx, "address", address)
}

// update sets attrs only when the item exists. A failed condition means the
// id is unknown and is reported as false.
func (r *UserRepository) update(ctx context.Context, id int64, attrs ...attribute) (bool, error) {
	if err := validateTable(r.table); err != nil {
		return false, err
	}

	_, err := r.client.UpdateItem(ctx, conditionalUpdate(r.table, id, attrs...))
	if err != nil {
		if isConditionFailed(err) {
			return false, nil
		}
		return false, fmt.Errorf("dynamodb: update user: %w", err)
	}
	return true, nil
}

func (r *UserRepository) scan(ctx context.Context, attribute, value string) ([]user.User, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	items, err := scanAll[userItem](ctx, r.client, r.table, attribute, value)
	if err != nil {
		return nil, err
	}
	sortByID(items, func(i userItem) int64 { return i.ID })

	users := make([]user.User, len(items))
	for i, item := range items {
		users[i] = item.toDomain()
	}
	return users, nil
}

func (i userItem) toDomain() user.User {
	return user.User{
		ID:       i.ID,
		Username: i.Username,
		Mail:     i.Mail,
		Address:  i.Address,
	}
}
