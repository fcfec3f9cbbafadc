package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"catalog/pkg/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type Options struct {
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	SessionToken string
}

// API is the subset of *dynamodb.Client the repositories call.
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

func NewClient(ctx context.Context, opts Options) (*dynamodb.Client, error) {
	region := strings.TrimSpace(opts.Region)
	if region == "" {
		return nil, errors.New("dynamodb: region is required")
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(region),
	}

	if opts.AccessKey != "" || opts.SecretKey != "" || opts.SessionToken != "" {
		if opts.AccessKey == "" || opts.SecretKey == "" {
			return nil, errors.New("dynamodb: access key and secret key must be set together")
		}
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, opts.SessionToken),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})

	return client, nil
}

func validateTable(table string) error {
	if strings.TrimSpace(table) == "" {
		return errors.New("dynamodb: table name is required")
	}
	return nil
}

// Sequence hands out increasing int64 ids from a counters table keyed by
// "name" (S). Each call is one atomic ADD.
type Sequence struct {
	client API
	table  string
}

func NewSequence(client API, table string) *Sequence {
	return &Sequence{client: client, table: table}
}

type counterItem struct {
	Name  string `dynamodbav:"name"`
	Value int64  `dynamodbav:"seq"`
}

func (s *Sequence) Next(ctx context.Context, name string) (int64, error) {
	if err := validateTable(s.table); err != nil {
		return 0, err
	}

	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &s.table,
		Key: map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: name},
		},
		UpdateExpression: aws.String("ADD seq :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("dynamodb: next %s id: %w", name, err)
	}

	var counter counterItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &counter); err != nil {
		return 0, fmt.Errorf("dynamodb: unmarshal %s counter: %w", name, err)
	}
	if counter.Value <= 0 {
		return 0, fmt.Errorf("dynamodb: counter %s returned no value", name)
	}
	return counter.Value, nil
}

func idKey(id int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", id)},
	}
}

type attribute struct {
	name  string
	value types.AttributeValue
}

// conditionalUpdate assigns attrs on the item with the given id, only if it
// exists. Attribute names always go through placeholders; DynamoDB reserves
// many common words.
func conditionalUpdate(table string, id int64, attrs ...attribute) *dynamodb.UpdateItemInput {
	sets := make([]string, 0, len(attrs))
	names := make(map[string]string, len(attrs))
	values := make(map[string]types.AttributeValue, len(attrs))
	for _, a := range attrs {
		sets = append(sets, "#"+a.name+" = :"+a.name)
		names["#"+a.name] = a.name
		values[":"+a.name] = a.value
	}

	return &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       idKey(id),
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}
}

func stringAttr(name, value string) attribute {
	return attribute{name: name, value: &types.AttributeValueMemberS{Value: value}}
}

func isConditionFailed(err error) bool {
	var condErr *types.ConditionalCheckFailedException
	return errors.As(err, &condErr)
}

// scanAll reads the whole table, optionally keeping only items whose attribute
// equals value, and unmarshals every page into T.
func scanAll[T any](ctx context.Context, client API, table, attribute, value string) ([]T, error) {
	input := &dynamodb.ScanInput{
		TableName: &table,
	}
	if attribute != "" {
		input.FilterExpression = aws.String("#attr = :value")
		input.ExpressionAttributeNames = map[string]string{"#attr": attribute}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":value": &types.AttributeValueMemberS{Value: value},
		}
	}

	items := []T{}
	paginator := dynamodb.NewScanPaginator(client, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: scan %s: %w", table, err)
		}

		var page []T
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal %s: %w", table, err)
		}
		items = append(items, page...)
	}
	return items, nil
}

func sortByID[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool {
		return id(items[i]) < id(items[j])
	})
}

func observe(method string) func() {
	start := time.Now()
	return func() {
		metrics.ObserveDBRequest("dynamodb."+method, time.Since(start))
	}
}
