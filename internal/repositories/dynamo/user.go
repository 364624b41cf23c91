package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"social-feed-api/internal/models"
	"social-feed-api/internal/repositories"
)

// UserRepository is the DynamoDB implementation of the user record store.
// The table is keyed by cognitoId.
type UserRepository struct {
	client Client
	table  string
}

// NewUserRepository creates a user repository bound to a table.
func NewUserRepository(client Client, table string) *UserRepository {
	return &UserRepository{client: client, table: table}
}

func userKey(cognitoID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"cognitoId": &types.AttributeValueMemberS{Value: cognitoID},
	}
}

// Create stores a new user record, failing if the id is already taken.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(cognitoId)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return repositories.DuplicateError("user", user.CognitoID)
		}
		return repositories.NewRepositoryError("create", "user", user.CognitoID, err)
	}

	return nil
}

// GetByID retrieves a user record by its identity provider subject id.
func (r *UserRepository) GetByID(ctx context.Context, cognitoID string) (*models.User, error) {
	if cognitoID == "" {
		return nil, repositories.NewRepositoryError("get", "user", cognitoID, repositories.ErrInvalidID)
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       userKey(cognitoID),
	})
	if err != nil {
		return nil, repositories.NewRepositoryError("get", "user", cognitoID, err)
	}
	if out.Item == nil {
		return nil, repositories.NotFoundError("user", cognitoID)
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(out.Item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user %s: %w", cognitoID, err)
	}

	return &user, nil
}

// Update persists the full user record.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return repositories.NewRepositoryError("update", "user", user.CognitoID, err)
	}

	return nil
}

// AddFollowers applies delta to the followers counter with a single atomic
// ADD, so concurrent toggles cannot lose updates.
func (r *UserRepository) AddFollowers(ctx context.Context, cognitoID string, delta int) error {
	return r.addCounter(ctx, cognitoID, "followers", delta)
}

// AddPostCount applies delta to the post counter atomically.
func (r *UserRepository) AddPostCount(ctx context.Context, cognitoID string, delta int) error {
	return r.addCounter(ctx, cognitoID, "post", delta)
}

func (r *UserRepository) addCounter(ctx context.Context, cognitoID, field string, delta int) error {
	update := expression.Add(expression.Name(field), expression.Value(delta))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       userKey(cognitoID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       aws.String("attribute_exists(cognitoId)"),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return repositories.NotFoundError("user", cognitoID)
		}
		return repositories.NewRepositoryError("update", "user", cognitoID, err)
	}

	return nil
}

// SearchByName scans for users whose display name contains the given
// substring. Pagination uses the table's own primary key shape.
func (r *UserRepository) SearchByName(ctx context.Context, name string, limit int, cursor *repositories.UserCursor) (*repositories.UserPage, error) {
	filter := expression.Contains(expression.Name("name"), name)
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter expression: %w", err)
	}

	input := &dynamodb.ScanInput{
		TableName:                 aws.String(r.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}
	if cursor != nil && cursor.CognitoID != "" {
		input.ExclusiveStartKey = userKey(cursor.CognitoID)
	}

	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, repositories.NewRepositoryError("search", "user", "", err)
	}

	users := make([]*models.User, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal users: %w", err)
	}

	page := &repositories.UserPage{
		Items: users,
		Count: len(users),
	}
	if key, ok := out.LastEvaluatedKey["cognitoId"]; ok {
		if s, ok := key.(*types.AttributeValueMemberS); ok {
			page.LastKey = &repositories.UserCursor{CognitoID: s.Value}
		}
	}

	return page, nil
}
