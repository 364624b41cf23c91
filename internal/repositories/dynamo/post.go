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

// AuthorIndex is the GSI on the posts table: userId hash key, date range key.
const AuthorIndex = "useridIndex"

// PostRepository is the DynamoDB implementation of the post record store.
// The table is keyed by id.
type PostRepository struct {
	client Client
	table  string
}

// NewPostRepository creates a post repository bound to a table.
func NewPostRepository(client Client, table string) *PostRepository {
	return &PostRepository{client: client, table: table}
}

func postKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

// Create stores a new post record.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	item, err := attributevalue.MarshalMap(post)
	if err != nil {
		return fmt.Errorf("failed to marshal post: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return repositories.DuplicateError("post", post.ID)
		}
		return repositories.NewRepositoryError("create", "post", post.ID, err)
	}

	return nil
}

// GetByID retrieves a post record by id.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if id == "" {
		return nil, repositories.NewRepositoryError("get", "post", id, repositories.ErrInvalidID)
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       postKey(id),
	})
	if err != nil {
		return nil, repositories.NewRepositoryError("get", "post", id, err)
	}
	if out.Item == nil {
		return nil, repositories.NotFoundError("post", id)
	}

	var post models.Post
	if err := attributevalue.UnmarshalMap(out.Item, &post); err != nil {
		return nil, fmt.Errorf("failed to unmarshal post %s: %w", id, err)
	}

	return &post, nil
}

// Update persists the full post record.
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	item, err := attributevalue.MarshalMap(post)
	if err != nil {
		return fmt.Errorf("failed to marshal post: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return repositories.NewRepositoryError("update", "post", post.ID, err)
	}

	return nil
}

// QueryByAuthor returns the author's posts ordered by creation time
// descending, via the author index. The cursor carries the full index key.
func (r *PostRepository) QueryByAuthor(ctx context.Context, userID string, limit int, cursor *repositories.PostCursor) (*repositories.PostPage, error) {
	keyCondition := expression.Key("userId").Equal(expression.Value(userID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCondition).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build key condition: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(AuthorIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}
	if cursor != nil {
		if cursor.ID == "" || cursor.UserID == "" || cursor.Date == "" {
			return nil, repositories.CursorError("post", fmt.Errorf("author feed cursor requires id, userId and date"))
		}
		input.ExclusiveStartKey = map[string]types.AttributeValue{
			"id":     &types.AttributeValueMemberS{Value: cursor.ID},
			"userId": &types.AttributeValueMemberS{Value: cursor.UserID},
			"date":   &types.AttributeValueMemberS{Value: cursor.Date},
		}
	}

	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, repositories.NewRepositoryError("query", "post", userID, err)
	}

	posts := make([]*models.Post, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &posts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal posts: %w", err)
	}

	page := &repositories.PostPage{
		Items: posts,
		Count: len(posts),
	}
	if len(out.LastEvaluatedKey) > 0 {
		page.LastKey = &repositories.PostCursor{
			ID:     stringAttr(out.LastEvaluatedKey, "id"),
			UserID: stringAttr(out.LastEvaluatedKey, "userId"),
			Date:   stringAttr(out.LastEvaluatedKey, "date"),
		}
	}

	return page, nil
}

// ScanByAuthors returns posts whose author is in userIDs. This is a filtered
// scan, not a merge of per-author streams, so results carry no recency
// ordering across authors.
func (r *PostRepository) ScanByAuthors(ctx context.Context, userIDs []string, limit int, cursor *repositories.ScanCursor) (*repositories.PostScanPage, error) {
	if len(userIDs) == 0 {
		return &repositories.PostScanPage{Items: []*models.Post{}}, nil
	}

	operands := make([]expression.OperandBuilder, 0, len(userIDs)-1)
	for _, id := range userIDs[1:] {
		operands = append(operands, expression.Value(id))
	}
	filter := expression.Name("userId").In(expression.Value(userIDs[0]), operands...)
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
	if cursor != nil && cursor.ID != "" {
		input.ExclusiveStartKey = postKey(cursor.ID)
	}

	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, repositories.NewRepositoryError("scan", "post", "", err)
	}

	posts := make([]*models.Post, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &posts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal posts: %w", err)
	}

	page := &repositories.PostScanPage{
		Items: posts,
		Count: len(posts),
	}
	if id := stringAttr(out.LastEvaluatedKey, "id"); id != "" {
		page.LastKey = &repositories.ScanCursor{ID: id}
	}

	return page, nil
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if item == nil {
		return ""
	}
	if s, ok := item[name].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}
