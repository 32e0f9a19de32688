package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"moviebox/movie"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// userIndex is the GSI keyed by user_id; list queries never scan the table.
const userIndex = "user_id-index"

// api is the subset of the DynamoDB client the movie repository calls.
type api interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// MovieRepository implements movie.Repository over DynamoDB. The table key
// is the item id; every mutation carries a condition on user_id so a caller
// can only touch their own items.
type MovieRepository struct {
	client api
	table  string
}

type movieItem struct {
	ID             string  `dynamodbav:"id"`
	Title          string  `dynamodbav:"title"`
	PublishingYear int     `dynamodbav:"publishing_year"`
	PosterURL      *string `dynamodbav:"poster_url,omitempty"`
	UserID         string  `dynamodbav:"user_id"`
	CreatedAt      string  `dynamodbav:"created_at"`
	UpdatedAt      string  `dynamodbav:"updated_at"`
}

func NewMovieRepository(client api, table string) *MovieRepository {
	return &MovieRepository{
		client: client,
		table:  table,
	}
}

func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return movie.Movie{}, err
	}

	now := time.Now().UTC()
	item := movieItem{
		ID:             uuid.NewString(),
		Title:          m.Title,
		PublishingYear: m.PublishingYear,
		PosterURL:      m.PosterURL,
		UserID:         m.UserID,
		CreatedAt:      now.Format(time.RFC3339Nano),
		UpdatedAt:      now.Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: marshal movie: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      av,
	})
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: put movie: %w", err)
	}

	return toDomainMovie(item), nil
}

// ListByUser queries the user GSI and pages client-side. The index is
// hash-only, so query order is unspecified; rows are sorted by creation
// time here before the offset is applied, matching the SQL adapter.
func (r *MovieRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]movie.Movie, int64, error) {
	if err := validateTable(r.table); err != nil {
		return nil, 0, err
	}

	var items []movieItem
	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:              &r.table,
		IndexName:              aws.String(userIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("dynamodb: query movies: %w", err)
		}

		var page []movieItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, 0, fmt.Errorf("dynamodb: unmarshal movies: %w", err)
		}
		items = append(items, page...)
	}

	owned := make([]movie.Movie, 0, len(items))
	for _, item := range items {
		owned = append(owned, toDomainMovie(item))
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID < owned[j].ID
		}
		return owned[i].CreatedAt.Before(owned[j].CreatedAt)
	})

	total := int64(len(owned))
	if offset >= len(owned) {
		return []movie.Movie{}, total, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], total, nil
}

func (r *MovieRepository) Update(ctx context.Context, id, userID string, patch movie.Patch) (movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return movie.Movie{}, err
	}

	expr := "SET updated_at = :now"
	values := map[string]types.AttributeValue{
		":uid": &types.AttributeValueMemberS{Value: userID},
		":now": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
	}
	if patch.Title != nil {
		expr += ", title = :title"
		values[":title"] = &types.AttributeValueMemberS{Value: *patch.Title}
	}
	if patch.PublishingYear != nil {
		expr += ", publishing_year = :year"
		values[":year"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", *patch.PublishingYear)}
	}
	if patch.PosterURL != nil {
		expr += ", poster_url = :poster"
		values[":poster"] = &types.AttributeValueMemberS{Value: *patch.PosterURL}
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &r.table,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("attribute_exists(id) AND user_id = :uid"),
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, fmt.Errorf("dynamodb: update movie: %w", err)
	}

	var item movieItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: unmarshal movie: %w", err)
	}
	return toDomainMovie(item), nil
}

// Delete is idempotent: a failed ownership condition on a missing item is
// reported as success, matching the SQL adapter.
func (r *MovieRepository) Delete(ctx context.Context, id, userID string) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &r.table,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_not_exists(id) OR user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			// item exists but belongs to someone else; scoped delete is a no-op
			return nil
		}
		return fmt.Errorf("dynamodb: delete movie: %w", err)
	}
	return nil
}

func isConditionFailed(err error) bool {
	var cond *types.ConditionalCheckFailedException
	return errors.As(err, &cond)
}

func toDomainMovie(item movieItem) movie.Movie {
	createdAt, _ := time.Parse(time.RFC3339Nano, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, item.UpdatedAt)
	return movie.Movie{
		ID:             item.ID,
		Title:          item.Title,
		PublishingYear: item.PublishingYear,
		PosterURL:      item.PosterURL,
		UserID:         item.UserID,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}
