package dynamo

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"plantcare-advisor-api/internal/models"
	"plantcare-advisor-api/internal/repositories"
)

// UserRepository implements repositories.UserRepository backed by DynamoDB
type UserRepository struct {
	client  GetItemAPI
	table   string
	timeout time.Duration
	logger  *logrus.Logger
}

// NewUserRepository creates a new DynamoDB user repository. The timeout is
// the per-call budget, separate from the overall request deadline.
func NewUserRepository(client GetItemAPI, table string, timeout time.Duration, logger *logrus.Logger) repositories.UserRepository {
	return &UserRepository{
		client:  client,
		table:   table,
		timeout: timeout,
		logger:  logger,
	}
}

// GetUser performs a single point lookup keyed by user_id
func (r *UserRepository) GetUser(ctx context.Context, userID string) (*models.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"table":   r.table,
			"user_id": userID,
			"error":   err.Error(),
		}).Error("User lookup failed")
		return nil, classifyError("get", "user", userID, err)
	}

	if len(out.Item) == 0 {
		r.logger.WithField("user_id", userID).Info("No user item found")
		return nil, repositories.NotFoundError("user", userID)
	}

	profile := &models.UserProfile{}
	if err := attributevalue.UnmarshalMap(out.Item, profile); err != nil {
		return nil, repositories.NewRepositoryError("decode", "user", userID,
			repositories.ErrInvalidRecord)
	}
	if profile.UserID == "" {
		profile.UserID = userID
	}

	r.logger.WithFields(logrus.Fields{
		"user_id":     userID,
		"plant_count": len(profile.Plants),
	}).Debug("User profile resolved")

	return profile, nil
}
