package dynamo

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"plantcare-advisor-api/internal/models"
	"plantcare-advisor-api/internal/repositories"
)

// PlantRepository implements repositories.PlantRepository backed by DynamoDB
type PlantRepository struct {
	client  GetItemAPI
	table   string
	timeout time.Duration
	logger  *logrus.Logger
}

// NewPlantRepository creates a new DynamoDB plant repository
func NewPlantRepository(client GetItemAPI, table string, timeout time.Duration, logger *logrus.Logger) repositories.PlantRepository {
	return &PlantRepository{
		client:  client,
		table:   table,
		timeout: timeout,
		logger:  logger,
	}
}

// GetPlants resolves the given plant keys with one concurrent lookup per
// key, joining before return and preserving the order of the key list.
// A missing or individually failing key is skipped with a warning; the
// stage only fails when nothing resolves at all.
func (r *PlantRepository) GetPlants(ctx context.Context, plantIDs []string) ([]*models.PlantDefinition, error) {
	if len(plantIDs) == 0 {
		return nil, nil
	}

	resolved := make([]*models.PlantDefinition, len(plantIDs))
	failures := make([]error, len(plantIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, plantID := range plantIDs {
		g.Go(func() error {
			plant, err := r.getPlant(gctx, plantID)
			if err != nil {
				// Not fatal for the request; record it for fan-in policy
				failures[i] = err
				r.logger.WithFields(logrus.Fields{
					"plant_id": plantID,
					"error":    err.Error(),
				}).Warn("Skipping unresolved plant")
				return nil
			}
			resolved[i] = plant
			return nil
		})
	}
	// Workers never return errors; Wait only joins the fan-out
	_ = g.Wait()

	plants := make([]*models.PlantDefinition, 0, len(plantIDs))
	for _, plant := range resolved {
		if plant != nil {
			plants = append(plants, plant)
		}
	}
	if len(plants) > 0 {
		return plants, nil
	}

	// Zero definitions resolved: unavailable only if every lookup failed
	// with a transport error, otherwise the references are simply dangling
	allTransport := true
	for _, err := range failures {
		if err == nil || !isRetryable(err) {
			allTransport = false
			break
		}
	}

	keys := strings.Join(plantIDs, ",")
	if allTransport {
		return nil, repositories.UnavailableError("get_batch", "plant", keys, failures[0])
	}
	return nil, repositories.NotFoundError("plant", keys)
}

// getPlant performs a single point lookup keyed by plant_id
func (r *PlantRepository) getPlant(ctx context.Context, plantID string) (*models.PlantDefinition, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"plant_id": &types.AttributeValueMemberS{Value: plantID},
		},
	})
	if err != nil {
		return nil, classifyError("get", "plant", plantID, err)
	}

	if len(out.Item) == 0 {
		return nil, repositories.NotFoundError("plant", plantID)
	}

	plant := &models.PlantDefinition{}
	if err := attributevalue.UnmarshalMap(out.Item, plant); err != nil {
		return nil, repositories.NewRepositoryError("decode", "plant", plantID,
			repositories.ErrInvalidRecord)
	}
	if plant.PlantID == "" {
		plant.PlantID = plantID
	}

	return plant, nil
}
