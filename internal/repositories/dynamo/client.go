package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/smithy-go"

	"plantcare-advisor-api/internal/repositories"
)

// GetItemAPI is the subset of the DynamoDB client the repositories use.
// The production implementation is *dynamodb.Client; tests substitute fakes.
type GetItemAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// throttlingCodes are DynamoDB error codes that indicate transient pressure
// rather than a broken request
var throttlingCodes = map[string]bool{
	"ThrottlingException":                    true,
	"ProvisionedThroughputExceededException": true,
	"RequestLimitExceeded":                   true,
	"ServiceUnavailable":                     true,
	"InternalServerError":                    true,
}

// classifyError converts a raw SDK error into the repository error taxonomy:
// timeouts and transient store pressure become retryable, everything else is
// surfaced as-is for the caller to treat as unexpected.
func classifyError(op, entity, key string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return repositories.NewRepositoryError(op, entity, key,
			fmt.Errorf("%w: %v", repositories.ErrTimeout, err))
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if throttlingCodes[apiErr.ErrorCode()] {
			return repositories.UnavailableError(op, entity, key, err)
		}
		return repositories.NewRepositoryError(op, entity, key, err)
	}

	// Non-API failures are connection-level problems and worth a retry
	return repositories.UnavailableError(op, entity, key, err)
}

// isRetryable reports whether a repository error represents a transient
// transport failure
func isRetryable(err error) bool {
	return errors.Is(err, repositories.ErrUnavailable) || errors.Is(err, repositories.ErrTimeout)
}
