package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"plantcare-advisor-api/internal/models"
)

// ConverseAPI is the subset of the Bedrock runtime client the advisor uses.
// The production implementation is *bedrockruntime.Client; tests substitute
// fakes.
type ConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockAdvisor implements AdvisorService against the Bedrock Converse API
type BedrockAdvisor struct {
	client  ConverseAPI
	modelID string
	timeout time.Duration
	retry   *RetryConfig
	limiter *rate.Limiter
	logger  *logrus.Logger
}

// NewBedrockAdvisor creates a new Bedrock-backed advisor. Throttling
// responses are retried with exponential backoff up to maxAttempts; a
// client-side limiter smooths the request rate before the service has to
// push back.
func NewBedrockAdvisor(client ConverseAPI, modelID string, timeout time.Duration, maxAttempts int, ratePerSec float64, logger *logrus.Logger) *BedrockAdvisor {
	retryConfig := DefaultRetryConfig()
	if maxAttempts > 0 {
		retryConfig.MaxAttempts = maxAttempts
	}

	return &BedrockAdvisor{
		client:  client,
		modelID: modelID,
		timeout: timeout,
		retry:   retryConfig,
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), 1),
		logger:  logger,
	}
}

// Generate invokes the model once per successful attempt and parses its
// output into an AdviceResult
func (a *BedrockAdvisor) Generate(ctx context.Context, profile *models.UserProfile, plants []*models.PlantDefinition, weather *models.WeatherSnapshot) (*models.AdviceResult, error) {
	prompt := BuildPrompt(profile, plants, weather)

	var text string
	attempt := 0
	err := WithRetry(ctx, a.retry, isThrottlingError, func(ctx context.Context) error {
		attempt++
		if err := a.limiter.Wait(ctx); err != nil {
			return err
		}

		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		out, err := a.client.Converse(callCtx, &bedrockruntime.ConverseInput{
			ModelId: aws.String(a.modelID),
			System: []brtypes.SystemContentBlock{
				&brtypes.SystemContentBlockMemberText{Value: advisorSystemPrompt},
			},
			Messages: []brtypes.Message{
				{
					Role: brtypes.ConversationRoleUser,
					Content: []brtypes.ContentBlock{
						&brtypes.ContentBlockMemberText{Value: prompt},
					},
				},
			},
			InferenceConfig: &brtypes.InferenceConfiguration{
				MaxTokens:   aws.Int32(1024),
				Temperature: aws.Float32(0.4),
			},
		})
		if err != nil {
			a.logger.WithFields(logrus.Fields{
				"model":   a.modelID,
				"attempt": attempt,
				"error":   err.Error(),
			}).Warn("Model invocation failed")
			return err
		}

		text = extractText(out)
		if text == "" {
			return fmt.Errorf("%w: model returned no text content", ErrMalformedResponse)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: model invocation: %v", ErrUnavailable, err)
	}

	a.logger.WithFields(logrus.Fields{
		"model":       a.modelID,
		"attempts":    attempt,
		"user_id":     profile.UserID,
		"plant_count": len(plants),
	}).Info("Advice generated")

	return ParseAdvice(text, plants), nil
}

// extractText concatenates the text blocks of the model's reply
func extractText(out *bedrockruntime.ConverseOutput) string {
	message, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return ""
	}

	var b strings.Builder
	for _, block := range message.Value.Content {
		if text, ok := block.(*brtypes.ContentBlockMemberText); ok {
			b.WriteString(text.Value)
		}
	}
	return strings.TrimSpace(b.String())
}

// isThrottlingError reports whether the model service asked us to back off.
// Only these failures are retried; everything else fails the stage.
func isThrottlingError(err error) bool {
	var throttled *brtypes.ThrottlingException
	if errors.As(err, &throttled) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ThrottlingException", "TooManyRequestsException", "ServiceQuotaExceededException":
			return true
		}
	}
	return false
}
