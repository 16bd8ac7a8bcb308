package unit_tests

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"tasweeq/internal/llm/client"
	"tasweeq/internal/models"
	"tasweeq/internal/services"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want models.ErrorKind
	}{
		{"validation", &models.ValidationError{Fields: []string{"price"}}, models.ErrorKindLocalValidation},
		{"wrapped validation", fmt.Errorf("submit: %w", &models.ValidationError{Fields: []string{"name"}}), models.ErrorKindLocalValidation},
		{"malformed", fmt.Errorf("%w: unexpected end of JSON input", client.ErrMalformedResponse), models.ErrorKindMalformedResponse},
		{"missing credential", client.ErrMissingCredential, models.ErrorKindAuthentication},
		{"gate closed", services.ErrCredentialRequired, models.ErrorKindAuthentication},
		{"api key invalid", errors.New("Error 400: API key not valid. Please pass a valid API key."), models.ErrorKindAuthentication},
		{"permission denied", errors.New("rpc error: code = PermissionDenied desc = permission denied"), models.ErrorKindAuthentication},
		{"permission denied status", errors.New("Error 403, Status: PERMISSION_DENIED"), models.ErrorKindAuthentication},
		{"entity not found", errors.New("Requested entity was not found."), models.ErrorKindAuthentication},
		{"unauthenticated", errors.New("UNAUTHENTICATED: request had invalid credentials"), models.ErrorKindAuthentication},
		{"deadline sentinel", fmt.Errorf("generate content: %w", context.DeadlineExceeded), models.ErrorKindTimeout},
		{"deadline status", errors.New("Error 504, Status: DEADLINE_EXCEEDED"), models.ErrorKindTimeout},
		{"timed out", errors.New("dial tcp: i/o timeout"), models.ErrorKindTimeout},
		{"other", errors.New("Error 500: internal error"), models.ErrorKindUnknown},
		{"quota", errors.New("Error 429, Status: RESOURCE_EXHAUSTED"), models.ErrorKindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, services.Classify(tc.err))
		})
	}
}

func TestClassify_NilError(t *testing.T) {
	assert.Equal(t, models.ErrorKind(""), services.Classify(nil))
}

func TestUserMessage_EveryKindHasArabicText(t *testing.T) {
	kinds := []models.ErrorKind{
		models.ErrorKindLocalValidation,
		models.ErrorKindMalformedResponse,
		models.ErrorKindAuthentication,
		models.ErrorKindTimeout,
		models.ErrorKindUnknown,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		msg := services.UserMessage(k)
		assert.NotEmpty(t, msg, k)
		assert.False(t, seen[msg], "duplicate message for %s", k)
		seen[msg] = true
	}
	assert.Equal(t, services.UserMessage(models.ErrorKindUnknown), services.UserMessage("SomethingElse"))
}

func TestClassify_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("classification is deterministic and total", prop.ForAll(
		func(msg string) bool {
			err := errors.New(msg)
			first := services.Classify(err)
			return first != "" && first == services.Classify(err)
		},
		gen.AnyString(),
	))

	properties.Property("wrapping keeps the kind", prop.ForAll(
		func(msg string) bool {
			err := errors.New(msg)
			return services.Classify(fmt.Errorf("generate content: %w", err)) == services.Classify(err)
		},
		gen.AnyString(),
	))

	properties.Property("auth markers win regardless of surrounding text", prop.ForAll(
		func(before, after string) bool {
			err := errors.New(before + " permission denied " + after)
			return services.Classify(err) == models.ErrorKindAuthentication
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
