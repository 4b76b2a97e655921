package outreach

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendstack/prospect-pipeline/internal/model"
	"github.com/lendstack/prospect-pipeline/internal/prospect"
	"github.com/lendstack/prospect-pipeline/internal/resilience"
	"github.com/lendstack/prospect-pipeline/internal/taxonomy"
	"github.com/lendstack/prospect-pipeline/pkg/anthropic"
)

// mockClient scripts CreateMessage responses.
type mockClient struct {
	requests  []anthropic.MessageRequest
	responses []*anthropic.MessageResponse
	errs      []error
}

func (m *mockClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	idx := len(m.requests)
	m.requests = append(m.requests, req)
	var (
		resp *anthropic.MessageResponse
		err  error
	)
	if idx < len(m.responses) {
		resp = m.responses[idx]
	}
	if idx < len(m.errs) {
		err = m.errs[idx]
	}
	return resp, err
}

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
	}
}

func qualifiedProspect() *prospect.Prospect {
	return &prospect.Prospect{
		ID: "p-1",
		Record: model.BusinessRecord{
			Name:         "Summit HVAC",
			Address:      "77 Pine St, Boise, ID 83702",
			BusinessType: taxonomy.TypeHVAC,
			Category:     taxonomy.CategoryHomeServices,
			Rating:       4.7,
			ReviewCount:  140,
			RevenueBand:  "$30K-40K monthly",
			Qualification: &model.QualificationResult{
				Strategy:  "weighted",
				Score:     85,
				Qualified: true,
			},
		},
	}
}

func noRetry() resilience.RetryConfig {
	return resilience.RetryConfig{MaxAttempts: 1}
}

func TestGenerate_Success(t *testing.T) {
	client := &mockClient{responses: []*anthropic.MessageResponse{
		textResponse(`{"subject": "Growth capital for Summit HVAC", "body": "Hi there..."}`),
	}}
	gen := NewGenerator(client, WithRetryConfig(noRetry()))

	email, err := gen.Generate(context.Background(), qualifiedProspect())
	require.NoError(t, err)
	assert.Equal(t, "Growth capital for Summit HVAC", email.Subject)
	assert.Equal(t, "Hi there...", email.Body)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.NotEmpty(t, req.System)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "Summit HVAC")
	assert.Contains(t, req.Messages[0].Content, "HVAC Company")
	assert.Contains(t, req.Messages[0].Content, "85/100")
}

func TestGenerate_SurroundingProse(t *testing.T) {
	client := &mockClient{responses: []*anthropic.MessageResponse{
		textResponse("Here is the email:\n{\"subject\": \"Hello\", \"body\": \"Short note.\"}\nLet me know!"),
	}}
	gen := NewGenerator(client, WithRetryConfig(noRetry()))

	email, err := gen.Generate(context.Background(), qualifiedProspect())
	require.NoError(t, err)
	assert.Equal(t, "Hello", email.Subject)
}

func TestGenerate_UnqualifiedProspectRejected(t *testing.T) {
	client := &mockClient{}
	gen := NewGenerator(client, WithRetryConfig(noRetry()))

	p := qualifiedProspect()
	p.Record.Qualification.Qualified = false
	_, err := gen.Generate(context.Background(), p)
	require.Error(t, err)
	assert.Empty(t, client.requests, "client must not be called for unqualified prospects")
}

func TestGenerate_NoQualificationRejected(t *testing.T) {
	gen := NewGenerator(&mockClient{}, WithRetryConfig(noRetry()))

	p := qualifiedProspect()
	p.Record.Qualification = nil
	_, err := gen.Generate(context.Background(), p)
	assert.Error(t, err)
}

func TestGenerate_EmptyResponse(t *testing.T) {
	client := &mockClient{responses: []*anthropic.MessageResponse{textResponse("")}}
	gen := NewGenerator(client, WithRetryConfig(noRetry()))

	_, err := gen.Generate(context.Background(), qualifiedProspect())
	assert.Error(t, err)
}

func TestGenerate_MissingFields(t *testing.T) {
	client := &mockClient{responses: []*anthropic.MessageResponse{
		textResponse(`{"subject": "", "body": "no subject"}`),
	}}
	gen := NewGenerator(client, WithRetryConfig(noRetry()))

	_, err := gen.Generate(context.Background(), qualifiedProspect())
	assert.Error(t, err)
}

func TestGenerate_RetriesTransientFailure(t *testing.T) {
	client := &mockClient{
		errs: []error{resilience.NewBoundaryError(assert.AnError, 503), nil},
		responses: []*anthropic.MessageResponse{
			nil,
			textResponse(`{"subject": "After retry", "body": "ok"}`),
		},
	}
	gen := NewGenerator(client, WithRetryConfig(resilience.RetryConfig{
		MaxAttempts:    2,
		InitialBackoff: 1, // nanosecond, keeps the test fast
	}))

	email, err := gen.Generate(context.Background(), qualifiedProspect())
	require.NoError(t, err)
	assert.Equal(t, "After retry", email.Subject)
	assert.Len(t, client.requests, 2)
}

func TestParseEmail_BodyClamped(t *testing.T) {
	long := make([]byte, maxBodyChars+500)
	for i := range long {
		long[i] = 'a'
	}
	email, err := parseEmail(`{"subject": "s", "body": "` + string(long) + `"}`)
	require.NoError(t, err)
	assert.Len(t, email.Body, maxBodyChars)
}
