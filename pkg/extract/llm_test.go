package extract_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/carfinder/pkg/extract"
	extractMocks "github.com/donaldgifford/carfinder/pkg/extract/mocks"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func TestLLMExtractor_Extract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		setupMock  func(*extractMocks.MockLLMBackend)
		want       domain.PreferenceSet
		wantErrMsg string
	}{
		{
			name: "prompt carries the message in JSON mode",
			setupMock: func(m *extractMocks.MockLLMBackend) {
				m.EXPECT().
					Generate(mock.Anything, mock.MatchedBy(func(r extract.GenerateRequest) bool {
						return r.Format == extract.FormatJSON &&
							r.SystemMsg == extract.SystemPrompt &&
							strings.Contains(r.Prompt, "Message: something roomy for camping trips")
					})).
					Return(extract.GenerateResponse{Content: `{"vehicle_type":"suv","desired_features":["all-wheel drive"]}`}, nil).
					Once()
			},
			want: domain.PreferenceSet{
				VehicleType:     domain.VehicleSUV,
				DesiredFeatures: []string{"all-wheel drive"},
			},
		},
		{
			name: "backend error",
			setupMock: func(m *extractMocks.MockLLMBackend) {
				m.EXPECT().Generate(mock.Anything, mock.Anything).
					Return(extract.GenerateResponse{}, errors.New("connection refused")).Once()
				m.EXPECT().Name().Return("ollama")
			},
			wantErrMsg: "generating with ollama: connection refused",
		},
		{
			name: "unparseable answer",
			setupMock: func(m *extractMocks.MockLLMBackend) {
				m.EXPECT().Generate(mock.Anything, mock.Anything).
					Return(extract.GenerateResponse{Content: "sorry"}, nil).Once()
			},
			wantErrMsg: "decoding preferences JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := extractMocks.NewMockLLMBackend(t)
			tt.setupMock(m)

			got, err := extract.NewLLMExtractor(m).Extract(context.Background(), "something roomy for camping trips")
			if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLLMExtractor_Timeout(t *testing.T) {
	t.Parallel()

	m := extractMocks.NewMockLLMBackend(t)
	m.EXPECT().Name().Return("anthropic")
	m.EXPECT().Generate(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ extract.GenerateRequest) (extract.GenerateResponse, error) {
			<-ctx.Done()
			return extract.GenerateResponse{}, ctx.Err()
		}).Once()

	x := extract.NewLLMExtractor(m, extract.WithLLMTimeout(10*time.Millisecond))
	assert.Equal(t, "anthropic", x.Name())

	_, err := x.Extract(context.Background(), "hybrid please")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
