package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt, system string) (string, error) {
	args := m.Called(ctx, prompt, system)
	return args.String(0), args.Error(1)
}

type MockPOILister struct {
	mock.Mock
}

func (m *MockPOILister) ListPOIs(ctx context.Context) ([]models.PointOfInterest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PointOfInterest), args.Error(1)
}

func TestChatGroundsPromptInCatalog(t *testing.T) {
	pois := new(MockPOILister)
	pois.On("ListPOIs", mock.Anything).Return([]models.PointOfInterest{
		{Name: "Pedra do Segredo", ShortDescription: "Formação rochosa"},
	}, nil)

	generator := new(MockGenerator)
	generator.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Onde comer?") && strings.Contains(prompt, "Pedra do Segredo")
	}), systemInstruction).Return("Experimente o centro histórico.", nil)

	svc := NewServiceImpl(generator, pois, zap.NewNop())
	resp := svc.Chat(context.Background(), ChatRequest{Message: "Onde comer?"})

	assert.False(t, resp.Fallback)
	assert.Equal(t, "Experimente o centro histórico.", resp.Text)
	generator.AssertExpectations(t)
}

func TestChatFallsBackOnGeneratorError(t *testing.T) {
	pois := new(MockPOILister)
	pois.On("ListPOIs", mock.Anything).Return([]models.PointOfInterest{}, nil)

	generator := new(MockGenerator)
	generator.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("quota exceeded"))

	svc := NewServiceImpl(generator, pois, zap.NewNop())
	resp := svc.Chat(context.Background(), ChatRequest{Message: "Olá"})

	assert.True(t, resp.Fallback)
	assert.Equal(t, fallbackText, resp.Text)
}

func TestChatFallsBackOnEmptyGeneration(t *testing.T) {
	pois := new(MockPOILister)
	pois.On("ListPOIs", mock.Anything).Return([]models.PointOfInterest{}, nil)

	generator := new(MockGenerator)
	generator.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("   ", nil)

	svc := NewServiceImpl(generator, pois, zap.NewNop())
	resp := svc.Chat(context.Background(), ChatRequest{Message: "Olá"})

	assert.True(t, resp.Fallback)
}

func TestChatWithoutGeneratorServesFallback(t *testing.T) {
	pois := new(MockPOILister)

	svc := NewServiceImpl(nil, pois, zap.NewNop())
	resp := svc.Chat(context.Background(), ChatRequest{Message: "Olá"})

	assert.True(t, resp.Fallback)
	assert.Equal(t, fallbackText, resp.Text)
	pois.AssertNotCalled(t, "ListPOIs", mock.Anything)
}

func TestItineraryDefaultsToOneDay(t *testing.T) {
	pois := new(MockPOILister)
	pois.On("ListPOIs", mock.Anything).Return([]models.PointOfInterest{}, nil)

	generator := new(MockGenerator)
	generator.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "1 dia(s)")
	}), mock.Anything).Return("Roteiro de um dia.", nil)

	svc := NewServiceImpl(generator, pois, zap.NewNop())
	resp := svc.Itinerary(context.Background(), ItineraryRequest{})

	assert.False(t, resp.Fallback)
	generator.AssertExpectations(t)
}

func TestItineraryIncludesInterests(t *testing.T) {
	pois := new(MockPOILister)
	pois.On("ListPOIs", mock.Anything).Return([]models.PointOfInterest{}, nil)

	generator := new(MockGenerator)
	generator.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "3 dia(s)") && strings.Contains(prompt, "geologia, história")
	}), mock.Anything).Return("Roteiro geológico.", nil)

	svc := NewServiceImpl(generator, pois, zap.NewNop())
	resp := svc.Itinerary(context.Background(), ItineraryRequest{
		Days:      3,
		Interests: []string{"geologia", "história"},
	})

	require.NotNil(t, resp)
	assert.Equal(t, "Roteiro geológico.", resp.Text)
}

func TestCatalogContextSurvivesListerError(t *testing.T) {
	pois := new(MockPOILister)
	pois.On("ListPOIs", mock.Anything).Return(nil, errors.New("db down"))

	generator := new(MockGenerator)
	generator.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("Resposta.", nil)

	svc := NewServiceImpl(generator, pois, zap.NewNop())
	resp := svc.Chat(context.Background(), ChatRequest{Message: "Olá"})

	assert.False(t, resp.Fallback)
}
