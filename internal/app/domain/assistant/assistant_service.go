package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

var _ Service = (*ServiceImpl)(nil)

// ChatRequest is a free-form question for the assistant.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ItineraryRequest asks for a suggested visiting plan.
type ItineraryRequest struct {
	Days      int      `json:"days" binding:"omitempty,gte=1,lte=14"`
	Interests []string `json:"interests"`
}

// Response carries the generated (or canned) text. Fallback is true when the
// generative service was unavailable and static text was substituted.
type Response struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

// Service is a best-effort proxy to the generative-text backend. It never
// returns a transport error to the caller: failures degrade to canned text,
// and gamification state is entirely unaffected by this feature.
type Service interface {
	Chat(ctx context.Context, req ChatRequest) *Response
	Itinerary(ctx context.Context, req ItineraryRequest) *Response
}

// TextGenerator abstracts the LLM call so the service can be tested without
// a live backend.
type TextGenerator interface {
	Generate(ctx context.Context, prompt, systemInstruction string) (string, error)
}

// POILister supplies the current catalog so prompts stay grounded in real
// places.
type POILister interface {
	ListPOIs(ctx context.Context) ([]models.PointOfInterest, error)
}

const systemInstruction = "Você é o assistente turístico oficial de Caçapava do Sul, RS. " +
	"Responda em português, de forma curta e amigável, e só recomende lugares da lista fornecida."

const fallbackText = "No momento não consigo gerar uma resposta personalizada. " +
	"Sugestão: comece pela Pedra do Segredo, visite o Parque das Guaritas e termine o dia " +
	"no centro histórico, entre o Forte Dom Pedro II e a Igreja Matriz. Bom passeio!"

type ServiceImpl struct {
	logger    *zap.Logger
	generator TextGenerator
	pois      POILister
}

func NewServiceImpl(generator TextGenerator, pois POILister, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, generator: generator, pois: pois}
}

func (s *ServiceImpl) Chat(ctx context.Context, req ChatRequest) *Response {
	prompt := fmt.Sprintf("Pergunta do turista: %s\n\n%s", req.Message, s.catalogContext(ctx))
	return s.generate(ctx, prompt)
}

func (s *ServiceImpl) Itinerary(ctx context.Context, req ItineraryRequest) *Response {
	days := req.Days
	if days < 1 {
		days = 1
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Monte um roteiro de %d dia(s) em Caçapava do Sul.", days)
	if len(req.Interests) > 0 {
		fmt.Fprintf(&prompt, " Interesses do turista: %s.", strings.Join(req.Interests, ", "))
	}
	prompt.WriteString("\n\n")
	prompt.WriteString(s.catalogContext(ctx))

	return s.generate(ctx, prompt.String())
}

func (s *ServiceImpl) generate(ctx context.Context, prompt string) *Response {
	if s.generator == nil {
		return &Response{Text: fallbackText, Fallback: true}
	}

	text, err := s.generator.Generate(ctx, prompt, systemInstruction)
	if err != nil || strings.TrimSpace(text) == "" {
		s.logger.Warn("Generative service unavailable, using fallback text", zap.Error(err))
		return &Response{Text: fallbackText, Fallback: true}
	}
	return &Response{Text: text}
}

// catalogContext renders the POI catalog into the prompt. A failure here is
// not fatal; the assistant just answers without the listing.
func (s *ServiceImpl) catalogContext(ctx context.Context) string {
	pois, err := s.pois.ListPOIs(ctx)
	if err != nil || len(pois) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Pontos turísticos cadastrados:\n")
	for _, poi := range pois {
		fmt.Fprintf(&b, "- %s: %s\n", poi.Name, poi.ShortDescription)
	}
	return b.String()
}

// GeminiGenerator implements TextGenerator over the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator builds the Gemini-backed generator. It returns nil when
// no API key is configured, which puts the assistant in fallback-only mode.
func NewGeminiGenerator(ctx context.Context, apiKey, model string, logger *zap.Logger) *GeminiGenerator {
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY not set, assistant will serve fallback text only")
		return nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Error("Failed to initialize Gemini client, assistant will serve fallback text only", zap.Error(err))
		return nil
	}

	return &GeminiGenerator{client: client, model: model}
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt, system string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content failed: %w", err)
	}
	return resp.Text(), nil
}
