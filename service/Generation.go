package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/tresor228/pitch-ia/models"
)

var (
	// ErrNotConfigured signale l'absence de clé API.
	ErrNotConfigured = errors.New("generation: OPENAI_API_KEY not set")
	// ErrQuota signale un refus du fournisseur pour dépassement de quota.
	ErrQuota = errors.New("generation: quota exceeded")
	// ErrEmptyCompletion signale une réponse sans contenu.
	ErrEmptyCompletion = errors.New("generation: no response from AI")
)

// Generator produit le texte brut d'un pitch.
type Generator interface {
	Generate(ctx context.Context, req models.PitchRequest) (string, error)
}

// OpenAIGenerator appelle l'API chat completion d'OpenAI.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	log    logrus.FieldLogger
}

// NewOpenAIGenerator retourne ErrNotConfigured si apiKey est vide.
func NewOpenAIGenerator(apiKey, model string, log logrus.FieldLogger) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    log,
	}, nil
}

// NewOpenAIGeneratorWithConfig permet de viser une autre BaseURL (proxy, tests).
func NewOpenAIGeneratorWithConfig(cfg openai.ClientConfig, model string, log logrus.FieldLogger) *OpenAIGenerator {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    log,
	}
}

// Generate envoie le prompt numéroté et retourne le contenu du premier choix.
func (g *OpenAIGenerator) Generate(ctx context.Context, req models.PitchRequest) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(req),
			},
		},
	})
	if err != nil {
		g.log.WithError(err).Warn("chat completion failed")
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests || strings.Contains(strings.ToLower(apiErr.Message), "quota") {
			return fmt.Errorf("%w: %s", ErrQuota, apiErr.Message)
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrQuota, reqErr.Err)
	}
	return fmt.Errorf("chat completion: %w", err)
}

// BuildPrompt demande au modèle le format numéroté lu par ExtractSections.
func BuildPrompt(req models.PitchRequest) string {
	var b strings.Builder
	b.WriteString("Génère un pitch structuré pour la description suivante. Répond exactement au format numéroté ci-dessous (en français) :\n")
	for i, key := range models.SectionKeys {
		fmt.Fprintf(&b, "%d. [%s] ...\n", i+1, key.Label())
	}
	b.WriteString("Ne rajoute pas de texte hors de ces sections.\n")
	fmt.Fprintf(&b, "Description : %s", req.Idea)

	extras := []struct{ label, value string }{
		{"Marché cible", req.TargetMarket},
		{"Aspect unique", req.UniqueValue},
		{"Concurrents principaux", req.Competitors},
		{"Modèle économique", req.BusinessModel},
	}
	for _, e := range extras {
		if e.value != "" {
			fmt.Fprintf(&b, "\n%s : %s", e.label, e.value)
		}
	}
	return b.String()
}

// DemoGenerator produit un pitch sans appel réseau, pour le mode démo.
type DemoGenerator struct{}

func (DemoGenerator) Generate(_ context.Context, req models.PitchRequest) (string, error) {
	market := req.TargetMarket
	if market == "" {
		market = "Étudiants urbains 18-30 ans, utilisateurs mobiles cherchant commodité."
	}
	value := req.UniqueValue
	if value == "" {
		value = "Gain de temps, personnalisation et prix attractif."
	}
	model := req.BusinessModel
	if model == "" {
		model = "Freemium + abonnement premium + commissions."
	}

	s := models.Sections{
		models.SectionProblem:  fmt.Sprintf("Les utilisateurs rencontrent %s, ce qui crée une friction dans le parcours.", req.Idea),
		models.SectionSolution: fmt.Sprintf("Nous proposons une solution **simple et intuitive** basée sur %s, améliorant la conversion.", req.Idea),
		models.SectionMarket:   market,
		models.SectionValue:    value,
		models.SectionChannels: "Réseaux sociaux, partenariats campus, campagnes locales.",
		models.SectionModel:    model,
	}
	return ComposePitch(s), nil
}
