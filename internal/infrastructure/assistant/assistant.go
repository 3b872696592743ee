// Package assistant answers free-text questions about the project.
// A Gemini backend is used when an API key is configured, canned answers otherwise.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/dracma/presale/internal/domain"
)

const DefaultModel = "gemini-2.5-flash"

// MinAnalysisAmount is the smallest investment the analysis prompt is built for
var MinAnalysisAmount = decimal.NewFromInt(100)

var ErrAmountTooSmall = errors.New("investment analysis needs an amount of at least 100")

// TextGenerator is the opaque text-generation collaborator
type TextGenerator interface {
	Generate(ctx context.Context, prompt, lang string) (string, error)
}

// New picks the Gemini backend when apiKey is set and falls back to simulated answers
func New(ctx context.Context, apiKey, model string, logger *zap.Logger) (TextGenerator, error) {
	logger = logger.With(zap.String("component", "assistant"))
	sim := Simulated{}
	if apiKey == "" || apiKey == "YOUR_API_KEY_HERE" {
		logger.Warn("assistant API key not set, using simulated responses")
		return sim, nil
	}
	g, err := NewGemini(ctx, apiKey, model, sim, logger)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Gemini calls the Gemini API and answers from fallback when the call fails
type Gemini struct {
	client   *genai.Client
	model    string
	fallback TextGenerator
	logger   *zap.Logger
}

func NewGemini(ctx context.Context, apiKey, model string, fallback TextGenerator, logger *zap.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating genai client")
	}
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{client: client, model: model, fallback: fallback, logger: logger}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt, lang string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.logger.Warn("gemini call failed, using simulated response", zap.Error(err), zap.String("reason", failureReason(err)))
		return g.fallback.Generate(ctx, prompt, lang)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		g.logger.Warn("gemini returned an empty response")
		return g.fallback.Generate(ctx, prompt, lang)
	}
	return text, nil
}

func failureReason(err error) string {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 403:
			return "invalid api key"
		case 429:
			return "quota exceeded"
		}
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key not valid"):
		return "invalid api key"
	case strings.Contains(msg, "quota"):
		return "quota exceeded"
	}
	return "unknown"
}

// Simulated answers by keyword; lang "es" selects the Spanish text, anything else English
type Simulated struct{}

type cannedAnswer struct {
	keywords [][]string // any group whose words all appear matches
	en, es   string
}

var cannedAnswers = []cannedAnswer{
	{
		keywords: [][]string{{"filosofía dracma"}, {"philosophy", "dracma"}},
		en:       "DRACMA is built as a decentralized business holding: value comes from real projects owned by the community.",
		es:       "DRACMA nace como un holding empresarial descentralizado: el valor proviene de proyectos reales propiedad de la comunidad.",
	},
	{
		keywords: [][]string{{"analizar inversión"}, {"evalúa", "presale de dracma"}, {"analyze investment", "dracma"}},
		en:       "An early presale position with an active bonus tier maximizes the token allocation, and the 14% APR staking adds yield while the ecosystem projects roll out.",
		es:       "Entrar pronto en la preventa con un bono activo maximiza la asignación de tokens, y el staking al 14% APR suma rendimiento mientras se despliegan los proyectos del ecosistema.",
	},
	{
		keywords: [][]string{{"ecosistema dracma"}, {"tokenized real world assets"}, {"artificial intelligence (ai)"}, {"blockchain infrastructure"}, {"explain", "dracma ecosystem"}},
		en:       "The DRACMA ecosystem combines agriculture, solar-powered mining farms, an employment app, a wallet and secure chat under one token.",
		es:       "El ecosistema DRACMA une agricultura, granjas de minería con energía solar, una app de empleo, una wallet y un chat seguro bajo un mismo token.",
	},
	{
		keywords: [][]string{{"impacto del roadmap"}, {"roadmap impact", "dracma"}},
		en:       "Each roadmap milestone brings a new revenue-generating project online, which strengthens the utility of the token.",
		es:       "Cada hito del roadmap pone en marcha un nuevo proyecto que genera ingresos y refuerza la utilidad del token.",
	},
	{
		keywords: [][]string{{"confirmando la recepción"}, {"contactar a dracma"}, {"contact form", "dracma"}},
		en:       "Thank you for contacting DRACMA. We have received your message and the team will reply shortly.",
		es:       "Gracias por contactar a DRACMA. Hemos recibido tu mensaje y el equipo te responderá en breve.",
	},
	{
		keywords: [][]string{{"crowdfunding p2p de dracma"}, {"proyecto de crowdfunding"}, {"p2p crowdfunding", "dracma"}, {"crowdfunding project", "dracma"}},
		en:       "P2P crowdfunding lets holders back individual DRACMA projects directly and share in their results.",
		es:       "El crowdfunding P2P permite a los holders financiar directamente proyectos DRACMA y participar en sus resultados.",
	},
}

var genericAnswer = cannedAnswer{
	en: "DRACMA AI is processing your request. This is a simulated response.",
	es: "DRACMA IA está procesando tu solicitud. Esta es una respuesta simulada.",
}

func (a cannedAnswer) in(lang string) string {
	if strings.HasPrefix(strings.ToLower(lang), "es") {
		return a.es
	}
	return a.en
}

func (Simulated) Generate(_ context.Context, prompt, lang string) (string, error) {
	lower := strings.ToLower(prompt)
	for _, c := range cannedAnswers {
		for _, group := range c.keywords {
			if containsAll(lower, group) {
				return c.in(lang), nil
			}
		}
	}
	return genericAnswer.in(lang), nil
}

func containsAll(s string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(s, w) {
			return false
		}
	}
	return true
}

// InvestmentPrompt builds the analysis prompt for a presale purchase of amountUSD on network
func InvestmentPrompt(amountUSD decimal.Decimal, network string, quote domain.PurchaseQuote, lang string) (string, error) {
	if amountUSD.LessThan(MinAnalysisAmount) {
		return "", ErrAmountTooSmall
	}

	bonus := quote.TierLabel
	if bonus == "" {
		bonus = "no bonus"
	}
	return fmt.Sprintf(
		"As a financial analyst specialized in Web3 and AI, briefly analyze investment of %s USD in the DRACMA presale "+
			"on the %s network, which results in approximately %s $DRC tokens (including a %s bonus of %s%%). "+
			"DRACMA is a decentralized business holding with agriculture projects, solar farms for mining, an employment app, "+
			"a wallet and a secure chat. It offers 14%% APR staking. Give a concise (2-3 sentences) and optimistic outlook. Language: %s.",
		amountUSD.String(),
		network,
		quote.TotalTokens.Round(0).String(),
		bonus,
		quote.Rate.Mul(decimal.NewFromInt(100)).String(),
		lang,
	), nil
}
