// Package generate builds prompts, calls the generation service and turns
// its replies into documents, proposals and suggestions.
package generate

import (
	"context"
	"errors"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/ziadkadry99/sitecraft/internal/llm"
	"github.com/ziadkadry99/sitecraft/internal/merge"
	"github.com/ziadkadry99/sitecraft/internal/parser"
	"github.com/ziadkadry99/sitecraft/internal/site"
)

// Options are caller hints folded into the generation prompt.
type Options struct {
	StylePreference string `json:"stylePreference,omitempty"`
	ColorScheme     string `json:"colorScheme,omitempty"`
	Industry        string `json:"industry,omitempty"`
	TargetAudience  string `json:"targetAudience,omitempty"`
}

// Config holds model selection and request limits.
type Config struct {
	Model         string
	FallbackModel string
	Temperature   float64

	GenerateMaxTokens int
	ModifyMaxTokens   int
	SuggestMaxTokens  int
}

// DefaultConfig matches the limits the generator was tuned with.
func DefaultConfig() Config {
	return Config{
		Model:             "gpt-4o",
		FallbackModel:     "gpt-4-turbo-preview",
		Temperature:       0.7,
		GenerateMaxTokens: 6000,
		ModifyMaxTokens:   3000,
		SuggestMaxTokens:  800,
	}
}

// Step names a phase reported to the progress callback.
type Step string

const (
	StepAnalyze  Step = "analyze"
	StepGenerate Step = "generate"
	StepParse    Step = "parse"
)

// Steps is the ordered list of steps Generate reports.
var Steps = []Step{StepAnalyze, StepGenerate, StepParse}

// ProgressFunc receives step notifications.
type ProgressFunc func(step Step, message string)

// Usage is the token count and estimated cost of one call.
type Usage struct {
	Model        string  `json:"model"`
	InputTokens  int     `json:"inputTokens"`
	OutputTokens int     `json:"outputTokens"`
	CostUSD      float64 `json:"costUsd"`
}

// Result is a generated document with usage.
type Result struct {
	Document *site.Document
	Usage    Usage
}

// ModifyResult is an AI edit: the parsed proposal and the merged section.
type ModifyResult struct {
	Proposal merge.Proposal
	Section  site.Section
	Usage    Usage
}

// Orchestrator talks to one provider on behalf of the editing layer.
type Orchestrator struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
	progress ProgressFunc
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Orchestrator) { o.progress = fn }
}

// New returns an orchestrator using provider. Zero config fields take
// their DefaultConfig values, except FallbackModel: an empty fallback
// disables the retry.
func New(provider llm.Provider, cfg Config, opts ...Option) *Orchestrator {
	def := DefaultConfig()
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.GenerateMaxTokens <= 0 {
		cfg.GenerateMaxTokens = def.GenerateMaxTokens
	}
	if cfg.ModifyMaxTokens <= 0 {
		cfg.ModifyMaxTokens = def.ModifyMaxTokens
	}
	if cfg.SuggestMaxTokens <= 0 {
		cfg.SuggestMaxTokens = def.SuggestMaxTokens
	}
	o := &Orchestrator{provider: provider, cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Config returns the effective configuration.
func (o *Orchestrator) Config() Config { return o.cfg }

func (o *Orchestrator) report(step Step, msg string) {
	if o.progress != nil {
		o.progress(step, msg)
	}
}

// Generate produces a new document from a prose description.
func (o *Orchestrator) Generate(ctx context.Context, prompt string, opts Options) (*Result, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, site.Errorf(site.InvalidInput, "prompt is required")
	}

	o.report(StepAnalyze, "Analyzing description")
	analysis := Analyze(prompt)
	o.logger.Debug("prompt analyzed",
		zap.String("type", analysis.WebsiteType),
		zap.String("industry", analysis.Industry),
		zap.String("tone", analysis.Tone),
		zap.Strings("sections", analysis.KeyFeatures))

	o.report(StepGenerate, "Generating website")
	resp, usage, err := o.complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: userPrompt(prompt, analysis, opts)},
		},
		MaxTokens:   o.cfg.GenerateMaxTokens,
		Temperature: o.cfg.Temperature,
	})
	if err != nil {
		return nil, err
	}

	o.report(StepParse, "Validating structure")
	doc, err := parser.ParseDocument(resp.Content)
	if err != nil {
		o.logger.Error("generated document rejected", zap.String("kind", string(site.KindOf(err))), zap.Error(err))
		return nil, err
	}
	o.logger.Info("website generated",
		zap.String("id", doc.ID),
		zap.Int("sections", len(doc.Sections)),
		zap.String("model", usage.Model),
		zap.Float64("cost_usd", usage.CostUSD))
	return &Result{Document: doc, Usage: usage}, nil
}

// Modify asks the model to apply instruction to section and merges the
// reply. The section's identity is never taken from the reply.
func (o *Orchestrator) Modify(ctx context.Context, section site.Section, instruction string) (*ModifyResult, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return nil, site.Errorf(site.InvalidInput, "instruction is required")
	}
	user, err := modifyUserPrompt(section, instruction)
	if err != nil {
		return nil, site.Wrap(site.InvalidInput, err, "section cannot be encoded")
	}

	resp, usage, err := o.complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: modifySystemPrompt},
			{Role: llm.RoleUser, Content: user},
		},
		MaxTokens:   o.cfg.ModifyMaxTokens,
		Temperature: o.cfg.Temperature,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	proposal, err := parser.ParseProposal(resp.Content)
	if err != nil {
		o.logger.Error("section proposal rejected", zap.String("section", section.ID), zap.Error(err))
		return nil, err
	}
	if proposal.ID != "" && proposal.ID != section.ID {
		o.logger.Warn("model changed section id, keeping original",
			zap.String("section", section.ID), zap.String("proposed", proposal.ID))
	}

	merged, err := merge.Apply(section, proposal, merge.Edit{Origin: site.EditAI, Instruction: instruction})
	if err != nil {
		o.logger.Error("section merge rejected", zap.String("section", section.ID), zap.Error(err))
		return nil, err
	}
	return &ModifyResult{Proposal: proposal, Section: merged, Usage: usage}, nil
}

// maxSuggestions caps the list returned by Suggest.
const maxSuggestions = 5

// Suggest returns improvement ideas for section. Any failure yields an
// empty list.
func (o *Orchestrator) Suggest(ctx context.Context, section site.Section) []string {
	user, err := suggestUserPrompt(section)
	if err != nil {
		return []string{}
	}
	resp, _, err := o.complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: suggestSystemPrompt},
			{Role: llm.RoleUser, Content: user},
		},
		MaxTokens:   o.cfg.SuggestMaxTokens,
		Temperature: o.cfg.Temperature,
		JSONMode:    true,
	})
	if err != nil {
		o.logger.Warn("suggestions unavailable", zap.String("section", section.ID), zap.Error(err))
		return []string{}
	}
	list, err := parser.ParseSuggestions(resp.Content)
	if err != nil {
		o.logger.Warn("suggestions unparseable", zap.String("section", section.ID), zap.Error(err))
		return []string{}
	}
	if len(list) > maxSuggestions {
		list = list[:maxSuggestions]
	}
	return list
}

// complete runs req against the primary model, retrying exactly once with
// the fallback model when the provider reports the model unavailable.
func (o *Orchestrator) complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, Usage, error) {
	model := o.cfg.Model
	var resp *llm.CompletionResponse

	op := func() error {
		req.Model = model
		r, err := o.provider.Complete(ctx, req)
		if err == nil {
			resp = r
			return nil
		}
		if llm.IsModelUnavailable(err) && o.cfg.FallbackModel != "" && model != o.cfg.FallbackModel {
			o.logger.Warn("model unavailable, retrying with fallback",
				zap.String("model", model), zap.String("fallback", o.cfg.FallbackModel), zap.Error(err))
			model = o.cfg.FallbackModel
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 1), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, Usage{}, o.classify(err)
	}
	if strings.TrimSpace(resp.Content) == "" {
		o.logger.Error("empty completion", zap.String("model", model))
		return nil, Usage{}, site.Errorf(site.GenerationFailed, "no response from the generation service")
	}

	llm.EstimateUsage(req, resp)
	usage := Usage{Model: resp.Model, InputTokens: resp.InputTokens, OutputTokens: resp.OutputTokens}
	if usage.Model == "" {
		usage.Model = model
	}
	usage.CostUSD = llm.EstimateCost(usage.Model, usage.InputTokens, usage.OutputTokens)
	if usage.CostUSD == 0 {
		usage.CostUSD = llm.EstimateCost(model, usage.InputTokens, usage.OutputTokens)
	}
	return resp, usage, nil
}

func (o *Orchestrator) classify(err error) error {
	o.logger.Error("generation call failed", zap.String("provider", o.provider.Name()), zap.Error(err))
	if llm.IsModelUnavailable(err) {
		return site.Wrap(site.ModelUnavailable, err, "model unavailable")
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return site.Wrap(site.GenerationFailed, err, "generation timed out or was cancelled")
	}
	return site.Wrap(site.GenerationFailed, err, "generation call failed")
}
