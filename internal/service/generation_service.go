package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"munidocs/internal/accounting"
	"munidocs/internal/domain"
	"munidocs/internal/logger"
	"munidocs/internal/observability"
	"munidocs/internal/port"
	"munidocs/internal/prompt"
	"munidocs/internal/signature"
)

// GenerateInput is the DTO for one generation request. OwnerID comes from
// the verified credential, never from the request body.
type GenerateInput struct {
	OwnerID      uuid.UUID
	DocumentType domain.DocumentType
	Fields       map[string]string
	Files        []domain.ReferenceFile
	Caller       domain.Caller
}

// GenerationMetadata is echoed to the client and stored with the document.
type GenerationMetadata struct {
	Timestamp      time.Time           `json:"timestamp"`
	Model          string              `json:"modelo"`
	Tokens         int                 `json:"tokens"`
	TokensIn       int                 `json:"tokens_entrada"`
	TokensOut      int                 `json:"tokens_salida"`
	CostUSD        string              `json:"costo_usd"`
	DurationMs     int64               `json:"duracion_ms"`
	DocumentType   domain.DocumentType `json:"tipo_documento"`
	ProcessedFiles int                 `json:"archivos_procesados"`
	Input          map[string]string   `json:"entrada"`
}

// GenerateOutput is the result of a successful generation.
type GenerateOutput struct {
	ResponseKey string
	Text        string
	DocumentID  *uuid.UUID
	Saved       bool
	Metadata    GenerationMetadata
}

// GenerationService runs one generation request end to end.
type GenerationService interface {
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)
}

type generationService struct {
	invoker     port.LLMInvoker
	accountant  *accounting.Accountant
	composer    *signature.Composer
	writer      *DocumentWriter
	userConfigs port.UserConfigRepository
	log         *zap.Logger
	now         func() time.Time
}

// NewGenerationService creates a new GenerationService. userConfigs may be nil,
// in which case stored attribution preferences are not consulted.
func NewGenerationService(
	invoker port.LLMInvoker,
	accountant *accounting.Accountant,
	composer *signature.Composer,
	writer *DocumentWriter,
	userConfigs port.UserConfigRepository,
	log *zap.Logger,
) GenerationService {
	return &generationService{
		invoker:     invoker,
		accountant:  accountant,
		composer:    composer,
		writer:      writer,
		userConfigs: userConfigs,
		log:         logger.OrNop(log),
		now:         time.Now,
	}
}

func (s *generationService) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	spec, ok := prompt.Lookup(input.DocumentType)
	if !ok {
		return nil, domain.ErrUnknownDocumentType
	}
	docType := string(spec.Type)

	if missing := spec.MissingFields(input.Fields); len(missing) > 0 {
		observability.GenerationsTotal.WithLabelValues(docType, observability.OutcomeValidation).Inc()
		return nil, &domain.ValidationError{Fields: missing}
	}

	caller, sign := s.resolveCaller(ctx, input)

	req := &domain.GenerationRequest{
		DocumentType: spec.Type,
		Fields:       input.Fields,
		Files:        input.Files,
		Caller:       caller,
	}
	p := prompt.Assemble(spec, req)

	result, duration, err := s.invoke(ctx, spec, p)
	if err != nil {
		observability.GenerationsTotal.WithLabelValues(docType, outcomeFor(err)).Inc()
		s.log.Warn("generation failed",
			zap.String("document_type", docType),
			zap.String("provider", s.invoker.Provider()),
			zap.Error(err))
		return nil, err
	}

	usage := s.accountant.Account(result.Model, result.TokensIn, result.TokensOut, duration)

	text := result.Text
	if sign {
		text = s.composer.Compose(text, caller)
	}

	meta := GenerationMetadata{
		Timestamp:      s.now().UTC(),
		Model:          result.Model,
		Tokens:         usage.TokensTotal,
		TokensIn:       usage.TokensIn,
		TokensOut:      usage.TokensOut,
		CostUSD:        accounting.FormatUSD(usage.CostUSD),
		DurationMs:     usage.DurationMs,
		DocumentType:   spec.Type,
		ProcessedFiles: prompt.ProcessedFiles(input.Files),
		Input:          spec.Summary(input.Fields),
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		metaJSON = json.RawMessage(`{}`)
	}

	doc := &domain.Document{
		OwnerID:      input.OwnerID,
		DocumentType: spec.Type,
		Title:        spec.Title(input.Fields),
		Body:         text,
		Metadata:     metaJSON,
		State:        domain.DocumentStateDraft,
	}
	tx := &domain.UsageTransaction{
		OwnerID:      input.OwnerID,
		Agent:        spec.Type,
		Model:        result.Model,
		TokensIn:     usage.TokensIn,
		TokensOut:    usage.TokensOut,
		TokensTotal:  usage.TokensTotal,
		CostEstimate: usage.CostUSD,
		DurationMs:   usage.DurationMs,
		Status:       domain.TransactionStatusSuccess,
	}
	written := s.writer.Write(ctx, doc, tx)

	observability.GenerationsTotal.WithLabelValues(docType, observability.OutcomeSuccess).Inc()
	observability.TokensTotal.WithLabelValues(docType, "in").Add(float64(usage.TokensIn))
	observability.TokensTotal.WithLabelValues(docType, "out").Add(float64(usage.TokensOut))
	observability.CostUSDTotal.WithLabelValues(docType).Add(usage.CostUSD)

	s.log.Info("document generated",
		zap.String("document_type", docType),
		zap.String("model", result.Model),
		zap.Int("tokens_total", usage.TokensTotal),
		zap.Int64("duration_ms", usage.DurationMs),
		zap.Bool("saved", written.Saved))

	return &GenerateOutput{
		ResponseKey: spec.ResponseKey,
		Text:        text,
		DocumentID:  written.DocumentID,
		Saved:       written.Saved,
		Metadata:    meta,
	}, nil
}

// invoke makes the single LLM call and measures its wall-clock duration.
func (s *generationService) invoke(ctx context.Context, spec *prompt.DocumentTypeSpec, p domain.Prompt) (*domain.GenerationResult, time.Duration, error) {
	ctx, span := observability.Tracer().Start(ctx, "llm.invoke")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", s.invoker.Provider()),
		attribute.String("document.type", string(spec.Type)),
		attribute.Int("llm.max_tokens", spec.MaxTokens),
		attribute.Float64("llm.temperature", spec.Temperature),
	)

	start := time.Now()
	result, err := s.invoker.Invoke(ctx, port.InvokeInput{
		Prompt:      p,
		Model:       spec.Model,
		Temperature: spec.Temperature,
		MaxTokens:   spec.MaxTokens,
	})
	duration := time.Since(start)
	observability.LLMDuration.WithLabelValues(string(spec.Type)).Observe(duration.Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "llm call failed")
		return nil, duration, err
	}
	span.SetAttributes(
		attribute.String("llm.model", result.Model),
		attribute.Int("llm.tokens_in", result.TokensIn),
		attribute.Int("llm.tokens_out", result.TokensOut),
	)
	return result, duration, nil
}

// resolveCaller fills attribution gaps from the stored user configuration.
// The second result is false when the user disabled the signature.
func (s *generationService) resolveCaller(ctx context.Context, input *GenerateInput) (domain.Caller, bool) {
	caller := domain.Caller{
		Name: strings.TrimSpace(input.Caller.Name),
		Role: strings.TrimSpace(input.Caller.Role),
	}
	if s.userConfigs == nil {
		return caller, true
	}

	cfg, err := s.userConfigs.Get(ctx, input.OwnerID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("user config lookup failed", zap.String("owner_id", input.OwnerID.String()), zap.Error(err))
		}
		return caller, true
	}
	if caller.Name == "" {
		caller.Name = strings.TrimSpace(cfg.DisplayName)
	}
	if caller.Role == "" {
		caller.Role = strings.TrimSpace(cfg.Role)
	}
	return caller, cfg.SignatureEnabled
}

func outcomeFor(err error) string {
	var (
		cfgErr *domain.ConfigurationError
		upErr  *domain.UpstreamError
		trErr  *domain.TransportError
	)
	switch {
	case errors.As(err, &cfgErr):
		return observability.OutcomeConfig
	case errors.As(err, &upErr):
		return observability.OutcomeUpstream
	case errors.As(err, &trErr):
		return observability.OutcomeTransport
	default:
		return observability.OutcomeUnknown
	}
}
