package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"munidocs/internal/accounting"
	"munidocs/internal/domain"
	"munidocs/internal/port"
	"munidocs/internal/service"
	"munidocs/internal/signature"
	"munidocs/mocks"
)

const institution = "Municipalidad de Prueba"

type generationFixture struct {
	svc         service.GenerationService
	invoker     *mocks.MockLLMInvoker
	docRepo     *mocks.MockDocumentRepo
	usageRepo   *mocks.MockUsageRepo
	userConfigs *mocks.MockUserConfigRepo
}

func setupGenerationService() *generationFixture {
	f := &generationFixture{
		invoker:     new(mocks.MockLLMInvoker),
		docRepo:     new(mocks.MockDocumentRepo),
		usageRepo:   new(mocks.MockUsageRepo),
		userConfigs: new(mocks.MockUserConfigRepo),
	}
	writer := service.NewDocumentWriter(f.docRepo, f.usageRepo, nil)
	f.svc = service.NewGenerationService(
		f.invoker,
		accounting.NewAccountant(accounting.DefaultRates, nil),
		signature.NewComposer(institution, "Secretaría Municipal"),
		writer,
		f.userConfigs,
		nil,
	)
	return f
}

func memorandoInput(ownerID uuid.UUID) *service.GenerateInput {
	return &service.GenerateInput{
		OwnerID:      ownerID,
		DocumentType: domain.DocumentTypeMemorando,
		Fields: map[string]string{
			"para":      "Jefa de Finanzas",
			"de":        "Director de Obras",
			"asunto":    "Reprogramación de pagos",
			"contenido": "Se solicita reprogramar pagos.",
		},
		Caller: domain.Caller{Name: "Ana Pérez", Role: "Directora de Obras"},
	}
}

func generated(in, out int) *domain.GenerationResult {
	return &domain.GenerationResult{Text: "MEMORANDO N° ___", TokensIn: in, TokensOut: out, Model: "gpt-4o"}
}

// Scenario A.
func TestGenerate_Success_SavedWithAccounting(t *testing.T) {
	f := setupGenerationService()
	ownerID := uuid.New()

	f.userConfigs.On("Get", mock.Anything, ownerID).Return(nil, domain.ErrNotFound)
	f.invoker.On("Invoke", mock.Anything, mock.MatchedBy(func(in port.InvokeInput) bool {
		return in.Temperature == 0.4 && in.MaxTokens == 3000 &&
			strings.Contains(in.Prompt.UserText, "Asunto: Reprogramación de pagos")
	})).Return(generated(100, 300), nil).Once()

	var savedDoc *domain.Document
	f.docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).
		Run(func(args mock.Arguments) { savedDoc = args.Get(1).(*domain.Document) }).
		Return(nil)
	var savedTx *domain.UsageTransaction
	f.usageRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.UsageTransaction")).
		Run(func(args mock.Arguments) { savedTx = args.Get(1).(*domain.UsageTransaction) }).
		Return(nil)

	out, err := f.svc.Generate(context.Background(), memorandoInput(ownerID))
	require.NoError(t, err)

	assert.True(t, out.Saved)
	require.NotNil(t, out.DocumentID)
	assert.Equal(t, "documento", out.ResponseKey)
	assert.Equal(t, 400, out.Metadata.Tokens)
	assert.Equal(t, accounting.FormatUSD(100*accounting.DefaultRateIn+300*accounting.DefaultRateOut), out.Metadata.CostUSD)
	assert.Equal(t, "0.003250", out.Metadata.CostUSD)
	assert.Equal(t, "gpt-4o", out.Metadata.Model)
	assert.Equal(t, "Reprogramación de pagos", out.Metadata.Input["asunto"])
	assert.True(t, strings.HasSuffix(out.Text, "\n\n---\nAna Pérez\nDirectora de Obras\n"+institution))

	require.NotNil(t, savedDoc)
	assert.Equal(t, ownerID, savedDoc.OwnerID)
	assert.Equal(t, out.Text, savedDoc.Body)
	assert.Equal(t, domain.DocumentStateDraft, savedDoc.State)
	assert.Equal(t, "Memorando - Reprogramación de pagos", savedDoc.Title)
	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal(savedDoc.Metadata, &meta))
	assert.Equal(t, "0.003250", meta["costo_usd"])

	require.NotNil(t, savedTx)
	assert.Equal(t, ownerID, savedTx.OwnerID)
	assert.Equal(t, *out.DocumentID, *savedTx.DocumentID)
	assert.Equal(t, savedTx.TokensIn+savedTx.TokensOut, savedTx.TokensTotal)
	in, outTok := 100.0, 300.0
	assert.Equal(t, in*accounting.DefaultRateIn+outTok*accounting.DefaultRateOut, savedTx.CostEstimate)
	assert.Equal(t, domain.TransactionStatusSuccess, savedTx.Status)
	assert.Equal(t, domain.DocumentTypeMemorando, savedTx.Agent)
}

// Scenario B.
func TestGenerate_MissingField_NoLLMCall(t *testing.T) {
	f := setupGenerationService()
	input := memorandoInput(uuid.New())
	delete(input.Fields, "asunto")

	_, err := f.svc.Generate(context.Background(), input)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"asunto"}, vErr.Fields)
	assert.Contains(t, err.Error(), "asunto")
	f.invoker.AssertNumberOfCalls(t, "Invoke", 0)
	f.docRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.usageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerate_RequiredListWithoutItems_NoLLMCall(t *testing.T) {
	f := setupGenerationService()
	input := &service.GenerateInput{
		OwnerID:      uuid.New(),
		DocumentType: domain.DocumentTypeMinuta,
		Fields: map[string]string{
			"titulo_reunion": "Comité de obras",
			"fecha":          "2024-05-10",
			"lugar":          "Sala de sesiones",
			"participantes":  " , ",
			"temas":          ",",
		},
	}

	_, err := f.svc.Generate(context.Background(), input)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"participantes", "temas"}, vErr.Fields)
	f.invoker.AssertNumberOfCalls(t, "Invoke", 0)
	f.docRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.usageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Scenario C.
func TestGenerate_UpstreamError_NothingPersisted(t *testing.T) {
	f := setupGenerationService()
	ownerID := uuid.New()
	upstream := &domain.UpstreamError{Provider: "openai", StatusCode: 429, Body: `{"error":"rate limit"}`}

	f.userConfigs.On("Get", mock.Anything, ownerID).Return(nil, domain.ErrNotFound)
	f.invoker.On("Invoke", mock.Anything, mock.Anything).Return(nil, upstream).Once()

	out, err := f.svc.Generate(context.Background(), memorandoInput(ownerID))

	assert.Nil(t, out)
	assert.ErrorIs(t, err, upstream)
	f.invoker.AssertNumberOfCalls(t, "Invoke", 1)
	f.docRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.usageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Scenario D.
func TestGenerate_DocumentInsertFails_StillReturnsText(t *testing.T) {
	f := setupGenerationService()
	ownerID := uuid.New()

	f.userConfigs.On("Get", mock.Anything, ownerID).Return(nil, errors.New("connection refused"))
	f.invoker.On("Invoke", mock.Anything, mock.Anything).Return(generated(10, 20), nil)
	f.docRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	f.usageRepo.On("Create", mock.Anything, mock.MatchedBy(func(tx *domain.UsageTransaction) bool {
		return tx.DocumentID == nil && tx.Status == domain.TransactionStatusSuccess && tx.OwnerID == ownerID
	})).Return(errors.New("connection refused")).Once()

	out, err := f.svc.Generate(context.Background(), memorandoInput(ownerID))

	require.NoError(t, err)
	assert.False(t, out.Saved)
	assert.Nil(t, out.DocumentID)
	assert.Contains(t, out.Text, "MEMORANDO N° ___")
	f.usageRepo.AssertExpectations(t)
}

// Scenario E.
func TestGenerate_ExcerptInclusionReachesInvoker(t *testing.T) {
	f := setupGenerationService()
	ownerID := uuid.New()
	long := strings.Repeat("x", 1000) + "COLA-NO-INCLUIDA"
	input := memorandoInput(ownerID)
	input.Files = []domain.ReferenceFile{{Name: "anexo.txt", TextContent: &long}}

	f.userConfigs.On("Get", mock.Anything, ownerID).Return(nil, domain.ErrNotFound)
	f.invoker.On("Invoke", mock.Anything, mock.MatchedBy(func(in port.InvokeInput) bool {
		return strings.Contains(in.Prompt.UserText, "--- Documento: anexo.txt ---") &&
			!strings.Contains(in.Prompt.UserText, "COLA-NO-INCLUIDA")
	})).Return(generated(1, 1), nil).Once()
	f.docRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.usageRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := f.svc.Generate(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, 1, out.Metadata.ProcessedFiles)
	f.invoker.AssertExpectations(t)
}

func TestGenerate_NotIdempotent(t *testing.T) {
	f := setupGenerationService()
	ownerID := uuid.New()

	f.userConfigs.On("Get", mock.Anything, ownerID).Return(nil, domain.ErrNotFound)
	f.invoker.On("Invoke", mock.Anything, mock.Anything).Return(generated(5, 5), nil)
	f.docRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.usageRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	first, err := f.svc.Generate(context.Background(), memorandoInput(ownerID))
	require.NoError(t, err)
	second, err := f.svc.Generate(context.Background(), memorandoInput(ownerID))
	require.NoError(t, err)

	assert.NotEqual(t, *first.DocumentID, *second.DocumentID)
	f.invoker.AssertNumberOfCalls(t, "Invoke", 2)
	f.usageRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestGenerate_ConfigurationError(t *testing.T) {
	f := setupGenerationService()
	ownerID := uuid.New()

	f.userConfigs.On("Get", mock.Anything, ownerID).Return(nil, domain.ErrNotFound)
	f.invoker.On("Invoke", mock.Anything, mock.Anything).
		Return(nil, &domain.ConfigurationError{Key: "MUNIDOCS_LLM_API_KEY"})

	_, err := f.svc.Generate(context.Background(), memorandoInput(ownerID))

	var cfgErr *domain.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	f.docRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerate_UnknownType(t *testing.T) {
	f := setupGenerationService()

	_, err := f.svc.Generate(context.Background(), &service.GenerateInput{DocumentType: "contrato"})

	assert.ErrorIs(t, err, domain.ErrUnknownDocumentType)
	f.invoker.AssertNumberOfCalls(t, "Invoke", 0)
}

func TestGenerate_NoCallerName_TextUnsigned(t *testing.T) {
	f := setupGenerationService()
	ownerID := uuid.New()
	input := memorandoInput(ownerID)
	input.Caller = domain.Caller{}

	f.userConfigs.On("Get", mock.Anything, ownerID).Return(nil, domain.ErrNotFound)
	f.invoker.On("Invoke", mock.Anything, mock.Anything).Return(generated(1, 1), nil)
	f.docRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.usageRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := f.svc.Generate(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "MEMORANDO N° ___", out.Text)
}

func TestGenerate_CallerFallsBackToStoredConfig(t *testing.T) {
	f := setupGenerationService()
	ownerID := uuid.New()
	input := memorandoInput(ownerID)
	input.Caller = domain.Caller{}

	f.userConfigs.On("Get", mock.Anything, ownerID).Return(&domain.UserConfig{
		UserID: ownerID, DisplayName: "Luis Soto", Role: "Jefe de Gabinete", SignatureEnabled: true,
	}, nil)
	f.invoker.On("Invoke", mock.Anything, mock.Anything).Return(generated(1, 1), nil)
	f.docRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.usageRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := f.svc.Generate(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out.Text, "\n\n---\nLuis Soto\nJefe de Gabinete\n"+institution))
}

func TestGenerate_SignatureDisabled(t *testing.T) {
	f := setupGenerationService()
	ownerID := uuid.New()

	f.userConfigs.On("Get", mock.Anything, ownerID).Return(&domain.UserConfig{UserID: ownerID, SignatureEnabled: false}, nil)
	f.invoker.On("Invoke", mock.Anything, mock.Anything).Return(generated(1, 1), nil)
	f.docRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.usageRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := f.svc.Generate(context.Background(), memorandoInput(ownerID))

	require.NoError(t, err)
	assert.Equal(t, "MEMORANDO N° ___", out.Text)
}

func TestGenerate_TypeParametersPassedToInvoker(t *testing.T) {
	f := setupGenerationService()
	ownerID := uuid.New()

	f.userConfigs.On("Get", mock.Anything, ownerID).Return(nil, domain.ErrNotFound)
	f.invoker.On("Invoke", mock.Anything, mock.MatchedBy(func(in port.InvokeInput) bool {
		return in.Temperature == 0.3 && in.MaxTokens == 4500
	})).Return(generated(1, 1), nil).Once()
	f.docRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.usageRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := f.svc.Generate(context.Background(), &service.GenerateInput{
		OwnerID:      ownerID,
		DocumentType: domain.DocumentTypeResumenExpediente,
		Fields: map[string]string{
			"numero_expediente": "EXP-1",
			"tipo_expediente":   "Sumario",
			"materia":           "Permisos",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "resumen", out.ResponseKey)
	f.invoker.AssertExpectations(t)
}
