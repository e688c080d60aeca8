package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"munidocs/internal/domain"
	"munidocs/internal/prompt"
)

func strPtr(s string) *string { return &s }

func memorandoRequest() *domain.GenerationRequest {
	return &domain.GenerationRequest{
		DocumentType: domain.DocumentTypeMemorando,
		Fields: map[string]string{
			"para":      "Jefa de Finanzas",
			"de":        "Director de Obras",
			"asunto":    "Reprogramación de pagos Q3",
			"contenido": "Se solicita reprogramar los pagos pendientes del tercer trimestre.",
			"copias":    "Alcaldía, Control Interno",
		},
	}
}

func mustLookup(t *testing.T, dt domain.DocumentType) *prompt.DocumentTypeSpec {
	t.Helper()
	spec, ok := prompt.Lookup(dt)
	require.True(t, ok, "type %s not registered", dt)
	return spec
}

// --- Registry ---

func TestRegistry_AllTypesRegistered(t *testing.T) {
	types := prompt.Types()
	assert.Equal(t, []domain.DocumentType{
		domain.DocumentTypeOficio,
		domain.DocumentTypeMemorando,
		domain.DocumentTypeCarta,
		domain.DocumentTypeMinuta,
		domain.DocumentTypeResumenExpediente,
		domain.DocumentTypeAnalisisInversion,
	}, types)
}

func TestRegistry_GenerationParametersWithinObservedRanges(t *testing.T) {
	for _, spec := range prompt.Specs() {
		assert.GreaterOrEqual(t, spec.Temperature, 0.3, spec.Type)
		assert.LessOrEqual(t, spec.Temperature, 0.7, spec.Type)
		assert.GreaterOrEqual(t, spec.MaxTokens, 3000, spec.Type)
		assert.LessOrEqual(t, spec.MaxTokens, 4500, spec.Type)
		assert.NotEmpty(t, spec.SystemPrompt, spec.Type)
		assert.NotEmpty(t, spec.RequiredFields(), spec.Type)
		assert.Contains(t, []string{"documento", "resumen", "analisis"}, spec.ResponseKey, spec.Type)
		assert.Contains(t, spec.RequiredFields(), spec.TitleField, spec.Type)
	}
}

func TestRegistry_InclusionPolicies(t *testing.T) {
	assert.Equal(t, prompt.InclusionFull, mustLookup(t, domain.DocumentTypeResumenExpediente).Inclusion.Mode)
	for _, dt := range []domain.DocumentType{
		domain.DocumentTypeOficio,
		domain.DocumentTypeMemorando,
		domain.DocumentTypeCarta,
		domain.DocumentTypeMinuta,
		domain.DocumentTypeAnalisisInversion,
	} {
		inc := mustLookup(t, dt).Inclusion
		assert.Equal(t, prompt.InclusionExcerpt, inc.Mode, dt)
		assert.Equal(t, prompt.DefaultExcerptChars, inc.MaxChars, dt)
	}
}

func TestRegistry_MinutaSystemPromptEnumeratesSectionsInOrder(t *testing.T) {
	sys := mustLookup(t, domain.DocumentTypeMinuta).SystemPrompt
	sections := []string{"ENCABEZADO", "ASISTENTES", "AGENDA", "DESARROLLO", "ACUERDOS", "CIERRE"}
	last := -1
	for _, s := range sections {
		idx := strings.Index(sys, s)
		require.NotEqual(t, -1, idx, s)
		assert.Greater(t, idx, last, s)
		last = idx
	}
	assert.Contains(t, sys, "Responsable")
	assert.Contains(t, sys, "Plazo")
	assert.Contains(t, sys, "tercera persona")
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := prompt.Lookup("contrato")
	assert.False(t, ok)
}

func TestMissingFields(t *testing.T) {
	spec := mustLookup(t, domain.DocumentTypeMemorando)

	missing := spec.MissingFields(map[string]string{
		"para":      "A",
		"de":        "B",
		"asunto":    "   ",
		"contenido": "",
	})

	assert.Equal(t, []string{"asunto", "contenido"}, missing)
	assert.Empty(t, spec.MissingFields(memorandoRequest().Fields))
}

func TestMissingFields_ListWithoutItems(t *testing.T) {
	spec := mustLookup(t, domain.DocumentTypeMinuta)
	fields := map[string]string{
		"titulo_reunion": "Comité de obras",
		"fecha":          "2024-05-10",
		"lugar":          "Sala de sesiones",
		"participantes":  " , ",
		"temas":          ",",
	}

	assert.Equal(t, []string{"participantes", "temas"}, spec.MissingFields(fields))

	fields["participantes"] = "Ana Pérez, , Luis Soto"
	fields["temas"] = "Presupuesto"
	assert.Empty(t, spec.MissingFields(fields))
}

func TestTitleAndSummary(t *testing.T) {
	spec := mustLookup(t, domain.DocumentTypeMemorando)
	fields := memorandoRequest().Fields

	assert.Equal(t, "Memorando - Reprogramación de pagos Q3", spec.Title(fields))
	assert.Equal(t, "Memorando", spec.Title(map[string]string{}))
	assert.Equal(t, map[string]string{
		"para":   "Jefa de Finanzas",
		"de":     "Director de Obras",
		"asunto": "Reprogramación de pagos Q3",
	}, spec.Summary(fields))
}

// --- Assemble ---

func TestAssemble_IsDeterministic(t *testing.T) {
	spec := mustLookup(t, domain.DocumentTypeMemorando)
	req := memorandoRequest()
	req.Files = []domain.ReferenceFile{{Name: "informe.pdf", TextContent: strPtr("Informe de pagos")}}

	first := prompt.Assemble(spec, req)
	second := prompt.Assemble(spec, req)

	assert.Equal(t, first, second)
	assert.Equal(t, spec.SystemPrompt, first.SystemText)
}

func TestAssemble_RequiredValuesAppearVerbatimOnce(t *testing.T) {
	for _, spec := range prompt.Specs() {
		spec := spec
		fields := map[string]string{}
		for i, f := range spec.Fields {
			if f.Required && !f.List {
				fields[f.Key] = "valor-unico-" + f.Key + "-" + string(rune('a'+i))
			}
		}
		for _, f := range spec.Fields {
			if f.Required && f.List {
				fields[f.Key] = "elemento-" + f.Key
			}
		}
		p := prompt.Assemble(&spec, &domain.GenerationRequest{DocumentType: spec.Type, Fields: fields})

		for key, v := range fields {
			assert.Equal(t, 1, strings.Count(p.UserText, v), "%s/%s", spec.Type, key)
		}
	}
}

func TestAssemble_LabelsInDeclarationOrder(t *testing.T) {
	spec := mustLookup(t, domain.DocumentTypeMemorando)
	p := prompt.Assemble(spec, memorandoRequest())

	order := []string{"Para: ", "De: ", "Asunto: ", "Contenido: "}
	last := -1
	for _, label := range order {
		idx := strings.Index(p.UserText, label)
		require.NotEqual(t, -1, idx, label)
		assert.Greater(t, idx, last, label)
		last = idx
	}
}

func TestAssemble_ListFieldsAreEnumerated(t *testing.T) {
	spec := mustLookup(t, domain.DocumentTypeMinuta)
	req := &domain.GenerationRequest{
		DocumentType: domain.DocumentTypeMinuta,
		Fields: map[string]string{
			"titulo_reunion": "Comité de emergencia",
			"fecha":          "2024-05-10",
			"lugar":          "Sala de concejo",
			"participantes":  " Ana Pérez ,Luis Soto,, Carla Díaz ",
			"temas":          "Plan invierno",
		},
	}

	p := prompt.Assemble(spec, req)

	assert.Contains(t, p.UserText, "Participantes:\n1. Ana Pérez\n2. Luis Soto\n3. Carla Díaz\n")
	assert.Contains(t, p.UserText, "Temas de la agenda:\n1. Plan invierno\n")
}

func TestAssemble_OmitsReferenceBlockWithoutText(t *testing.T) {
	spec := mustLookup(t, domain.DocumentTypeMemorando)
	req := memorandoRequest()
	req.Files = []domain.ReferenceFile{
		{Name: "vacio.pdf"},
		{Name: "blanco.docx", TextContent: strPtr("   \n")},
	}

	p := prompt.Assemble(spec, req)

	assert.NotContains(t, p.UserText, "DOCUMENTOS DE REFERENCIA")
	assert.NotContains(t, p.UserText, "vacio.pdf")
}

func TestAssemble_ExcerptInclusionTruncates(t *testing.T) {
	spec := mustLookup(t, domain.DocumentTypeOficio)
	long := strings.Repeat("a", 1000) + strings.Repeat("Z", 500)
	req := &domain.GenerationRequest{
		DocumentType: domain.DocumentTypeOficio,
		Fields: map[string]string{
			"destinatario":       "Gobernador Regional",
			"cargo_destinatario": "Gobernador",
			"asunto":             "Solicitud de fondos",
			"contenido":          "Se solicitan fondos",
		},
		Files: []domain.ReferenceFile{{Name: "base.txt", TextContent: strPtr(long)}},
	}

	p := prompt.Assemble(spec, req)

	assert.Contains(t, p.UserText, "--- Documento: base.txt ---\n"+strings.Repeat("a", 1000)+"\n")
	assert.NotContains(t, p.UserText, "Z")
}

func TestAssemble_FullInclusionKeepsWholeText(t *testing.T) {
	spec := mustLookup(t, domain.DocumentTypeResumenExpediente)
	long := strings.Repeat("b", 3000) + "FIN"
	req := &domain.GenerationRequest{
		DocumentType: domain.DocumentTypeResumenExpediente,
		Fields: map[string]string{
			"numero_expediente": "EXP-2024-001",
			"tipo_expediente":   "Sumario administrativo",
			"materia":           "Licencias de construcción",
		},
		Files: []domain.ReferenceFile{{Name: "expediente.pdf", TextContent: strPtr(long)}},
	}

	p := prompt.Assemble(spec, req)

	assert.Contains(t, p.UserText, long)
}

func TestFileInclusionPolicy_CountsRunes(t *testing.T) {
	policy := prompt.FileInclusionPolicy{Mode: prompt.InclusionExcerpt, MaxChars: 3}
	assert.Equal(t, "ñáé", policy.Apply("ñáéíó"))
	assert.Equal(t, "ab", policy.Apply("ab"))
}

func TestProcessedFiles(t *testing.T) {
	files := []domain.ReferenceFile{
		{Name: "a", TextContent: strPtr("texto")},
		{Name: "b"},
		{Name: "c", TextContent: strPtr(" ")},
	}
	assert.Equal(t, 1, prompt.ProcessedFiles(files))
}
