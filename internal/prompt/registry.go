package prompt

import (
	"strings"

	"munidocs/internal/domain"
)

// InclusionMode selects how reference-file text is folded into the prompt.
type InclusionMode string

const (
	// InclusionFull copies the whole extracted text of each file.
	InclusionFull InclusionMode = "full"
	// InclusionExcerpt copies at most MaxChars characters of each file.
	InclusionExcerpt InclusionMode = "excerpt"
)

// DefaultExcerptChars is the per-file bound used by excerpt inclusion.
const DefaultExcerptChars = 1000

// FileInclusionPolicy bounds the reference text sent per file.
type FileInclusionPolicy struct {
	Mode     InclusionMode
	MaxChars int
}

// Apply returns text cut according to the policy. Cutting counts runes so a
// multi-byte character is never split.
func (p FileInclusionPolicy) Apply(text string) string {
	if p.Mode != InclusionExcerpt || p.MaxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= p.MaxChars {
		return text
	}
	return string(runes[:p.MaxChars])
}

// FieldSpec describes one structured input field.
type FieldSpec struct {
	Key      string
	Label    string
	Required bool
	// List fields hold comma-separated values rendered as a numbered list.
	List bool
}

// DocumentTypeSpec is the fixed configuration of one document type.
type DocumentTypeSpec struct {
	Type         domain.DocumentType
	DisplayName  string
	Fields       []FieldSpec
	SystemPrompt string
	Inclusion    FileInclusionPolicy
	Temperature  float64
	MaxTokens    int
	// Model overrides the configured default model when non-empty.
	Model         string
	ResponseKey   string
	TitlePrefix   string
	TitleField    string
	SummaryFields []string
}

// RequiredFields returns the keys of the required fields in declaration order.
func (s *DocumentTypeSpec) RequiredFields() []string {
	var out []string
	for _, f := range s.Fields {
		if f.Required {
			out = append(out, f.Key)
		}
	}
	return out
}

// MissingFields returns the required fields that are absent or blank, in
// declaration order. A list field with no non-blank item counts as blank.
func (s *DocumentTypeSpec) MissingFields(fields map[string]string) []string {
	var missing []string
	for _, f := range s.Fields {
		if !f.Required {
			continue
		}
		v := fields[f.Key]
		if f.List {
			if len(SplitList(v)) == 0 {
				missing = append(missing, f.Key)
			}
			continue
		}
		if strings.TrimSpace(v) == "" {
			missing = append(missing, f.Key)
		}
	}
	return missing
}

// Title derives the document title from the request fields.
func (s *DocumentTypeSpec) Title(fields map[string]string) string {
	v := strings.TrimSpace(fields[s.TitleField])
	if v == "" {
		return s.TitlePrefix
	}
	return s.TitlePrefix + " - " + v
}

// Summary returns the input-summary subset of fields echoed in response
// metadata. Absent fields are skipped.
func (s *DocumentTypeSpec) Summary(fields map[string]string) map[string]string {
	out := make(map[string]string, len(s.SummaryFields))
	for _, k := range s.SummaryFields {
		if v := strings.TrimSpace(fields[k]); v != "" {
			out[k] = v
		}
	}
	return out
}

var excerpt = FileInclusionPolicy{Mode: InclusionExcerpt, MaxChars: DefaultExcerptChars}

// registry is ordered; Types returns this order.
var registry = []DocumentTypeSpec{
	{
		Type:        domain.DocumentTypeOficio,
		DisplayName: "Oficio",
		Fields: []FieldSpec{
			{Key: "numero_oficio", Label: "Número de oficio"},
			{Key: "fecha", Label: "Fecha"},
			{Key: "destinatario", Label: "Destinatario", Required: true},
			{Key: "cargo_destinatario", Label: "Cargo del destinatario", Required: true},
			{Key: "institucion_destinataria", Label: "Institución destinataria"},
			{Key: "asunto", Label: "Asunto", Required: true},
			{Key: "referencia", Label: "Referencia"},
			{Key: "contenido", Label: "Contenido principal", Required: true},
			{Key: "anexos", Label: "Anexos", List: true},
		},
		SystemPrompt:  oficioSystemPrompt,
		Inclusion:     excerpt,
		Temperature:   0.4,
		MaxTokens:     3000,
		ResponseKey:   "documento",
		TitlePrefix:   "Oficio",
		TitleField:    "asunto",
		SummaryFields: []string{"destinatario", "asunto"},
	},
	{
		Type:        domain.DocumentTypeMemorando,
		DisplayName: "Memorando",
		Fields: []FieldSpec{
			{Key: "numero_memorando", Label: "Número de memorando"},
			{Key: "fecha", Label: "Fecha"},
			{Key: "para", Label: "Para", Required: true},
			{Key: "de", Label: "De", Required: true},
			{Key: "asunto", Label: "Asunto", Required: true},
			{Key: "prioridad", Label: "Prioridad"},
			{Key: "contenido", Label: "Contenido", Required: true},
			{Key: "copias", Label: "Con copia a", List: true},
		},
		SystemPrompt:  memorandoSystemPrompt,
		Inclusion:     excerpt,
		Temperature:   0.4,
		MaxTokens:     3000,
		ResponseKey:   "documento",
		TitlePrefix:   "Memorando",
		TitleField:    "asunto",
		SummaryFields: []string{"para", "de", "asunto"},
	},
	{
		Type:        domain.DocumentTypeCarta,
		DisplayName: "Carta",
		Fields: []FieldSpec{
			{Key: "fecha", Label: "Fecha"},
			{Key: "destinatario", Label: "Destinatario", Required: true},
			{Key: "cargo_destinatario", Label: "Cargo del destinatario"},
			{Key: "institucion_destinataria", Label: "Institución destinataria"},
			{Key: "tipo_carta", Label: "Tipo de carta"},
			{Key: "tono", Label: "Tono"},
			{Key: "asunto", Label: "Asunto", Required: true},
			{Key: "contenido", Label: "Contenido", Required: true},
		},
		SystemPrompt:  cartaSystemPrompt,
		Inclusion:     excerpt,
		Temperature:   0.7,
		MaxTokens:     3000,
		ResponseKey:   "documento",
		TitlePrefix:   "Carta",
		TitleField:    "asunto",
		SummaryFields: []string{"destinatario", "asunto", "tipo_carta"},
	},
	{
		Type:        domain.DocumentTypeMinuta,
		DisplayName: "Minuta de reunión",
		Fields: []FieldSpec{
			{Key: "titulo_reunion", Label: "Título de la reunión", Required: true},
			{Key: "fecha", Label: "Fecha", Required: true},
			{Key: "hora_inicio", Label: "Hora de inicio"},
			{Key: "hora_fin", Label: "Hora de término"},
			{Key: "lugar", Label: "Lugar", Required: true},
			{Key: "convocante", Label: "Convocada por"},
			{Key: "participantes", Label: "Participantes", Required: true, List: true},
			{Key: "temas", Label: "Temas de la agenda", Required: true, List: true},
			{Key: "desarrollo", Label: "Notas del desarrollo"},
			{Key: "acuerdos", Label: "Acuerdos preliminares"},
		},
		SystemPrompt:  minutaSystemPrompt,
		Inclusion:     excerpt,
		Temperature:   0.3,
		MaxTokens:     4000,
		ResponseKey:   "documento",
		TitlePrefix:   "Minuta",
		TitleField:    "titulo_reunion",
		SummaryFields: []string{"titulo_reunion", "fecha", "lugar"},
	},
	{
		Type:        domain.DocumentTypeResumenExpediente,
		DisplayName: "Resumen de expediente",
		Fields: []FieldSpec{
			{Key: "numero_expediente", Label: "Número de expediente", Required: true},
			{Key: "tipo_expediente", Label: "Tipo de expediente", Required: true},
			{Key: "materia", Label: "Materia", Required: true},
			{Key: "partes", Label: "Partes involucradas", List: true},
			{Key: "fecha_inicio", Label: "Fecha de inicio"},
			{Key: "estado_procesal", Label: "Estado procesal"},
			{Key: "observaciones", Label: "Observaciones"},
		},
		SystemPrompt: resumenExpedienteSystemPrompt,
		// The attached files are the case file itself; cutting them would
		// drop the facts being summarized.
		Inclusion:     FileInclusionPolicy{Mode: InclusionFull},
		Temperature:   0.3,
		MaxTokens:     4500,
		ResponseKey:   "resumen",
		TitlePrefix:   "Resumen de expediente",
		TitleField:    "numero_expediente",
		SummaryFields: []string{"numero_expediente", "tipo_expediente", "materia"},
	},
	{
		Type:        domain.DocumentTypeAnalisisInversion,
		DisplayName: "Análisis de inversión",
		Fields: []FieldSpec{
			{Key: "nombre_proyecto", Label: "Nombre del proyecto", Required: true},
			{Key: "monto_inversion", Label: "Monto de inversión", Required: true},
			{Key: "moneda", Label: "Moneda"},
			{Key: "sector", Label: "Sector", Required: true},
			{Key: "ubicacion", Label: "Ubicación"},
			{Key: "plazo_meses", Label: "Plazo de ejecución (meses)"},
			{Key: "fuente_financiamiento", Label: "Fuente de financiamiento"},
			{Key: "beneficiarios", Label: "Beneficiarios estimados"},
			{Key: "tasa_descuento", Label: "Tasa de descuento"},
			{Key: "descripcion", Label: "Descripción del proyecto", Required: true},
			{Key: "riesgos", Label: "Riesgos identificados", List: true},
		},
		SystemPrompt:  analisisInversionSystemPrompt,
		Inclusion:     excerpt,
		Temperature:   0.5,
		MaxTokens:     4500,
		ResponseKey:   "analisis",
		TitlePrefix:   "Análisis de inversión",
		TitleField:    "nombre_proyecto",
		SummaryFields: []string{"nombre_proyecto", "monto_inversion", "sector"},
	},
}

// Lookup returns the configuration registered for t.
func Lookup(t domain.DocumentType) (*DocumentTypeSpec, bool) {
	for i := range registry {
		if registry[i].Type == t {
			s := registry[i]
			return &s, true
		}
	}
	return nil, false
}

// Types returns all registered document types in a stable order.
func Types() []domain.DocumentType {
	out := make([]domain.DocumentType, len(registry))
	for i := range registry {
		out[i] = registry[i].Type
	}
	return out
}

// Specs returns copies of all registered specs in a stable order.
func Specs() []DocumentTypeSpec {
	out := make([]DocumentTypeSpec, len(registry))
	copy(out, registry)
	return out
}
