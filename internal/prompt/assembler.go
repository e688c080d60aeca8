package prompt

import (
	"strconv"
	"strings"

	"munidocs/internal/domain"
)

const referenceHeader = "DOCUMENTOS DE REFERENCIA:"

// Assemble builds the prompt for req. It is a pure function of its inputs.
func Assemble(spec *DocumentTypeSpec, req *domain.GenerationRequest) domain.Prompt {
	var b strings.Builder

	b.WriteString("Genera un documento de tipo \"")
	b.WriteString(spec.DisplayName)
	b.WriteString("\" con la siguiente información:\n\n")

	for _, f := range spec.Fields {
		if f.List {
			continue
		}
		v := strings.TrimSpace(req.Fields[f.Key])
		if v == "" {
			continue
		}
		b.WriteString(f.Label)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteByte('\n')
	}

	for _, f := range spec.Fields {
		if !f.List {
			continue
		}
		items := SplitList(req.Fields[f.Key])
		if len(items) == 0 {
			continue
		}
		b.WriteByte('\n')
		b.WriteString(f.Label)
		b.WriteString(":\n")
		for i, item := range items {
			b.WriteString(strconv.Itoa(i + 1))
			b.WriteString(". ")
			b.WriteString(item)
			b.WriteByte('\n')
		}
	}

	if refs := referenceBlock(spec.Inclusion, req.Files); refs != "" {
		b.WriteByte('\n')
		b.WriteString(refs)
	}

	b.WriteString("\nRedacta el documento siguiendo estrictamente la estructura y las reglas indicadas.")

	return domain.Prompt{
		SystemText: spec.SystemPrompt,
		UserText:   b.String(),
	}
}

// SplitList splits a comma-separated value into trimmed, non-empty items.
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// referenceBlock renders the reference documents section, or "" when no
// file carries text.
func referenceBlock(policy FileInclusionPolicy, files []domain.ReferenceFile) string {
	var b strings.Builder
	for _, f := range files {
		text := strings.TrimSpace(f.Text())
		if text == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(referenceHeader)
			b.WriteByte('\n')
		}
		b.WriteString("\n--- Documento: ")
		b.WriteString(f.Name)
		b.WriteString(" ---\n")
		b.WriteString(policy.Apply(text))
		b.WriteByte('\n')
	}
	return b.String()
}

// ProcessedFiles counts the files whose text made it into the prompt.
func ProcessedFiles(files []domain.ReferenceFile) int {
	n := 0
	for _, f := range files {
		if strings.TrimSpace(f.Text()) != "" {
			n++
		}
	}
	return n
}
