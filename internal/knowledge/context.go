package knowledge

import (
	"fmt"
	"strings"
)

// BuildSystemContext renders the document into the system instruction
// string prepended to every completion request. The output is a pure
// function of the document: the same document always produces the same
// bytes. It is computed once at startup and never regenerated.
func BuildSystemContext(doc Document) string {
	var sb strings.Builder

	sb.WriteString("Eres el asistente virtual de admisiones de ")
	sb.WriteString(doc.Institution)
	sb.WriteString(".\n\n")

	sb.WriteString("DATOS INSTITUCIONALES:\n")
	writeFact(&sb, "Teléfono", doc.Phone)
	writeFact(&sb, "Correo", doc.Email)
	writeFact(&sb, "Sitio web", doc.Website)
	writeFact(&sb, "Dirección", doc.Address)

	if len(doc.Programs) > 0 {
		sb.WriteString("\nPROGRAMAS:\n")
		for _, p := range doc.Programs {
			sb.WriteString("- ")
			sb.WriteString(p.Name)
			if p.Duration != "" {
				sb.WriteString(" (duración: " + p.Duration + ")")
			}
			if p.Modality != "" {
				sb.WriteString(" [" + p.Modality + "]")
			}
			sb.WriteString("\n")
		}
	}

	if len(doc.AdmissionSteps) > 0 {
		sb.WriteString("\nPROCESO DE ADMISIÓN:\n")
		for i, step := range doc.AdmissionSteps {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
		}
	}

	if len(doc.Costs) > 0 {
		sb.WriteString("\nCOSTOS:\n")
		for _, c := range doc.Costs {
			sb.WriteString("- " + c.Concept + ": " + c.Amount + "\n")
		}
	}

	sb.WriteString("\nINSTRUCCIONES:\n")
	sb.WriteString("Responde únicamente con la información anterior. ")
	sb.WriteString("Si la respuesta no está en estos datos, dilo claramente y ")
	sb.WriteString("sugiere comunicarse")
	if doc.Phone != "" {
		sb.WriteString(" al teléfono " + doc.Phone)
	} else if doc.Email != "" {
		sb.WriteString(" al correo " + doc.Email)
	} else {
		sb.WriteString(" con la oficina de admisiones")
	}
	sb.WriteString(". Sé breve y cordial.")

	return sb.String()
}

// FallbackReply builds the fixed apology returned whenever the
// completion call fails. This is the single place the failure-to-text
// mapping lives; the relay pipeline never invents other fallback text.
func FallbackReply(doc Document) string {
	if doc.Phone != "" {
		return fmt.Sprintf("Lo siento, en este momento no puedo responder tu consulta. Por favor llámanos al %s y con gusto te atendemos.", doc.Phone)
	}
	return "Lo siento, en este momento no puedo responder tu consulta. Por favor intenta de nuevo más tarde."
}

func writeFact(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	sb.WriteString("- " + label + ": " + value + "\n")
}
