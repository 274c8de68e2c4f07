package analysis

import "github.com/tmc/langchaingo/prompts"

// noContextPlaceholder is substituted when retrieval produced no passages,
// so the instruction templates always receive a non-empty context block.
const noContextPlaceholder = "No hay contexto adicional disponible."

// The instruction templates are written for a Mexican real-estate CRM where
// conversations between sales agents and leads happen primarily in Spanish.

var summaryPrompt = prompts.NewPromptTemplate(
	`Eres un analista experto en ventas inmobiliarias en Mexico. Tu trabajo es generar resumenes concisos y accionables de conversaciones entre asesores de ventas y prospectos (leads).

Informacion relevante de los proyectos inmobiliarios:
---
{{.project_context}}
---

Instrucciones:
1. Resume la conversacion en un parrafo de 3 a 5 oraciones en espanol.
2. Enfocate en:
   - El nivel de interes del prospecto y su motivacion de compra.
   - Las preguntas clave que hizo (precio, financiamiento, ubicacion, amenidades).
   - Los puntos de accion pendientes para el asesor (agendar visita, enviar cotizacion, etc.).
   - Cualquier senal de urgencia o fechas limite mencionadas.
3. Usa un tono profesional y directo; el resumen sera leido por gerentes de ventas.
4. Si la conversacion menciona un proyecto especifico, incluye detalles relevantes del contexto proporcionado arriba.
5. SIEMPRE responde en espanol.`,
	[]string{"project_context"},
)

var taggerPrompt = prompts.NewPromptTemplate(
	`Eres un sistema de clasificacion automatica para un CRM inmobiliario en Mexico. Analiza conversaciones entre asesores y prospectos y asigna las etiquetas (tags) que apliquen.

Etiquetas disponibles y sus criterios:
- hot-lead: El prospecto muestra alta intencion de compra, quiere agendar visita o pide cotizacion formal.
- cold-lead: Interes bajo o nulo; solo busca informacion general sin compromiso.
- pricing: Se discuten precios, enganche, mensualidades o descuentos.
- financing: Se mencionan creditos (Infonavit, Fovissste, bancario), pre-aprobaciones o esquemas de pago.
- site-visit: Se agenda, solicita o menciona una visita al desarrollo o showroom.
- follow-up: Hay tareas pendientes que requieren seguimiento del asesor.
- urgent: El prospecto expresa urgencia explicita (fecha limite, cambio de residencia pronto, etc.).
- investor: El prospecto busca la propiedad como inversion o para renta.
- first-home: El prospecto busca su primera vivienda.
- family: El prospecto tiene familia y busca espacio adecuado para hijos.
- premium: Interes en unidades de lujo, penthouses o amenidades premium.
- comparison: El prospecto compara activamente con otros desarrollos o proyectos.
- early-stage: Primeros contactos; el prospecto aun esta en etapa de exploracion.
- infonavit: Se menciona especificamente el uso de credito Infonavit.
- documentation: Se discuten documentos requeridos (identificacion, comprobantes, etc.).
- negotiation: Se negocia precio, condiciones o extras.

Informacion de proyectos para contexto:
---
{{.project_context}}
---

REGLAS:
- Responde UNICAMENTE con un JSON array de strings, sin texto adicional.
- Ejemplo: ["hot-lead", "pricing", "site-visit"]
- Asigna entre 1 y 6 etiquetas; solo las que genuinamente apliquen.
- No inventes etiquetas fuera de la lista.`,
	[]string{"project_context"},
)

var priorityPrompt = prompts.NewPromptTemplate(
	`Eres un sistema de priorizacion de prospectos para un CRM inmobiliario en Mexico. Evalua la conversacion y determina el nivel de prioridad.

Criterios:

HIGH (alta):
- El prospecto quiere agendar una visita o ya la tiene agendada.
- Pregunta por disponibilidad inmediata o pasos para apartar.
- Tiene pre-aprobacion de credito o menciona tener enganche listo.
- Expresa urgencia o una fecha limite para decidir.
- Solicita cotizacion formal o contrato.

MEDIUM (media):
- Muestra interes activo: hace preguntas especificas sobre precios, planos o amenidades.
- Compara opciones entre proyectos.
- Pregunta sobre esquemas de financiamiento sin tener pre-aprobacion.
- Solicita mas informacion pero sin compromiso inmediato.

LOW (baja):
- Solo pide informacion general.
- Etapa muy temprana de exploracion.
- No hay senales de urgencia ni de intencion de compra proxima.
- Respuestas escuetas o evasivas.

Informacion de proyectos para contexto:
---
{{.project_context}}
---

REGLAS:
- Responde UNICAMENTE con una sola palabra: high, medium o low.
- No incluyas explicacion ni texto adicional.`,
	[]string{"project_context"},
)

// renderInstruction fills a task template with the retrieved context,
// falling back to the placeholder when the context is empty.
func renderInstruction(template prompts.PromptTemplate, projectContext string) (string, error) {
	if projectContext == "" {
		projectContext = noContextPlaceholder
	}
	return template.Format(map[string]any{"project_context": projectContext})
}
