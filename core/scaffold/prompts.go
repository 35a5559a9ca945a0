package scaffold

import (
	"fmt"
	"strings"
)

const (
	numObjectives = 4
	numResources  = 3

	objectivesMaxTokens = 256
	activityMaxTokens   = 256
	rubricMaxTokens     = 350
	resourcesMaxTokens  = 256
)

// contextPrompt lists the course context fields that were provided.
func contextPrompt(req Request) string {
	var lines []string
	if req.Carrera != "" {
		lines = append(lines, "Carrera: "+req.Carrera)
	}
	if req.Semestre != "" {
		lines = append(lines, "Semestre: "+req.Semestre)
	}
	if req.Materia != "" {
		lines = append(lines, "Materia o curso: "+req.Materia)
	}
	if req.Tema != "" {
		lines = append(lines, "Tema de clase: "+req.Tema)
	}
	return strings.Join(lines, "\n")
}

func objectivesPrompt(req Request, n int) string {
	return fmt.Sprintf(
		"%s\n\nRedacta %d objetivos de aprendizaje claros, observables y medibles para una actividad titulada '%s' "+
			"con esta descripción: '%s'. Usa frases cortas y verbos de la taxonomía de Bloom. "+
			"Devuélvelos como una lista numerada.",
		contextPrompt(req), n, req.ActivityTitle, req.ActivityDescription,
	)
}

func activityPrompt(req Request) string {
	return fmt.Sprintf(
		"%s\n\nComo experto en didáctica universitaria, diseña una actividad principal para la estrategia pedagógica '%s'. "+
			"La actividad debe estar alineada con el título '%s' y la descripción: '%s'. "+
			"Incluye pasos claros y concretos para estudiantes y docente, y especifica materiales si aplica.",
		contextPrompt(req), req.StrategyID, req.ActivityTitle, req.ActivityDescription,
	)
}

func rubricPrompt(req Request) string {
	return fmt.Sprintf(
		"Genera una rúbrica de evaluación de 3 niveles para una actividad universitaria titulada '%s' "+
			"con esta descripción: '%s'. Los objetivos de aprendizaje son: %s.\n\n"+
			"Sigue este formato:\n"+
			"Nivel 1 (Aprueba): ...\n"+
			"Nivel 2 (Destacado): ...\n"+
			"Nivel 3 (Excelente): ...\n\n"+
			"Sé claro, conciso y específico para cada nivel.",
		req.ActivityTitle, req.ActivityDescription, strings.Join(req.ObjectiveTexts(), ", "),
	)
}

func resourcesPrompt(req Request, n int) string {
	return fmt.Sprintf(
		"%s\n\nSugiere %d recursos de prework (artículos, videos, podcast, libros o cursos online) para una clase sobre '%s'.\n"+
			"Por cada recurso, incluye:\n"+
			"- Título\n- Tipo (paper, video, curso, podcast, libro)\n- URL\n- Breve descripción (1 frase)\n"+
			"Devuélvelos como una lista estructurada con el formato: - Título [tipo] (URL): descripción",
		contextPrompt(req), n, req.ActivityTitle,
	)
}
