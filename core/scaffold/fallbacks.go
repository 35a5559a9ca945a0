package scaffold

// Texts served when no generator produced a usable answer.
var (
	defaultObjectives = []string{
		"Analizar conceptos clave del tema.",
		"Aplicar conocimientos en un caso práctico.",
		"Evaluar el impacto de la solución propuesta.",
		"Reflexionar sobre el proceso de aprendizaje.",
	}

	defaultActivity = "Desarrollar una propuesta creativa aplicada al tema.\n" +
		"Resolver ejercicios prácticos relacionados en grupo.\n" +
		"Exponer resultados y reflexionar en clase."

	defaultRubric = "Nivel 1 (Aprueba): Cumple parcialmente los objetivos. Identifica conceptos básicos, pero con poca profundidad.\n" +
		"Nivel 2 (Destacado): Cumple todos los objetivos, analiza casos y aplica criterios de forma adecuada.\n" +
		"Nivel 3 (Excelente): Supera los objetivos, propone ideas innovadoras y justifica sus decisiones con evidencia."

	defaultResources = []PreworkResource{
		{
			Title:   "Content Marketing Strategies for SMEs: A Practical Guide",
			URL:     "https://www.semanticscholar.org/paper/XXXXX",
			Type:    "paper",
			Summary: "Paper con análisis de casos reales de marketing digital en pequeñas empresas.",
		},
		{
			Title:   "How Small Businesses Win with Content (YouTube)",
			URL:     "https://www.youtube.com/watch?v=ZZZZZ",
			Type:    "video",
			Summary: "Conferencia breve sobre tácticas efectivas para pymes en redes sociales.",
		},
		{
			Title:   "MOOC: Digital Marketing for Entrepreneurs (edX)",
			URL:     "https://www.edx.org/course/digital-marketing-for-entrepreneurs",
			Type:    "mooc",
			Summary: "Curso online gratis que cubre fundamentos de contenido digital.",
		},
	}
)

// DefaultObjectives returns a copy of the objectives suggested when generation fails.
func DefaultObjectives() []string {
	return append([]string(nil), defaultObjectives...)
}

// DefaultResources returns a copy of the prework resources suggested when generation fails.
func DefaultResources() []PreworkResource {
	return append([]PreworkResource(nil), defaultResources...)
}
