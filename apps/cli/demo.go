package main

import (
	"context"

	"github.com/pedagogyradar/radar/core/scaffold"
)

func demoRequest() scaffold.Request {
	return scaffold.Request{
		Carrera:             "Ingeniería Civil en Computación",
		Materia:             "Estructuras de datos",
		StrategyID:          "flipped",
		ActivityTitle:       "Estrategia de Algoritmos de Búsqueda",
		ActivityDescription: "Los estudiantes deberán implementar y comparar algoritmos de búsqueda en grafos, analizando su eficiencia en distintos escenarios.",
		LearningObjectives: []scaffold.LearningObjective{
			{Text: "Analizar las diferencias entre algoritmos de búsqueda en grafos.", Taxonomy: scaffold.TaxonomyAnalysis},
			{Text: "Comparar la eficiencia de búsqueda en distintos escenarios.", Taxonomy: scaffold.TaxonomyAnalysis},
			{Text: "Aplicar algoritmos de búsqueda a problemas prácticos.", Taxonomy: scaffold.TaxonomyApplication},
			{Text: "Evaluar el rendimiento de los algoritmos implementados.", Taxonomy: scaffold.TaxonomyEvaluation},
		},
		PreworkInstructions: "Revisar el capítulo sobre algoritmos de búsqueda antes de la clase.",
		InClassActivity:     "Resolver un set de ejercicios prácticos y discutir los resultados en grupo.",
		Evidences:           []string{"Informe de resultados", "Ensayo crítico"},
	}
}

// demo renders a pre-filled activity without any input or network call.
func (cli *commandLine) demo(ctx context.Context, plain bool) error {
	svc := newLocalService(cli.catalog, cli.logger)
	md, err := svc.Scaffold(ctx, demoRequest())
	if err != nil {
		return err
	}
	cli.println(headerStyle, "\n--- Demo: Markdown generado ---\n")
	return cli.printMarkdown(md, plain)
}
