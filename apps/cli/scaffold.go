package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/pedagogyradar/radar/apps"
	"github.com/pedagogyradar/radar/core/scaffold"
	"github.com/pedagogyradar/radar/core/session"
)

// minObjectiveLen is the shortest objective kept, in characters.
const minObjectiveLen = 8

// bloomVerbs are the observable verbs an objective is expected to start with.
var bloomVerbs = []string{
	"Analizar", "Evaluar", "Diseñar", "Comparar", "Reflexionar", "Aplicar", "Identificar", "Crear", "Sintetizar",
}

type scaffoldOptions struct {
	strategyID string
	outPath    string
	plain      bool
}

// scaffold walks the instructor through the activity form and prints its document.
func (cli *commandLine) scaffold(ctx context.Context, gen generator, opts scaffoldOptions) error {
	strategies, err := gen.Strategies(ctx)
	if err != nil {
		return errors.Wrap(err, "listing strategies")
	}
	found := false
	for _, s := range strategies {
		if s.ID == opts.strategyID {
			found = true
			break
		}
	}
	if !found {
		return apps.NewArgumentError(fmt.Sprintf("Estrategia '%s' no encontrada.", opts.strategyID))
	}

	form := session.New()
	form.StrategyID = opts.strategyID

	if err := cli.askContext(form); err != nil {
		return err
	}
	if form.Title, err = cli.promptRequired(
		"Título de la actividad",
		"Por favor, ingresa un título para la actividad.",
		"Marketing de Contenidos para PYMES",
	); err != nil {
		return err
	}
	if form.Description, err = cli.promptRequired(
		"Descripción de la actividad",
		"Por favor, ingresa una descripción para la actividad.",
		"Desarrollar estrategias de marketing digital para pequeñas empresas",
	); err != nil {
		return err
	}

	cli.printBloomTip()
	if err := cli.askObjectives(ctx, gen, form); err != nil {
		return err
	}
	if err := cli.askTaxonomies(form); err != nil {
		return err
	}
	if err := cli.askEvidences(form); err != nil {
		return err
	}
	if err := cli.askPrework(ctx, gen, form); err != nil {
		return err
	}
	if err := cli.askActivity(ctx, gen, form); err != nil {
		return err
	}
	if err := cli.askRubric(ctx, gen, form); err != nil {
		return err
	}

	if warnings := form.Warnings(); len(warnings) > 0 {
		fmt.Fprintln(cli.out)
		cli.printWarnings(warnings)
	}

	md, err := gen.Scaffold(ctx, form.Request())
	if err != nil {
		return errors.Wrap(err, "generating markdown")
	}
	if opts.outPath != "" {
		if err := os.WriteFile(opts.outPath, []byte(md), 0o644); err != nil {
			return errors.Wrap(err, "writing markdown")
		}
	}
	cli.println(headerStyle, "\n--- Generado Markdown ---\n")
	return cli.printMarkdown(md, opts.plain)
}

func (cli *commandLine) askContext(form *session.Form) (err error) {
	if form.Carrera, err = cli.prompt("Carrera (opcional)", ""); err != nil {
		return err
	}
	if form.Semestre, err = cli.prompt("Semestre (opcional)", ""); err != nil {
		return err
	}
	if form.Materia, err = cli.prompt("Materia o curso (opcional)", ""); err != nil {
		return err
	}
	form.Tema, err = cli.prompt("Tema de clase (opcional)", "")
	return err
}

func (cli *commandLine) printBloomTip() {
	fmt.Fprintf(cli.out, "\n%s Un buen objetivo de aprendizaje comienza con un verbo observable de la taxonomía de Bloom.\n",
		cli.styled(tipStyle, "💡 Tip:"))
	fmt.Fprintf(cli.out, "%s 'Analizar campañas exitosas de marketing de contenidos en PYMES.'\n", cli.styled(headerStyle, "Ejemplo:"))
	fmt.Fprintf(cli.out, "%s %s\n\n", cli.styled(warnStyle, "Verbos de Bloom sugeridos:"), strings.Join(bloomVerbs, ", "))
}

func (cli *commandLine) askObjectives(ctx context.Context, gen generator, form *session.Form) error {
	for attempts := 0; len(form.ObjectiveTexts()) == 0; attempts++ {
		if attempts > 0 {
			cli.println(warnStyle, "Intenta redactar al menos 2 objetivos separados por ';' (o deja vacío para sugerencia IA).")
		}
		label := "Objetivos de aprendizaje (separa con ';', ENTER para sugerencia)"
		if attempts >= 2 {
			fmt.Fprintf(cli.out, "%s 'Analizar campañas exitosas de marketing; Evaluar impacto en ventas'\n", cli.styled(tipStyle, "Ejemplo:"))
		}
		text, err := cli.prompt(label, "")
		if err != nil {
			return err
		}
		if text != "" {
			form.SetObjectives(text)
			continue
		}

		suggested, err := cli.suggestObjectives(ctx, gen, form)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "\nObjetivos sugeridos:")
		for i, obj := range suggested {
			fmt.Fprintf(cli.out, "%d. %s\n", i+1, obj)
		}
		ok, err := cli.confirm("¿Usar estos objetivos?", true)
		if err != nil {
			return err
		}
		if ok {
			form.SetObjectiveList(suggested)
			continue
		}
		if text, err = cli.prompt("Escribe tus propios objetivos separados por ';'", ""); err != nil {
			return err
		}
		form.SetObjectives(text)
	}

	valid := cli.validObjectives(form.ObjectiveTexts())
	if len(valid) == 0 {
		cli.println(errorStyle, "⚠️ No se ingresaron objetivos válidos. Se usarán ejemplos por defecto.")
		valid = scaffold.DefaultObjectives()
	}
	form.SetObjectiveList(valid)
	return nil
}

func (cli *commandLine) suggestObjectives(ctx context.Context, gen generator, form *session.Form) ([]string, error) {
	useAI, err := cli.confirm("¿Usar IA para generar objetivos?", true)
	if err != nil {
		return nil, err
	}
	if !useAI {
		return randomObjectives(form.Title), nil
	}

	objs, err := gen.SuggestObjectives(ctx, form.Request())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		cli.println(errorStyle, "Error sugiriendo objetivos con IA: "+err.Error())
		return scaffold.DefaultObjectives(), nil
	}
	if len(objs) == 0 {
		return scaffold.DefaultObjectives(), nil
	}
	return objs, nil
}

// randomObjectives drafts objectives about the first word of the title.
func randomObjectives(title string) []string {
	topic := "la temática"
	if words := strings.Fields(title); len(words) > 0 {
		topic = strings.ToLower(words[0])
	}
	verb := func() string { return bloomVerbs[rand.IntN(len(bloomVerbs))] }
	return []string{
		fmt.Sprintf("%s conceptos clave sobre %s", verb(), topic),
		fmt.Sprintf("%s casos prácticos de %s", verb(), topic),
		fmt.Sprintf("%s una propuesta creativa para %s", verb(), topic),
		fmt.Sprintf("%s el impacto de %s en contextos reales", verb(), topic),
	}
}

// validObjectives drops, with a warning, the objectives that are too short or lack a Bloom verb.
func (cli *commandLine) validObjectives(objectives []string) []string {
	var valid []string
	for _, obj := range objectives {
		if utf8.RuneCountInString(obj) < minObjectiveLen {
			fmt.Fprintf(cli.out, "%s %s\n", cli.styled(errorStyle, "⚠️ Objetivo muy corto:"), obj)
			continue
		}
		if !hasBloomVerb(obj) {
			fmt.Fprintf(cli.out, "%s %s\n", cli.styled(errorStyle, "⚠️ Objetivo sin verbo observable de Bloom:"), obj)
			continue
		}
		valid = append(valid, obj)
	}
	return valid
}

func hasBloomVerb(objective string) bool {
	lower := strings.ToLower(objective)
	for _, v := range bloomVerbs {
		if strings.Contains(lower, strings.ToLower(v)) {
			return true
		}
	}
	return false
}

func (cli *commandLine) askTaxonomies(form *session.Form) error {
	levels := strings.Join(scaffold.TaxonomyLevels, ", ")
	fmt.Fprintf(cli.out, "\nNivel de taxonomía de cada objetivo (%s):\n", levels)
	for i, obj := range form.Objectives() {
		for {
			level, err := cli.prompt(strconv.Itoa(i+1)+". "+obj.Text, obj.Taxonomy)
			if err != nil {
				return err
			}
			if err := form.SetTaxonomy(i, level); err != nil {
				cli.println(errorStyle, err.Error())
				continue
			}
			break
		}
	}
	return nil
}

func (cli *commandLine) askEvidences(form *session.Form) error {
	fmt.Fprintf(cli.out, "\nEvidencias: %s\n", strings.Join(form.Evidences(), ", "))
	for len(form.Evidences()) < scaffold.MaxEvidences {
		label, err := cli.prompt("Agregar evidencia (ENTER para continuar)", "")
		if err != nil {
			return err
		}
		if label == "" {
			return nil
		}
		if err := form.AddEvidence(label); err != nil {
			cli.println(errorStyle, err.Error())
		}
	}
	return nil
}

func (cli *commandLine) askPrework(ctx context.Context, gen generator, form *session.Form) (err error) {
	if form.Prework, err = cli.prompt("Instrucciones de prework (si aplica)", ""); err != nil || form.Prework != "" {
		return err
	}
	if form.StrategyID != session.DefaultStrategy || !form.CanSuggestPrework() {
		return nil
	}
	ok, err := cli.confirm("¿Sugerir recursos de prework con IA?", true)
	if err != nil || !ok {
		return err
	}
	resources, err := gen.SuggestPreworkResources(ctx, form.Request())
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		cli.println(errorStyle, "Error sugiriendo recursos de prework con IA: "+err.Error())
		return nil
	}
	for _, r := range resources {
		form.AddPreworkResource(r)
	}
	fmt.Fprintf(cli.out, "\n%s\n", form.Prework)
	return nil
}

func (cli *commandLine) askActivity(ctx context.Context, gen generator, form *session.Form) (err error) {
	if form.Activity, err = cli.prompt("Descripción de la actividad en clase (si aplica)", ""); err != nil || form.Activity != "" {
		return err
	}
	if !form.CanSuggestActivity() {
		return nil
	}
	ok, err := cli.confirm("¿Sugerir una actividad en clase con IA?", true)
	if err != nil || !ok {
		return err
	}
	activity, err := gen.SuggestActivity(ctx, form.Request())
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		cli.println(errorStyle, "Error sugiriendo actividad con IA: "+err.Error())
		return nil
	}
	form.Activity = activity
	fmt.Fprintf(cli.out, "\nActividad sugerida: %s\n", activity)
	return nil
}

func (cli *commandLine) askRubric(ctx context.Context, gen generator, form *session.Form) error {
	if !form.CanSuggestRubric() {
		return nil
	}
	ok, err := cli.confirm("¿Sugerir una rúbrica con IA?", false)
	if err != nil || !ok {
		return err
	}
	rubric, err := gen.SuggestRubric(ctx, form.Request())
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		cli.println(errorStyle, "Error sugiriendo rúbrica con IA: "+err.Error())
		return nil
	}
	form.Rubric = rubric
	fmt.Fprintf(cli.out, "\n%s\n", rubric)
	return nil
}
