// Package scaffold assembles teaching-activity documents and suggests their missing parts.
package scaffold

import (
	"bytes"
	"context"
	"fmt"
	htmltmpl "html/template"
	"net/mail"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"golang.org/x/sync/errgroup"

	"github.com/pedagogyradar/radar/core"
	"github.com/pedagogyradar/radar/core/alignment"
	"github.com/pedagogyradar/radar/core/strategy"
)

// EmailTemplate is the email template a shared scaffold is sent with.
const EmailTemplate = "scaffold"

const rubricSystemPrompt = "Eres un experto en pedagogía universitaria."

type Service struct {
	gen     core.Generator
	catalog *strategy.Catalog
	mailer  core.EmailService
	logger  core.Logger
	md      goldmark.Markdown
}

func NewService(gen core.Generator, catalog *strategy.Catalog, mailer core.EmailService, logger core.Logger) *Service {
	return &Service{
		gen:     gen,
		catalog: catalog,
		mailer:  mailer,
		logger:  logger,
		md:      goldmark.New(),
	}
}

// generate returns "" when no usable text was produced. Only context errors are returned.
func (svc *Service) generate(ctx context.Context, name, prompt, system string, maxTokens int, useful func(string) bool) (string, error) {
	accept := func(text string) bool {
		return useful(text) && !isPromptEcho(prompt, text)
	}
	text, err := svc.gen.Generate(ctx, core.GenerateRequest{
		Prompt:    prompt,
		System:    system,
		MaxTokens: maxTokens,
		Accept:    accept,
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		svc.logger.Info(fmt.Sprintf("%s: falling back: %v", name, err))
		return "", nil
	}
	if !accept(text) {
		svc.logger.Info(name + ": falling back: unusable answer")
		return "", nil
	}
	return text, nil
}

// SuggestObjectives proposes learning objectives for the activity.
func (svc *Service) SuggestObjectives(ctx context.Context, req Request) ([]string, error) {
	useful := func(text string) bool { return usefulObjectives(extractList(text)) }
	text, err := svc.generate(ctx, "objectives", objectivesPrompt(req, numObjectives), "", objectivesMaxTokens, useful)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return DefaultObjectives(), nil
	}
	return extractList(text), nil
}

// SuggestActivity proposes the main in-class activity.
func (svc *Service) SuggestActivity(ctx context.Context, req Request) (string, error) {
	first := func(text string) string {
		if items := extractList(text); len(items) > 0 {
			return items[0]
		}
		return ""
	}
	useful := func(text string) bool { return usefulActivity(first(text)) }
	text, err := svc.generate(ctx, "activity", activityPrompt(req), "", activityMaxTokens, useful)
	if err != nil {
		return "", err
	}
	if text == "" {
		return defaultActivity, nil
	}
	return first(text), nil
}

// SuggestRubric proposes a 3-level rubric.
func (svc *Service) SuggestRubric(ctx context.Context, req Request) (string, error) {
	text, err := svc.generate(ctx, "rubric", rubricPrompt(req), rubricSystemPrompt, rubricMaxTokens, usefulRubric)
	if err != nil {
		return "", err
	}
	if text == "" {
		return defaultRubric, nil
	}
	return strings.TrimSpace(text), nil
}

// SuggestPreworkResources proposes material students go through before class.
func (svc *Service) SuggestPreworkResources(ctx context.Context, req Request) ([]PreworkResource, error) {
	useful := func(text string) bool { return len(extractResources(text)) > 0 }
	text, err := svc.generate(ctx, "prework", resourcesPrompt(req, numResources), "", resourcesMaxTokens, useful)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return DefaultResources(), nil
	}
	return extractResources(text), nil
}

// SuggestEvidenceAlignment lists the evidence types that would back every objective.
// Activities and evidences are both searched for a matching type.
func (svc *Service) SuggestEvidenceAlignment(req AlignmentRequest) EvidenceAlignment {
	req.Clean()
	pool := append(append([]string(nil), req.Activities...), req.Evidences...)
	warnings := alignment.Check(req.Objectives, pool)

	res := EvidenceAlignment{SuggestedEvidences: alignment.Suggest(req.Objectives, pool)}
	if res.SuggestedEvidences == nil {
		res.SuggestedEvidences = []string{}
	}

	switch {
	case len(req.Objectives) == 0:
		res.Reasoning = "No hay objetivos que evaluar."
	case len(warnings) > 0:
		reasons := make([]string, 0, len(warnings))
		for _, w := range warnings {
			reasons = append(reasons, fmt.Sprintf(
				"El objetivo '%s' (%s) requiere evidencias como: %s.", w.Objective, w.Verb, strings.Join(w.Suggested, ", "),
			))
		}
		res.Reasoning = strings.Join(reasons, " ")
	case !anyVerb(req.Objectives):
		res.Reasoning = "Ningún objetivo usa un verbo reconocible de la taxonomía de Bloom; no es posible verificar la alineación."
	default:
		res.Reasoning = "Las actividades y evidencias actuales están alineadas con todos los objetivos."
	}
	return res
}

func anyVerb(objectives []string) bool {
	for _, o := range objectives {
		if alignment.DetectVerb(o) != "" {
			return true
		}
	}
	return false
}

// Strategies returns the catalog of teaching strategies.
func (svc *Service) Strategies() []strategy.Strategy {
	return svc.catalog.All()
}

// Scaffold renders the final document of the activity.
func (svc *Service) Scaffold(_ context.Context, req Request) (string, error) {
	s, err := svc.catalog.Get(req.StrategyID)
	if err != nil {
		return "", errors.Wrapf(err, "strategy %q", req.StrategyID)
	}
	doc := Document{
		Request:             req,
		Strategy:            s,
		ExpectedEvidence:    s.Evidence,
		ImplementationNotes: s.ImplementationNotes,
		References:          s.References,
		Warnings:            alignment.Validate(req.ObjectiveTexts(), req.EvidencePool()),
	}
	return svc.catalog.Render(s.ID, doc)
}

// Draft fills every empty part of the activity with a suggestion, then renders it.
func (svc *Service) Draft(ctx context.Context, req Request) (Request, string, error) {
	if _, err := svc.catalog.Get(req.StrategyID); err != nil {
		return req, "", errors.Wrapf(err, "strategy %q", req.StrategyID)
	}

	draft := req
	g, gctx := errgroup.WithContext(ctx)
	if len(req.LearningObjectives) == 0 {
		g.Go(func() error {
			objs, err := svc.SuggestObjectives(gctx, req)
			if err != nil {
				return err
			}
			draft.LearningObjectives = make([]LearningObjective, 0, len(objs))
			for _, o := range objs {
				draft.LearningObjectives = append(draft.LearningObjectives, LearningObjective{Text: o, Taxonomy: DefaultTaxonomy})
			}
			return nil
		})
	}
	if req.InClassActivity == "" {
		g.Go(func() error {
			activity, err := svc.SuggestActivity(gctx, req)
			draft.InClassActivity = activity
			return err
		})
	}
	if req.Rubric == "" {
		g.Go(func() error {
			rubric, err := svc.SuggestRubric(gctx, req)
			draft.Rubric = rubric
			return err
		})
	}
	if req.PreworkInstructions == "" {
		g.Go(func() error {
			resources, err := svc.SuggestPreworkResources(gctx, req)
			if err != nil {
				return err
			}
			entries := make([]string, 0, len(resources))
			for _, r := range resources {
				entries = append(entries, r.Entry())
			}
			draft.PreworkInstructions = strings.Join(entries, "\n")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return req, "", errors.Wrap(err, "drafting scaffold")
	}

	md, err := svc.Scaffold(ctx, draft)
	if err != nil {
		return req, "", err
	}
	return draft, md, nil
}

// EmailScaffold renders the activity and mails it, as HTML and as a markdown attachment.
func (svc *Service) EmailScaffold(ctx context.Context, er EmailRequest) error {
	to := make([]mail.Address, 0, len(er.To))
	for _, addr := range er.To {
		a, err := mail.ParseAddress(addr)
		if err != nil {
			return core.NewFieldError("to", "dirección de correo inválida: "+addr)
		}
		to = append(to, *a)
	}

	md, err := svc.Scaffold(ctx, er.Request)
	if err != nil {
		return err
	}
	var html bytes.Buffer
	if err := svc.md.Convert([]byte(md), &html); err != nil {
		return errors.Wrap(err, "converting scaffold to html")
	}

	msg := &core.EmailMessage{
		To:           to,
		Subject:      "Actividad: " + er.ActivityTitle,
		TemplateName: EmailTemplate,
		TemplateData: map[string]interface{}{
			"Title":    er.ActivityTitle,
			"Markdown": md,
			"HTML":     htmltmpl.HTML(html.String()), // goldmark drops raw HTML by default
		},
	}
	if err := msg.Attach(strings.NewReader(md), "scaffold.md", "text/markdown; charset=utf-8"); err != nil {
		return errors.Wrap(err, "attaching scaffold")
	}
	svc.mailer.SendMessages(msg)
	return nil
}
