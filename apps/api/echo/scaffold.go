package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/pedagogyradar/radar/core/scaffold"
	"github.com/pedagogyradar/radar/core/strategy"
)

type scaffoldAPI struct {
	svc      *scaffold.Service
	validate *validator.Validate
}

func registerScaffoldAPI(e *echo.Echo, svc *scaffold.Service, validate *validator.Validate) {
	api := scaffoldAPI{svc: svc, validate: validate}

	e.GET("/strategies", api.strategies)

	e.POST("/scaffold", api.scaffold)
	e.POST("/scaffold/draft", api.draft)
	e.POST("/scaffold/email", api.email)

	// suggestions work on partially filled forms: requests are cleaned, not validated
	e.POST("/suggest-objectives", api.suggestObjectives)
	e.POST("/suggest-activity", api.suggestActivity)
	e.POST("/suggest-rubric", api.suggestRubric)
	e.POST("/suggest-prework-resources", api.suggestPreworkResources)
	e.POST("/suggest-evidence-alignment", api.suggestEvidenceAlignment)
}

type strategyResp struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Description string   `json:"description"`
	Taxonomies  []string `json:"taxonomies"`
	Evidence    []string `json:"evidence"`
}

func newStrategyResp(s strategy.Strategy) strategyResp {
	return strategyResp{
		ID:          s.ID,
		DisplayName: s.DisplayName,
		Description: s.Description,
		Taxonomies:  s.Taxonomies,
		Evidence:    s.Evidence,
	}
}

func bindRequest(ctx echo.Context) (scaffold.Request, error) {
	var req scaffold.Request
	if err := ctx.Bind(&req); err != nil {
		return req, errors.Wrap(err, "binding to scaffold.Request")
	}
	req.Clean()
	return req, nil
}

// Handlers

func (api *scaffoldAPI) strategies(ctx echo.Context) error {
	all := api.svc.Strategies()
	res := make([]strategyResp, 0, len(all))
	for _, s := range all {
		res = append(res, newStrategyResp(s))
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *scaffoldAPI) scaffold(ctx echo.Context) error {
	var req scaffold.Request
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to scaffold.Request")
	}
	if err := req.Validate(api.validate); err != nil {
		return err
	}

	md, err := api.svc.Scaffold(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"markdown": md})
}

func (api *scaffoldAPI) draft(ctx echo.Context) error {
	var req scaffold.Request
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to scaffold.Request")
	}
	if err := req.Validate(api.validate); err != nil {
		return err
	}

	draft, md, err := api.svc.Draft(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"markdown": md, "request": draft})
}

func (api *scaffoldAPI) email(ctx echo.Context) error {
	var req scaffold.EmailRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to scaffold.EmailRequest")
	}
	if err := req.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.EmailScaffold(ctx.Request().Context(), req); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true})
}

func (api *scaffoldAPI) suggestObjectives(ctx echo.Context) error {
	req, err := bindRequest(ctx)
	if err != nil {
		return err
	}
	objs, err := api.svc.SuggestObjectives(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"objectives": objs})
}

func (api *scaffoldAPI) suggestActivity(ctx echo.Context) error {
	req, err := bindRequest(ctx)
	if err != nil {
		return err
	}
	activity, err := api.svc.SuggestActivity(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"activity": activity})
}

func (api *scaffoldAPI) suggestRubric(ctx echo.Context) error {
	req, err := bindRequest(ctx)
	if err != nil {
		return err
	}
	rubric, err := api.svc.SuggestRubric(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"rubric": rubric})
}

func (api *scaffoldAPI) suggestPreworkResources(ctx echo.Context) error {
	req, err := bindRequest(ctx)
	if err != nil {
		return err
	}
	resources, err := api.svc.SuggestPreworkResources(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"resources": resources})
}

func (api *scaffoldAPI) suggestEvidenceAlignment(ctx echo.Context) error {
	var req scaffold.AlignmentRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to scaffold.AlignmentRequest")
	}
	return ctx.JSON(http.StatusOK, api.svc.SuggestEvidenceAlignment(req))
}
