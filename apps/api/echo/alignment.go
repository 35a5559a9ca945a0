package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/pedagogyradar/radar/core"
	"github.com/pedagogyradar/radar/core/alignment"
)

type alignmentReq struct {
	Objectives []string `json:"objectives"`
	Evidences  []string `json:"evidences"`
}

func registerAlignmentAPI(e *echo.Echo) {
	e.POST("/alignment", checkAlignment)
}

func checkAlignment(ctx echo.Context) error {
	var req alignmentReq
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to alignmentReq")
	}
	warnings := alignment.Validate(core.CleanStrings(req.Objectives), core.CleanStrings(req.Evidences))
	return ctx.JSON(http.StatusOK, echo.Map{"warnings": warnings})
}
