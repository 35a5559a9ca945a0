package main

import (
	"context"

	"github.com/pedagogyradar/radar/core"
	"github.com/pedagogyradar/radar/core/scaffold"
	"github.com/pedagogyradar/radar/core/strategy"
	"github.com/pedagogyradar/radar/services/llm"
)

// localService serves the form in-process: no model is called and every suggestion is a built-in example.
type localService struct {
	*scaffold.Service
}

var _ generator = localService{}

func newLocalService(catalog *strategy.Catalog, logger core.Logger) localService {
	gen := llm.NewChain(logger, llm.Offline{})
	return localService{scaffold.NewService(gen, catalog, nil, logger)}
}

func (ls localService) Strategies(context.Context) ([]strategy.Strategy, error) {
	return ls.Service.Strategies(), nil
}
