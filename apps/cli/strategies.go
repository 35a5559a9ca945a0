package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pedagogyradar/radar/core/strategy"
)

// strategies lists the local catalog, or the service's when apiURL is set.
func (cli *commandLine) strategies(ctx context.Context, apiURL string) error {
	list := cli.catalog.All()
	if apiURL != "" {
		var err error
		if list, err = cli.remote(apiURL).Strategies(ctx); err != nil {
			return err
		}
	}
	for _, s := range list {
		cli.printStrategy(s)
	}
	return nil
}

func (cli *commandLine) printStrategy(s strategy.Strategy) {
	fmt.Fprintf(cli.out, "%s  %s\n", cli.styled(headerStyle, s.ID), s.DisplayName)
	if s.Description != "" {
		fmt.Fprintf(cli.out, "    %s\n", s.Description)
	}
	if len(s.Evidence) > 0 {
		fmt.Fprintf(cli.out, "    Evidencias: %s\n", strings.Join(s.Evidence, ", "))
	}
}
