package main

import (
	"fmt"
	"strings"

	"github.com/pedagogyradar/radar/core/alignment"
)

func (cli *commandLine) align(objectives, evidences []string) {
	warnings := alignment.Validate(objectives, evidences)
	if len(warnings) == 0 {
		cli.println(headerStyle, "✅ Todos los objetivos tienen evidencias alineadas.")
		return
	}
	cli.printWarnings(warnings)
	if suggested := alignment.Suggest(objectives, evidences); len(suggested) > 0 {
		fmt.Fprintf(cli.out, "%s %s\n", cli.styled(tipStyle, "Evidencias sugeridas:"), strings.Join(suggested, ", "))
	}
}
