// Package appfs embeds the files the apps need at runtime.
package appfs

import "embed"

// FS holds strategies.yaml and the templates/ tree, `_` partials included.
//
//go:embed strategies.yaml all:templates
var FS embed.FS

const (
	StrategiesFile    = "strategies.yaml"
	StrategyTemplates = "templates/strategies"
	EmailTemplates    = "templates/email"
)
