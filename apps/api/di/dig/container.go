package dig_container

import (
	"log"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/pedagogyradar/radar/apps/api/echo"
	"github.com/pedagogyradar/radar/core"
	"github.com/pedagogyradar/radar/core/scaffold"
	"github.com/pedagogyradar/radar/core/strategy"
	emailsvc "github.com/pedagogyradar/radar/services/email"
	"github.com/pedagogyradar/radar/services/llm"
	logsvc "github.com/pedagogyradar/radar/services/logger"
)

type LLMLoggerParam struct {
	dig.In
	Logger core.Logger `name:"llmLogger"`
}

func newRollbarLogger(conf *core.Config) *logsvc.RollbarLogger {
	logger := logsvc.NewRollbarLogger(logsvc.NewZapLogger(conf, "api"), conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newLogger(logger *logsvc.RollbarLogger) core.Logger {
	return logger
}

func newLLMLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(logsvc.NewZapLogger(conf, "llm"), conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newGenerator(conf *core.Config, loggerParam LLMLoggerParam) (core.Generator, error) {
	return llm.New(conf, loggerParam.Logger)
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newValidator(translator ut.Translator) *validator.Validate {
	return core.NewValidator(translator)
}

func newServerDeps(
	conf *core.Config,
	logger core.Logger,
	svc *scaffold.Service,
	validate *validator.Validate,
	translator ut.Translator,
) echoapi.ServerDeps {
	return echoapi.ServerDeps{
		Conf:        conf,
		Logger:      logger,
		ScaffoldSvc: svc,
		Validate:    validate,
		Translator:  translator,
	}
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newRollbarLogger))
	must(c.Provide(newLogger))
	must(c.Provide(newLLMLogger, dig.Name("llmLogger")))
	must(c.Provide(newGenerator))
	must(c.Provide(newEmailService))
	must(c.Provide(strategy.NewCatalog))
	must(c.Provide(scaffold.NewService))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(newServerDeps))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
