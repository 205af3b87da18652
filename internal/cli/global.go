package cli

import (
	"fmt"
	"strings"

	"github.com/siteplan/duration-planner/pkg/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"go.uber.org/zap"
)

const (
	jsonFormat = "json"
	yamlFormat = "yaml"
	textFormat = "text"
)

var (
	legalLogLevels = []string{"debug", "info", "warn", "error"}
)

type GlobalOptions struct {
	LogLevel string
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		LogLevel: "error",
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, fmt.Sprintf("Log level. One of: (%s).", strings.Join(legalLogLevels, ", ")))
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	// logs go to stderr so that they never mix with the command output
	zap.ReplaceGlobals(log.InitLog(log.ParseLevel(o.LogLevel), "console"))
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if !funk.ContainsString(legalLogLevels, o.LogLevel) {
		return fmt.Errorf("log level must be one of %s", strings.Join(legalLogLevels, ", "))
	}
	return nil
}
