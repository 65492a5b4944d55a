package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/finsight/cmd/export"
	"fjacquet/finsight/cmd/importer"
	"fjacquet/finsight/cmd/insights"
	"fjacquet/finsight/cmd/root"
	"fjacquet/finsight/cmd/score"
	"fjacquet/finsight/cmd/serve"
	"fjacquet/finsight/cmd/voice"
	"fjacquet/finsight/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load .env silently; nothing is logged before the level is known.
	_, _ = config.LoadEnv()

	// 2. Set the global logrus level before any logging happens.
	configureLogLevelDirectly()

	// 3. Initialize the root command and add all subcommands.
	root.Init()
	root.Cmd.AddCommand(insights.Cmd)
	root.Cmd.AddCommand(score.Cmd)
	root.Cmd.AddCommand(voice.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(importer.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

// configureLogLevelDirectly applies LOG_LEVEL to the global logrus logger.
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
