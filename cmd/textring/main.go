// cmd/textring/main.go
package main

import (
	"flag"
	"fmt"
	stlog "log" // for fatal errors before the logger is ready
	"os"
	"path/filepath"

	"github.com/bethropolis/textring/internal/app"
	"github.com/bethropolis/textring/internal/config"
	"github.com/bethropolis/textring/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	var flags config.Flags
	args, err := flags.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	cfg, cfgErr := config.LoadConfig(*flags.ConfigFilePath, &flags)

	// The terminal belongs to the editor, so logs go to a file unless asked otherwise.
	logPath := cfg.Logger.LogFilePath
	if logPath == "" {
		logPath = filepath.Join(os.TempDir(), config.DefaultLogFileName)
	}
	out, closeLog, err := logger.OpenOutput(logPath)
	if err != nil {
		stlog.Fatalf("%v", err)
	}
	defer closeLog()

	logger.SetFilterDebug(*flags.DebugLog)
	logger.Init(cfg.Logger, out)
	if cfgErr != nil {
		logger.Warnf("Config: %v", cfgErr)
	}

	logger.Infof("Starting %s %s", config.AppName, version)
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting empty.")
	}

	editorApp, err := app.NewApp(cfg, filePath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		closeLog()
		os.Exit(1)
	}

	if err := editorApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closeLog()
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}
