package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javaide/classview/classpath"
	"github.com/javaide/classview/config"
	"github.com/javaide/classview/model"
)

var (
	outputFile     string
	configFile     string
	classpathFlags []string
	excludeFlags   []string
	visibilityFlag string
	logLevelFlag   string

	output   io.Writer
	cfg      config.Config
	logger   *slog.Logger
	cp       *classpath.Path
	registry *model.Registry
)

var rootCmd = &cobra.Command{
	Use:   "classview",
	Short: "JVM class member browser",
	Long: `classview reads compiled JVM classes from directories and jar files
and answers member completion queries against them.

It can describe classes, suggest members by prefix, look up methods
and fields, and serve the same queries to editors over MCP.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
		if cp != nil {
			cp.Close()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	flags.StringVar(&configFile, "config", "", "YAML configuration file")
	flags.StringSliceVarP(&classpathFlags, "classpath", "c", nil, "classpath entries (directories, jar or zip files); defaults to $CLASSPATH")
	flags.StringSliceVar(&excludeFlags, "exclude", nil, "gitignore-style patterns of class files to hide")
	flags.StringVar(&visibilityFlag, "visibility", "", "lowest member visibility to model: public, protected or package")
	flags.StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(serveCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	entries := classpathFlags
	if len(entries) == 0 && configFile == "" {
		entries = filepath.SplitList(os.Getenv("CLASSPATH"))
	}

	var err error
	cfg, err = config.Load(configFile,
		config.WithClasspath(entries...),
		config.WithExclude(excludeFlags...),
		config.WithVisibility(visibilityFlag),
		config.WithLogLevel(logLevelFlag),
	)
	if err != nil {
		return err
	}

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	visibility, err := cfg.ModelVisibility()
	if err != nil {
		return err
	}

	cp, err = classpath.Open(cfg.Classpath, classpath.WithExclude(cfg.Exclude...))
	if err != nil {
		return fmt.Errorf("failed to open classpath: %w", err)
	}
	logger.Debug("classpath opened", "entries", cp.Locations())

	registry = model.NewRegistry(cp,
		model.WithLogger(logger),
		model.WithVisibility(visibility),
		model.WithPreloadLimit(cfg.PreloadLimit),
	)

	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		output = f
	} else {
		output = cmd.OutOrStdout()
	}
	return nil
}

// resolveClass resolves name, turning a missing class into a short message.
func resolveClass(name string) (*model.Class, error) {
	c, err := registry.Resolve(name)
	if model.IsNotFound(err) {
		return nil, fmt.Errorf("class %s not found on the classpath", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve class: %w", err)
	}
	return c, nil
}
