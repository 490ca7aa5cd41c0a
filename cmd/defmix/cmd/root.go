// Package cmd implements the command line interface for the application.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/defmix/defmix/internal/config"
	"github.com/defmix/defmix/internal/obfuscator"
)

var (
	cfgFile string         // Config file path from the flag
	cfg     *config.Config // Loaded configuration

	// Flag variables mapped to config fields for override
	silentMode  bool   // -> cfg.Silent
	aliasMode   string // -> cfg.AliasMode
	aliasLength int    // -> cfg.AliasLength
	mapFile     string // -> cfg.MapFile
)

var errColor = color.New(color.FgRed)

// rootCmd is the base command: the two-argument invocation that rewrites
// one input file into one output file.
var rootCmd = &cobra.Command{
	Use:   "defmix <input_file> <output_file>",
	Short: "Rewrite a source file behind opaque aliases backed by #define directives",
	Long: `defmix reads one C-family source file, renames every variable, function,
and literal occurrence to an opaque alias, and writes the result preceded by
a preamble of #define directives mapping each alias back to its original
text, so the file still preprocesses to the same program.`,
	Args:          cobra.ExactArgs(2),
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			loadedCfg, err := config.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("error loading configuration: %w", err)
			}
			cfg = loadedCfg
			applyFlagOverrides(cfg, cmd)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		inputPath, outputPath := args[0], args[1]

		octx, err := obfuscator.NewObfuscationContext(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize obfuscation context: %w", err)
		}

		if !cfg.Silent {
			fmt.Printf("Processing file: %s\n", inputPath)
		}
		outputContent, err := obfuscator.ProcessFile(inputPath, octx)
		if err != nil {
			return err
		}

		if err := os.WriteFile(outputPath, []byte(outputContent), 0644); err != nil {
			return fmt.Errorf("error writing to output file %s: %w", outputPath, err)
		}
		if !cfg.Silent {
			fmt.Printf("Wrote %s (%d aliases assigned)\n", outputPath, octx.Table.Len())
		}

		if cfg.MapFile != "" {
			if err := obfuscator.SaveAliasMap(cfg.MapFile, octx.Table); err != nil {
				return err
			}
			if !cfg.Silent {
				fmt.Printf("Wrote alias map: %s\n", cfg.MapFile)
			}
		}
		return nil
	},
}

// applyFlagOverrides applies command-line flag values to the config struct.
// Only overrides if the flag was explicitly set by the user.
func applyFlagOverrides(cfg *config.Config, cmd *cobra.Command) {
	if cmd.Flags().Changed("silent") {
		cfg.Silent = silentMode
	}
	if cmd.Flags().Changed("alias-mode") {
		cfg.AliasMode = aliasMode
	}
	if cmd.Flags().Changed("alias-length") {
		cfg.AliasLength = aliasLength
	}
	if cmd.Flags().Changed("map") {
		cfg.MapFile = mapFile
	}
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./defmix.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&silentMode, "silent", "s", false, "Suppress informational output (overrides config)")
	rootCmd.PersistentFlags().StringVar(&aliasMode, "alias-mode", config.AliasModeIdentifier, "Alias mode: identifier, hexa, numeric (overrides config)")
	rootCmd.PersistentFlags().IntVar(&aliasLength, "alias-length", config.DefaultAliasLength, "Length of generated aliases (overrides config)")
	rootCmd.PersistentFlags().StringVar(&mapFile, "map", "", "Also write the alias map as YAML to this path (overrides config)")

	rootCmd.AddCommand(whatisCmd)
}
