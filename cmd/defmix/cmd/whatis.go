package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/defmix/defmix/internal/obfuscator"
)

var whatisMapFile string

// whatisCmd answers "what was this token originally?" (and the reverse)
// against an alias map written by a previous run with --map.
var whatisCmd = &cobra.Command{
	Use:   "whatis <name>",
	Short: "Look up a name in a saved alias map",
	Long: `Looks up a name in an alias map produced by a previous run. If the name
is an alias, prints the original text it stands for; if it is an original
text, prints the alias it was renamed to.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		name := args[0]

		mapPath := whatisMapFile
		if mapPath == "" && cfg != nil {
			mapPath = cfg.MapFile
		}
		if mapPath == "" {
			return fmt.Errorf("no alias map specified: use --map or set map_file in the config")
		}

		aliases, err := obfuscator.LoadAliasMap(mapPath)
		if err != nil {
			return err
		}

		if original, ok := aliases[name]; ok {
			fmt.Printf("%s is the alias for: %s\n", name, original)
			return nil
		}
		for aliasName, original := range aliases {
			if original == name {
				fmt.Printf("%s was renamed to: %s\n", name, aliasName)
				return nil
			}
		}
		return fmt.Errorf("name %q not found in alias map %s", name, mapPath)
	},
}

func init() {
	whatisCmd.Flags().StringVar(&whatisMapFile, "map", "", "Path to the alias map file")
}
