package cmd

import (
	"github.com/spf13/cobra"

	"github.com/qwitter/cli/pkg/config"
	"github.com/qwitter/cli/pkg/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change CLI settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		keys := config.Keys()
		record := make(map[string]interface{}, len(keys)+2)
		for _, key := range keys {
			record[key] = config.GetString(key)
		}
		record["config dir"] = config.GetConfigDir()
		record["config file"] = config.GetConfigFilePath()
		return output.PrintRecord("Configuration", record)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a setting to the user config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetString(args[0], args[1]); err != nil {
			return err
		}
		output.PrintSuccess("%s = %s", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
