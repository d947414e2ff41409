package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/enrich-cli/pkg/gemini"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models that support content generation",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := gemini.NewClient(cmd.Context())
		if err != nil {
			return err
		}

		names, err := client.ListModels(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "models: list")
		}

		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
