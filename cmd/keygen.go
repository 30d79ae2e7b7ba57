package cmd

import (
	"fmt"

	"github.com/PolarWolf314/fortress/internal/ui"
	"github.com/PolarWolf314/fortress/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	keygenCount  int
	keygenOutput string
	keygenForce  bool
)

func init() {
	keygenCmd.Flags().IntVarP(&keygenCount, "count", "n", 1, fmt.Sprintf("number of keys to generate (max %d)", workflows.MaxKeysPerRun))
	keygenCmd.Flags().StringVarP(&keygenOutput, "output", "o", "", "write the keys to a file (mode 0600) instead of printing them")
	keygenCmd.Flags().BoolVarP(&keygenForce, "force", "f", false, "overwrite an existing key file")
}

func resetKeygenCommandState() {
	keygenCount = 1
	keygenOutput = ""
	keygenForce = false
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generates security keys",
	Long: `Generates random security keys: 64 hexadecimal characters each.

Keep the key somewhere safe and separate from your password. Without it
nothing encrypted with it can be recovered.

Examples:
  fortress keygen
  fortress keygen -o ~/fortress.key
  fortress keygen -n 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keygen command")
		Logger.Debugf("count=%d, output=%q, force=%t", keygenCount, keygenOutput, keygenForce)

		result, err := workflows.GenerateKeys(commandContext(cmd), workflows.KeygenOptions{
			Count:      keygenCount,
			OutputFile: keygenOutput,
			Force:      keygenForce,
		})
		if err != nil {
			if isExpectedError(err) {
				fmt.Println(formatError(err))
				return nil
			}
			return Logger.ErrorfAndReturn("failed to generate keys: %v", err)
		}

		if result.OutputFile != "" {
			fmt.Println(ui.Success.Sprint("✓") + fmt.Sprintf(" Wrote %d security key(s) to ", len(result.Keys)) + ui.Path.Sprint(result.OutputFile))
			for _, key := range result.Keys {
				fmt.Println("  " + ui.Mask(key))
			}
			fmt.Println(ui.Info.Sprint("→") + " Use it with " + ui.Flag.Sprint("--key-file "+result.OutputFile))
			return nil
		}

		for _, key := range result.Keys {
			fmt.Println(key)
		}
		return nil
	},
}
