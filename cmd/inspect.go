package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/fortress/internal/ui"
	"github.com/PolarWolf314/fortress/internal/workflows"
	"github.com/spf13/cobra"
)

var inspectJSON bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output in JSON format")
}

func resetInspectCommandState() {
	inspectJSON = false
}

type inspectOutput struct {
	Path           string `json:"path"`
	Size           int64  `json:"size"`
	Name           string `json:"name"`
	ContentType    string `json:"type"`
	HeaderSize     int    `json:"header_size"`
	MetadataSize   int    `json:"metadata_size"`
	CiphertextSize int    `json:"ciphertext_size"`
	TagSize        int    `json:"tag_size"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.fortress>",
	Short: "Shows the stored name and layout of a .fortress file",
	Long: `Reads the header of a .fortress container without decrypting it.

The stored file name and content type are not encrypted, so they can be
shown without a password or security key.

Examples:
  fortress inspect report.pdf.fortress
  fortress inspect report.pdf.fortress --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting inspect command")
		Logger.Debugf("Inspecting %s", args[0])

		result, err := workflows.Inspect(commandContext(cmd), args[0])
		if err != nil {
			if isExpectedError(err) {
				fmt.Println(formatError(err))
				return nil
			}
			return Logger.ErrorfAndReturn("failed to inspect %s: %v", args[0], err)
		}

		out := inspectOutput{
			Path:           result.Path,
			Size:           result.Size,
			Name:           result.Metadata.Name,
			ContentType:    result.Metadata.ContentType,
			HeaderSize:     result.HeaderSize,
			MetadataSize:   result.MetadataSize,
			CiphertextSize: result.CiphertextSize,
			TagSize:        result.TagSize,
		}

		if inspectJSON {
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to marshal to JSON: %v", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Println(ui.Path.Sprint(out.Path) + " " + ui.Muted.Sprint(ui.Bytes(out.Size)))
		fmt.Println()
		fmt.Printf("  %-14s %s\n", "Name:", ui.Highlight.Sprint(out.Name))
		fmt.Printf("  %-14s %s\n", "Content type:", out.ContentType)
		fmt.Printf("  %-14s %d bytes\n", "Header:", out.HeaderSize)
		fmt.Printf("  %-14s %d bytes\n", "Metadata:", out.MetadataSize)
		fmt.Printf("  %-14s %d bytes\n", "Ciphertext:", out.CiphertextSize)
		fmt.Printf("  %-14s %d bytes\n", "Tag:", out.TagSize)
		fmt.Println()
		fmt.Println(ui.Info.Sprint("→") + " Name and content type are stored unencrypted")
		return nil
	},
}
