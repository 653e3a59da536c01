package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tripdesk/tripdesk/pkg/seal"
)

// dataKeyGenerateCmd represents the data-key generate command
var dataKeyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a key",
	Long: `
Generate a new Base64-encoded 256 bit key. Use one for TRIPDESK_SESSION_KEY
and a different one for TRIPDESK_SEAL_KEY.

Example:

$ export TRIPDESK_SESSION_KEY="$(tripctl data-key generate)"
$ export TRIPDESK_SEAL_KEY="$(tripctl data-key generate)"
`,
	Run: func(cmd *cobra.Command, args []string) {
		key, err := seal.GenerateKey()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate key: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s", base64.StdEncoding.Strict().EncodeToString(key))
	},
}

func init() {
	dataKeyCmd.AddCommand(dataKeyGenerateCmd)
}
