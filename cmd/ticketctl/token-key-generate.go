package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthurv/ticketd/pkg/token"
)

// tokenKeyGenerateCmd represents the token-key generate command
var tokenKeyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a token signing key",
	Long: `
Generate a token signing key

Use this command to generate a new Base64-encoded 256 bit signing key. Once
generated, this key should be placed into the environment of the ticketd
server. Every bearer token is signed and verified with it; rotating the key
invalidates all outstanding tokens.

Example:

$ export TICKETD_TOKEN_KEY="$(ticketctl token-key generate)"
`,
	Run: func(cmd *cobra.Command, args []string) {
		key := make([]byte, token.KeySize)
		if _, err := rand.Read(key); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to generate key:", err)
			os.Exit(1)
		}
		fmt.Printf("%s", base64.StdEncoding.Strict().EncodeToString(key))
	},
}

func init() {
	tokenKeyCmd.AddCommand(tokenKeyGenerateCmd)
}
