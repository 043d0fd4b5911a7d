package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set with -ldflags "-X github.com/Ritenoob/miniature-enigma/pkg/cmd.Version=..."
var Version = "dev"

func init() {
	RootCmd.AddCommand(VersionCmd)
}

var VersionCmd = &cobra.Command{
	Use:          "version",
	Short:        "show version name",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}
