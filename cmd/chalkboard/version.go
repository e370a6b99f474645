package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumilearn/chalkboard"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of chalkboard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chalkboard version %s\n", chalkboard.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
