package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/vocab/internal/app"
)

func newVersionCmd(s *streams) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			printf(s.out, "vocab %s\n", app.BuildVersion())
		},
	}
}
