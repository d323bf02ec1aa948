package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newCacheCmd(s *streams, root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the record cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCacheClear(cmd.Context(), s, root)
		},
	})
	return cmd
}

func runCacheClear(ctx context.Context, s *streams, root *rootOptions) error {
	a, err := newApp(ctx, root)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.Cache == nil {
		printf(s.out, "Cache is disabled.\n")
		return nil
	}
	n, err := a.Cache.Clear(ctx)
	if err != nil {
		return err
	}
	printf(s.out, "Cleared %d cached entries.\n", n)
	return nil
}
