package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saraHmercha/topsearch/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if flagCollection != "" && !e.cfg.HasCollection(flagCollection) {
		return fmt.Errorf("unknown collection %q", flagCollection)
	}

	return tui.Run(tui.RunOpts{
		Service:     e.svc,
		Collections: e.cfg.Collections,
		APIURL:      e.client.BaseURL(),
		Collection:  flagCollection,
	})
}
