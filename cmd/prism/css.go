package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/prism/internal/dom"
)

func newCSSCmd(app *AppContext) *cobra.Command {
	var firstPaint bool

	cmd := &cobra.Command{
		Use:   "css",
		Short: "Print the root attributes and :root custom properties",
		Long: `Print the markup a page would carry on its root element. With --first-paint
only the theme cookie is consulted, which is what a server sees before any
client storage has been read.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.css")
			provider := app.NewProvider(logger)
			c := provider.NewController(ctx)
			if !firstPaint {
				c.Mount(ctx)
				defer c.Unmount()
			}

			r := c.Resolved()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "<html %s>\n\n", dom.RenderRootAttrs(r))
			fmt.Fprint(out, dom.RenderCSS(r))
			return nil
		},
	}

	cmd.Flags().BoolVar(&firstPaint, "first-paint", false, "Render from the theme cookie only")

	return cmd
}
