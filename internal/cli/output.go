package cli

import (
	"fmt"
	"io"

	"github.com/ts-fast/create-ts-fast/internal/scaffold"
	"github.com/ts-fast/create-ts-fast/internal/templates"
)

// printTemplates lists template ids with their descriptions, aligned.
func printTemplates(w io.Writer, c *templates.Catalog) {
	width := c.Width()
	for _, d := range c.List() {
		if d.Description == "" {
			fmt.Fprintf(w, "  %s\n", d.ID)
			continue
		}
		fmt.Fprintf(w, "  %-*s  %s\n", width, d.ID, SubtitleStyle.Render(d.Description))
	}
}

// printNextSteps tells the user how to enter and start the new project.
func printNextSteps(w io.Writer, res *scaffold.Result) {
	fmt.Fprintf(w, "\n%s\n\n", TitleStyle.Render("Done. Now run:"))
	if res.CDPath != "" {
		fmt.Fprintf(w, "  %s\n", CmdStyle.Render("cd "+res.CDPath))
	}
	for _, c := range res.PackageManager.Commands() {
		fmt.Fprintf(w, "  %s\n", CmdStyle.Render(c))
	}
	fmt.Fprintln(w)
}
