package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
)

// printMarkdown renders markdown for the terminal. Raw markdown is printed if it cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		log.Debug().Err(err).Msg("cannot create markdown renderer")
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.Debug().Err(err).Msg("cannot render markdown")
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
