// Command gallery browses the portfolio projects in the terminal.
package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vizalsl/portfolio/internal/config"
	"github.com/vizalsl/portfolio/internal/content"
	"github.com/vizalsl/portfolio/internal/tui"
)

func main() {
	var cfg struct {
		ContentPath string `env:"PORTFOLIO_CONTENT_PATH"`
	}
	if err := config.ParseEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	site, err := content.LoadFile(cfg.ContentPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading content: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.NewApp(site), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
