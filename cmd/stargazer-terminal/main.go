package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rs/zerolog/log"

	"github.com/stargazerhq/stargazer-terminal/internal/api"
	"github.com/stargazerhq/stargazer-terminal/internal/catalog"
	"github.com/stargazerhq/stargazer-terminal/internal/config"
	"github.com/stargazerhq/stargazer-terminal/internal/database"
	"github.com/stargazerhq/stargazer-terminal/internal/filter"
	"github.com/stargazerhq/stargazer-terminal/internal/logging"
	"github.com/stargazerhq/stargazer-terminal/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (default: stargazer.yaml if present)")
	apiURL := flag.String("api-url", "", "Review service base URL (overrides config)")
	user := flag.String("user", "", "Current user id (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}
	if *user != "" {
		cfg.API.UserID = *user
	}

	closeLog, err := logging.Init(cfg.Data.Dir, cfg.Log.Level)
	if err != nil {
		fmt.Printf("Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	dbPath := database.DBPath(cfg.Data.Dir)
	snapshots, err := catalog.NewRepository(dbPath)
	if err != nil {
		// The app works without the offline fallback
		log.Warn().Err(err).Msg("catalog snapshots unavailable")
		snapshots = nil
	}

	client := api.NewClient(cfg.API.BaseURL)
	zones := zone.New()

	model := ui.NewModel(ui.Options{
		Catalog:              client,
		Favorites:            client,
		Snapshots:            snapshots,
		BasemapDB:            dbPath,
		CurrentUser:          cfg.API.UserID,
		ItemsPerPage:         cfg.UI.ItemsPerPage,
		PageWindow:           cfg.UI.PageWindow,
		SearchAffectsMarkers: cfg.Filters.SearchAffectsMarkers,
		DefaultTab:           filter.Tab(cfg.Filters.DefaultTab),
		Zones:                zones,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
