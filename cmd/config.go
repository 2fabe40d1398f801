package cmd

import (
	"bytes"
	"fmt"

	"github.com/backusd/cubeworld/config"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Load the configuration from the environment and apply command flag
// overrides.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	if ctx.IsSet("address") {
		cfg.Address = ctx.String("address")
	}
	if ctx.IsSet("port") {
		cfg.Port = ctx.Int("port")
	}
	if ctx.IsSet("width") {
		cfg.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Height = ctx.Int("height")
	}
	if ctx.IsSet("title") {
		cfg.Title = ctx.String("title")
	}
	if ctx.IsSet("fullscreen") {
		cfg.FullScreen = ctx.Bool("fullscreen")
	}
	if ctx.IsSet("vsync") {
		cfg.VSync = ctx.BoolT("vsync")
	}

	return cfg, cfg.Validate()
}

// Display the effective configuration.
func ShowConfig(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	setupLogging(ctx, cfg.LogLevel)
	if err != nil {
		logger.Error(err)
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Setting", "Value"})
	table.AppendBulk([][]string{
		{"server", cfg.Endpoint()},
		{"path", cfg.Path},
		{"dial timeout", cfg.DialTimeout.String()},
		{"window", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)},
		{"title", cfg.Title},
		{"full screen", fmt.Sprintf("%t", cfg.FullScreen)},
		{"vsync", fmt.Sprintf("%t", cfg.VSync)},
		{"clipping", fmt.Sprintf("%g - %g", cfg.ScreenNear, cfg.ScreenDepth)},
		{"log level", cfg.LogLevel},
		{"otel endpoint", cfg.OTelEndpoint},
	})
	table.Render()

	logger.Noticef("configuration\n%s", buf.String())
	return nil
}
