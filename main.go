package main

import (
	"os"
	"runtime"

	"github.com/backusd/cubeworld/cmd"
	"github.com/urfave/cli"
)

func init() {
	// GLFW and OpenGL calls must be made from the main thread.
	runtime.LockOSThread()
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	connectionFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "address, a",
			Usage: "server address (overrides CUBEWORLD_SERVER_ADDRESS)",
		},
		cli.IntFlag{
			Name:  "port, p",
			Usage: "server port (overrides CUBEWORLD_SERVER_PORT)",
		},
	}

	displayFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Usage: "window width",
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "window height",
		},
		cli.BoolFlag{
			Name:  "fullscreen",
			Usage: "open a full screen window on the primary monitor",
		},
		cli.BoolTFlag{
			Name:  "vsync",
			Usage: "synchronize buffer swaps with the display refresh rate",
		},
		cli.StringFlag{
			Name:  "title",
			Usage: "window title",
		},
	}

	app := cli.NewApp()
	app.Name = "cubeworld"
	app.Usage = "networked 3D world client"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "open the client window and join the world",
			Description: `
Open the client window, connect to the world server and run the frame loop
until the window is closed or the cancel key (Escape) is pressed.

Settings are read from CUBEWORLD_* environment variables; command flags take
precedence over the environment.`,
			Flags:  append(connectionFlags, displayFlags...),
			Action: cmd.Run,
		},
		{
			Name:   "config",
			Usage:  "print the effective configuration",
			Flags:  append(append([]cli.Flag{}, connectionFlags...), displayFlags...),
			Action: cmd.ShowConfig,
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
