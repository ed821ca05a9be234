package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/pkg/profile"
	"github.com/samber/lo"

	"github.com/cricklet/magicchess/internal/config"
	. "github.com/cricklet/magicchess/internal/helpers"
	"github.com/cricklet/magicchess/internal/movegen"
	"github.com/cricklet/magicchess/internal/server"
)

// usage: server [profile] [config.yaml]
func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	args := os.Args[1:]

	if lo.Contains(args, "profile") {
		p := profile.Start(profile.ProfilePath("data/CmdServerMain"))
		defer p.Stop()
	}
	args = lo.Without(args, "profile")

	configPath := ""
	if len(args) > 0 {
		configPath = args[0]
	}

	cfg, err := config.Load(configPath)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	err = SetLogLevel(cfg.LogLevel)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, "log level:", err)
		os.Exit(1)
	}

	generator, err := movegen.NewDefault()
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err.String())
		os.Exit(1)
	}

	err = server.NewServer(generator, cfg, DefaultLogger).ListenAndServe()
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
