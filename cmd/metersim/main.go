package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/campusgrid/metersim/cmd/flags"
	"github.com/campusgrid/metersim/fleet"
	"github.com/campusgrid/metersim/httpserver"
	"github.com/campusgrid/metersim/meter"
)

func main() {
	app := &cli.App{
		Name:  "metersim",
		Usage: "Simulate a fleet of smart energy meters with authenticated readings",
		Flags: append([]cli.Flag{
			flags.ListenAddrFlag,
			flags.MetersFlag,
			flags.FleetSeedFlag,
		}, flags.CommonFlags...),
		Action: runServer,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runServer(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)

	f, err := buildFleet(cCtx.String(flags.FleetSeedFlag.Name), cCtx.String(flags.MetersFlag.Name))
	if err != nil {
		return err
	}

	status := f.Status()
	logger.Info("Fleet initialized",
		"totalMeters", status.TotalMeters,
		"producers", status.Producers,
		"consumers", status.Consumers,
	)

	srv, err := httpserver.New(flags.ConfigureServer(cCtx, logger), httpserver.NewHandler(f, logger))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	srv.RunInBackground()

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
	<-exit

	logger.Info("Shutting down")
	srv.Shutdown()
	return nil
}

// buildFleet creates the initial fleet from a spec such as
// "solar:2,hostel:2,lab:1". A bare class name counts as one meter.
func buildFleet(seedHex, spec string) (*fleet.Fleet, error) {
	var (
		f   *fleet.Fleet
		err error
	)
	if seedHex != "" {
		seed, decodeErr := hex.DecodeString(seedHex)
		if decodeErr != nil {
			return nil, fmt.Errorf("could not parse fleet seed: %w", decodeErr)
		}
		f, err = fleet.NewWithSeed(seed)
		if err != nil {
			return nil, err
		}
	} else {
		f = fleet.New()
	}

	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, countStr, hasCount := strings.Cut(entry, ":")
		count := 1
		if hasCount {
			count, err = strconv.Atoi(countStr)
			if err != nil || count < 1 {
				return nil, fmt.Errorf("invalid meter count in %q", entry)
			}
		}

		class, err := meter.ParseClass(name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < count; i++ {
			if _, err := f.AddMeter(class, ""); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
