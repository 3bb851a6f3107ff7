package main

import (
	"context"
	"log"
	"time"

	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/bridge"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/config"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/logging"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/robot"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/robot/qisidecar"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/robot/sim"
)

func main() {
	cfg := config.Load()
	logger := logging.Init("bridge")

	var speaker robot.Speaker
	switch cfg.RobotMode {
	case "sidecar":
		client := qisidecar.New(cfg.SidecarURL)
		// Spawn the qi helper when configured; otherwise assume it is
		// already running (e.g. started from Choregraphe by hand).
		if cfg.QIPython != "" && cfg.QIHelperScript != "" {
			stop, err := client.StartHelper(cfg.QIPython, cfg.QIHelperScript)
			if err != nil {
				logger.Warn("could not start qi helper, expecting an external one", "error", err)
			} else {
				defer stop()
				logger.Info("qi helper started", "script", cfg.QIHelperScript)
			}
		}
		speaker = client
	default:
		logger.Info("running in simulation mode, no robot connection")
		speaker = sim.New(logger)
	}

	// A dead robot must not keep the bridge down: start anyway and let
	// /reconnect retry later.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := speaker.Connect(ctx); err != nil {
		logger.Warn("could not connect to Pepper, starting anyway", "error", err)
	} else {
		logger.Info("connected to Pepper", "ip", cfg.PepperIP, "port", cfg.PepperPort)
	}
	cancel()

	app := bridge.NewServer(speaker, cfg.PepperIP, cfg.PepperPort, logger).App()
	logger.Info("bridge listening", "port", cfg.BridgePort)
	if err := app.Listen(":" + cfg.BridgePort); err != nil {
		log.Fatalf("bridge stopped: %v", err)
	}
}
