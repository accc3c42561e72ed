package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/spf13/cobra"

	"github.com/fretsense/fretsense/internal/audio"
	"github.com/fretsense/fretsense/internal/buttons"
	"github.com/fretsense/fretsense/internal/capture"
	"github.com/fretsense/fretsense/internal/config"
	"github.com/fretsense/fretsense/internal/session"
	"github.com/fretsense/fretsense/internal/status"
)

var (
	runSimulate    bool
	runFrequencies []float64
	runMode        string
	runAudio       string
	runStatusAddr  string
)

func init() {
	runCmd.Flags().BoolVar(&runSimulate, "simulate", false,
		"use a scripted frequency source instead of the microphone")
	runCmd.Flags().Float64SliceVar(&runFrequencies, "frequencies", nil,
		"scripted frequencies in Hz for --simulate, one per poll")
	runCmd.Flags().StringVar(&runMode, "mode", "play",
		"mode switch position: play (reference tone first) or listen")
	runCmd.Flags().StringVar(&runAudio, "audio", "",
		"audio backend: console, synth or midi (default from config)")
	runCmd.Flags().StringVar(&runStatusAddr, "status-addr", "",
		"serve the status endpoint on this address (default from config)")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the tuner loop",
	Long: `Runs the tuner against the configured collaborators. Keys 1-6 on
stdin select a string; holding the key (key repeat) holds the button.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTuner()
	},
}

func runTuner() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if runAudio != "" {
		cfg.Audio.Backend = config.AudioBackend(runAudio)
	}
	if runStatusAddr != "" {
		cfg.Status.Enabled = true
		cfg.Status.Addr = runStatusAddr
	}

	output, err := audio.NewOutput(cfg.Audio)
	if err != nil {
		return err
	}
	defer output.Close()

	var source session.FrequencySource
	if runSimulate {
		source = capture.NewScripted(runFrequencies...)
	} else {
		portaudio.Initialize()
		defer portaudio.Terminate()

		detector := capture.NewDetector(cfg.Capture.DeviceName, cfg.Capture.MinAmplitude)
		if err := detector.Start(); err != nil {
			return err
		}
		defer detector.Close()
		source = detector
	}

	mode := session.ModePlayTone
	if runMode == "listen" {
		mode = session.ModeListenOnly
	}

	engine := session.New(
		cfg.Params(),
		buttons.NewStdin(os.Stdin),
		source,
		output,
		session.ModeSwitchFunc(func() session.Mode { return mode }),
	)

	if cfg.Status.Enabled {
		server := status.NewServer(engine, cfg.Status.Addr)
		server.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			server.Shutdown(ctx)
		}()
		log.Printf("status endpoint on http://%s/api/status", cfg.Status.Addr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("tuner ready: press 1-6 to select a string, ctrl-c to quit")

	// Poll well under half the smallest beep interval (100 ms).
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ticker.C:
			engine.Update(time.Since(start).Milliseconds())
		case <-ctx.Done():
			output.StopAll()
			return nil
		}
	}
}
