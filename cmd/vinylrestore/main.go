// Command vinylrestore runs the offline vinyl-restoration pipeline over a
// WAV file.
//
// Usage:
//
//	vinylrestore -click 0.3 -pop 0.3 input.wav output.wav
//	vinylrestore -manual -click-threshold 0.08 -pop-threshold 0.15 input.wav output.wav
//	vinylrestore -events events.json input.wav output.wav
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	restore "github.com/vinylcore/vinylrestore"
	"github.com/vinylcore/vinylrestore/internal/hostio"
	"github.com/vinylcore/vinylrestore/internal/telemetry"
)

const minRequiredArgs = 2

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		manual       = flag.Bool("manual", false, "Use manual thresholds instead of auto sensitivities")
		click        = flag.Float64("click", 0.3, "Auto mode: click sensitivity, 0..1")
		pop          = flag.Float64("pop", 0.3, "Auto mode: pop sensitivity, 0..1")
		denoise      = flag.Float64("denoise", 0.0, "Noise reduction amount, 0..1 (0 disables the spectral denoiser)")
		gentle       = flag.Bool("gentle-floor", false, "Scale the denoiser's reduction amount for less aggressive flooring")
		median       = flag.Bool("median-repair", false, "Use median repair instead of neighbor-blend as the interpolation fallback")
		decrackle    = flag.Bool("decrackle", false, "Enable the decrackle tier")
		decrackleAmt = flag.Float64("decrackle-intensity", 0.5, "Decrackle repair intensity, 0..1")
		multiband    = flag.Bool("multiband", true, "Enable multi-band transient detection")
		interp       = flag.Bool("interp", true, "Enable band-limited (Lanczos) interpolation repair")

		clickThreshold = flag.Float64("click-threshold", 0.05, "Manual mode: absolute click threshold")
		clickIntensity = flag.Float64("click-intensity", 0.8, "Manual mode: click repair intensity")
		popThreshold   = flag.Float64("pop-threshold", 0.15, "Manual mode: absolute pop threshold")
		popIntensity   = flag.Float64("pop-intensity", 0.85, "Manual mode: pop repair intensity")
		noiseFloor     = flag.Float64("noise-floor", 0.01, "Manual mode: absolute noise floor")

		eventsPath = flag.String("events", "", "Optional path to write detected events (.json or .csv by extension)")
		verbose    = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return fmt.Errorf("insufficient arguments")
	}
	inputPath, outputPath := args[0], args[1]

	logger, err := telemetry.New(*verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("decoding input", zap.String("path", inputPath))
	inFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer func() { _ = inFile.Close() }()

	buf, err := hostio.DecodeWAV(inFile)
	if err != nil {
		return fmt.Errorf("decoding WAV: %w", err)
	}

	settings := buildSettings(*manual, *click, *pop, *denoise, *gentle, *median,
		*decrackle, *decrackleAmt, *multiband, *interp,
		*clickThreshold, *clickIntensity, *popThreshold, *popIntensity, *noiseFloor)

	start := time.Now()
	result, err := restore.Process(&restore.Request{Input: buf, Settings: settings})
	if err != nil {
		return fmt.Errorf("processing: %w", err)
	}
	elapsed := time.Since(start)

	logger.Info("processing complete",
		zap.Duration("elapsed", elapsed),
		zap.Int("clicks", result.Diagnostics.ClicksDetected),
		zap.Int("pops", result.Diagnostics.PopsDetected),
		zap.Int("decrackles", result.Diagnostics.DecracklesDetected),
		zap.Float64("noiseFloor", result.Diagnostics.EstimatedNoiseFloor),
		zap.Float64("gainDb", result.Diagnostics.ProcessingGainDb))

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() { _ = outFile.Close() }()

	if err := hostio.EncodeWAV(outFile, result.Processed); err != nil {
		return fmt.Errorf("encoding WAV: %w", err)
	}

	if *eventsPath != "" {
		if err := writeEvents(*eventsPath, result, buf.SampleRate, buf.Channels); err != nil {
			return fmt.Errorf("writing events: %w", err)
		}
	}

	fmt.Printf("Restored %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Println(result.Diagnostics.String())

	return nil
}

func buildSettings(manual bool, click, pop, denoise float64, gentle, median, decrackle bool,
	decrackleAmt float64, multiband, interp bool,
	clickThreshold, clickIntensity, popThreshold, popIntensity, noiseFloor float64,
) restore.ProcessingSettings {
	if manual {
		return restore.ProcessingSettings{
			Manual: &restore.ManualSettings{
				ClickThreshold:                 clickThreshold,
				ClickIntensity:                 clickIntensity,
				PopThreshold:                   popThreshold,
				PopIntensity:                   popIntensity,
				NoiseFloor:                     noiseFloor,
				NoiseReductionAmount:           denoise,
				UseMedianRepair:                median,
				UseSpectralNoiseReduction:      gentle,
				UseMultiBandTransientDetection: multiband,
				UseDecrackle:                   decrackle,
				UseBandLimitedInterpolation:    interp,
				DecrackleIntensity:             decrackleAmt,
			},
		}
	}
	return restore.ProcessingSettings{
		Auto: &restore.AutoSettings{
			ClickSensitivity:               click,
			PopSensitivity:                 pop,
			NoiseReductionAmount:           denoise,
			UseMedianRepair:                median,
			UseSpectralNoiseReduction:      gentle,
			UseMultiBandTransientDetection: multiband,
			UseDecrackle:                   decrackle,
			UseBandLimitedInterpolation:    interp,
			DecrackleIntensity:             decrackleAmt,
		},
	}
}

func writeEvents(path string, result *restore.ProcessingResult, sampleRate, channels int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	meta := hostio.EventMetadata{
		SampleRate: sampleRate,
		Channels:   channels,
		FrameCount: result.Processed.FrameCount(),
	}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return hostio.WriteEventsCSV(f, result.Artifacts.Events, meta)
	}
	return hostio.WriteEventsJSON(f, result.Artifacts.Events, meta)
}
