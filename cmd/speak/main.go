// Command speak synthesizes one phrase with the configured backend and writes it to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/satriahrh/speechsuite/adapters/catalog"
	"github.com/satriahrh/speechsuite/adapters/tts"
	"github.com/satriahrh/speechsuite/domain/entities"
	"github.com/satriahrh/speechsuite/internal/config"
	"github.com/satriahrh/speechsuite/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	text := flag.String("text", "Hello! This is a short demonstration of the speech service.", "text to speak")
	voice := flag.String("voice", catalog.DefaultVoice, "catalog voice identifier")
	rate := flag.Float64("rate", cfg.DefaultRate, "speaking rate, 0.5 to 2.0")
	volume := flag.Float64("volume", cfg.DefaultVolume, "volume, 0.0 to 1.0")
	output := flag.String("out", "speak_output.mp3", "output file")
	play := flag.Bool("play", false, "play the file when done")
	flag.Parse()

	// Create logger
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	backend, err := tts.NewBackend(cfg.Backend, cfg.EdgeTTSURL, logger)
	if err != nil {
		logger.Fatal("Failed to create TTS backend", zap.Error(err))
	}

	synthesis := usecase.NewSynthesisService(catalog.New(), backend, cfg.RequestTimeout(), cfg.MaxTextLength, logger)

	audio, err := usecase.Retry(context.Background(), usecase.RetryPolicy{
		Retries: cfg.SynthesisRetries,
		Backoff: cfg.RetryBackoff,
	}, logger, func(ctx context.Context) ([]byte, error) {
		return synthesis.Synthesize(ctx, entities.SynthesisRequest{
			Text:            *text,
			VoiceIdentifier: *voice,
			Rate:            *rate,
			Volume:          *volume,
		})
	})
	if err != nil {
		logger.Fatal("Failed to convert text to speech", zap.Error(err))
	}

	if err := os.WriteFile(*output, audio, 0o644); err != nil {
		logger.Fatal("Failed to write output file", zap.Error(err))
	}

	fmt.Printf("Audio saved to %s (%s)\n", *output, humanize.Bytes(uint64(len(audio))))

	if *play {
		if err := playAudioFile(*output, logger); err != nil {
			logger.Warn("Failed to play audio automatically", zap.Error(err))
		}
	}
}

// audioPlayer represents an audio player command and its arguments
type audioPlayer struct {
	command string
	args    []string
}

var audioPlayers = []audioPlayer{
	{"mpg123", []string{"-q"}},
	{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	{"afplay", nil},
}

// playAudioFile tries each known mp3 player on PATH in turn
func playAudioFile(filename string, logger *zap.Logger) error {
	for _, player := range audioPlayers {
		if _, err := exec.LookPath(player.command); err != nil {
			continue
		}

		args := append(append([]string{}, player.args...), filename)
		logger.Info("Attempting to play audio", zap.String("player", player.command))

		err := exec.Command(player.command, args...).Run()
		if err == nil {
			return nil
		}
		logger.Debug("Player failed", zap.String("player", player.command), zap.Error(err))
	}

	return fmt.Errorf("no suitable audio player found")
}
