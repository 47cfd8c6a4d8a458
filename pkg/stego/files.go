package stego

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

type ConcealArgs struct {
	ImagePath string
	Output    string
	Message   string
	// File overrides Message. "-" reads from Stdin.
	File  string
	Stdin io.Reader

	// Seed takes precedence over SeedString. With neither, a fresh seed is
	// generated and reported in ConcealResult.
	Seed       *uint64
	SeedString string

	Force     bool
	Overwrite bool
	ECC       bool
	Progress  bool
}

type ConcealResult struct {
	Seed          uint64
	SeedGenerated bool
	PayloadSize   int
	EmbeddedSize  int
}

type RevealArgs struct {
	ImagePath  string
	Seed       *uint64
	SeedString string
	ECC        bool
	Progress   bool

	// Output is written when set, otherwise the payload goes to Writer.
	Output    string
	Overwrite bool
	Writer    io.Writer
}

// Conceal hides a message or file in the bitmap at ImagePath and writes the
// result to Output.
func Conceal(args *ConcealArgs) (*ConcealResult, error) {
	if args.Output == "" {
		return nil, errors.New("an output image path is required")
	}
	if err := checkOutput(args.Output, args.Overwrite); err != nil {
		return nil, err
	}

	var payload []byte
	if args.File != "" {
		var err error
		payload, err = readInput(args.File, args.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
	} else {
		payload = []byte(args.Message)
	}

	image, err := os.ReadFile(args.ImagePath)
	if err != nil {
		return nil, err
	}

	result := &ConcealResult{PayloadSize: len(payload)}

	if args.ECC {
		payload, err = AddErrorCorrection(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to apply Reed-Solomon encoding: %w", err)
		}
	}
	result.EmbeddedSize = len(payload)

	opts := []Option{}
	if args.Progress {
		opts = append(opts, WithProgress(newProgressBar(len(payload), "encoding")))
	}
	engine := NewEngine(opts...)
	result.SeedGenerated = applySeed(engine, args.Seed, args.SeedString)
	result.Seed = engine.Seed()

	encoded, err := engine.Encode(image, payload, args.Force)
	if err != nil {
		return nil, err
	}

	if err := writeOutput(args.Output, encoded, args.Overwrite); err != nil {
		return nil, err
	}

	log.Debug().
		Str("output", args.Output).
		Int("payload", result.PayloadSize).
		Int("embedded", result.EmbeddedSize).
		Msg("Encoded payload into the image")

	return result, nil
}

// Reveal extracts the payload hidden in the bitmap at ImagePath.
func Reveal(args *RevealArgs) ([]byte, error) {
	if args.Seed == nil && args.SeedString == "" {
		return nil, errors.New("a seed value or seed string is required to decode")
	}
	if args.Output != "" {
		if err := checkOutput(args.Output, args.Overwrite); err != nil {
			return nil, err
		}
	}

	image, err := os.ReadFile(args.ImagePath)
	if err != nil {
		return nil, err
	}

	opts := []Option{}
	if args.Progress {
		if info, err := Inspect(image); err == nil && info.Signed {
			opts = append(opts, WithProgress(newProgressBar(info.PayloadLength, "decoding")))
		}
	}
	engine := NewEngine(opts...)
	applySeed(engine, args.Seed, args.SeedString)

	var payload []byte
	if args.ECC {
		var repaired int
		payload, repaired, err = engine.DecodeErrorCorrected(image)
		if err == nil && repaired > 0 {
			log.Warn().Int("shards", repaired).Msg("Payload hash mismatch, recovered data from parity shards")
		}
	} else {
		payload, err = engine.Decode(image)
	}
	if err != nil {
		return nil, err
	}

	if args.Output != "" {
		if err := writeOutput(args.Output, payload, args.Overwrite); err != nil {
			return nil, err
		}
	} else if args.Writer != nil {
		if _, err := args.Writer.Write(payload); err != nil {
			return nil, err
		}
	}
	return payload, nil
}

// applySeed configures the engine seed and reports whether it was generated.
func applySeed(engine *Engine, value *uint64, text string) bool {
	switch {
	case value != nil:
		engine.SetSeed(*value)
	case text != "":
		engine.SetSeedString(text)
	default:
		return true
	}
	return false
}

func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		int64(total),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
	)
}
