package stego

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// progressChunk is the number of payload bytes packed between progress
// updates.
const progressChunk = 64 << 10

// Progress receives the number of payload bytes processed since the last
// call. *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(n int) error
}

// Engine hides payloads in bitmap carriers and recovers them.
//
// The seed is the only state carried between calls. An Engine must not be
// shared by concurrent operations; construct one per encode or decode.
type Engine struct {
	seed     uint64
	seeded   bool
	entropy  EntropyFunc
	logger   zerolog.Logger
	progress Progress
}

type Option func(*Engine)

// WithEntropy replaces the time based source used for fresh seeds.
func WithEntropy(entropy EntropyFunc) Option {
	return func(e *Engine) { e.entropy = entropy }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func WithProgress(p Progress) Option {
	return func(e *Engine) { e.progress = p }
}

// WithSeed sets the initial seed instead of drawing one from entropy.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = seed
		e.seeded = true
	}
}

// NewEngine returns an Engine whose seed is drawn once from its entropy
// source, unless WithSeed is given.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		entropy: TimeEntropy(time.Now),
		logger:  log.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.seeded {
		e.seed = e.entropy()
	}
	return e
}

func (e *Engine) Seed() uint64 {
	return e.seed
}

func (e *Engine) SetSeed(seed uint64) {
	e.seed = seed
}

// SetSeedString derives the seed from text. An empty text draws a fresh seed
// from the engine's entropy source; read it back with Seed before decoding.
func (e *Engine) SetSeedString(text string) {
	e.seed = DeriveSeed(text, e.entropy)
}

// Encode hides payload in carrier and returns carrier. The carrier is
// modified in place; callers should use the returned slice and treat the
// input as consumed.
//
// Every precondition is checked before the first write, so a failed Encode
// leaves carrier untouched.
func (e *Engine) Encode(carrier []byte, payload []byte, force bool) ([]byte, error) {
	if !isBitmap(carrier) {
		return nil, ErrInvalidContainer
	}
	if hasSignature(carrier) && !force {
		return nil, ErrSignatureAlreadyPresent
	}

	layout, err := ResolveLayout(carrier)
	if err != nil {
		return nil, err
	}

	offset, err := ComputeOffset(layout, len(carrier), len(payload), e.seed)
	if err != nil {
		return nil, err
	}

	e.logger.Debug().
		Int("dibHeaderSize", layout.DIBHeaderSize).
		Int("headerBase", layout.Base).
		Int("length", len(payload)).
		Int("offset", offset).
		Uint64("seed", e.seed).
		Msg("Encoding payload")

	writeSignature(carrier)

	length := EncodeInt32(uint32(len(payload)))
	Pack(carrier, layout.LengthAt(), length[:])

	stored := EncodeInt32(uint32(offset))
	Pack(carrier, layout.OffsetAt(), stored[:])

	Pack(carrier, layout.HashAt(), Digest(payload))

	e.pack(carrier, offset, payload)

	return carrier, nil
}

// Decode recovers the payload hidden in carrier using the engine's seed,
// which must equal the seed used to encode it.
func (e *Engine) Decode(carrier []byte) ([]byte, error) {
	payload, err := e.DecodeUnverified(carrier)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// DecodeUnverified behaves like Decode but, when only the integrity check
// fails, returns the extracted bytes together with ErrIntegrityMismatch.
func (e *Engine) DecodeUnverified(carrier []byte) ([]byte, error) {
	if !isBitmap(carrier) {
		return nil, ErrInvalidContainer
	}
	if !hasSignature(carrier) {
		return nil, fmt.Errorf("decode error: %w", ErrInvalidSignature)
	}

	layout, err := ResolveLayout(carrier)
	if err != nil {
		return nil, err
	}

	length := int(DecodeInt32(Unpack(carrier, layout.LengthAt(), intSize)))
	offset, err := ComputeOffset(layout, len(carrier), length, e.seed)
	if err != nil {
		return nil, fmt.Errorf("decode error: stored length %d: %w", length, err)
	}

	stored := int(DecodeInt32(Unpack(carrier, layout.OffsetAt(), intSize)))
	if stored != offset {
		return nil, fmt.Errorf("decode error: %w (stored %d, computed %d)", ErrOffsetMismatch, stored, offset)
	}

	e.logger.Debug().
		Int("headerBase", layout.Base).
		Int("length", length).
		Int("offset", offset).
		Msg("Decoding payload")

	hash := Unpack(carrier, layout.HashAt(), DigestSize)
	payload := e.unpack(carrier, offset, length)

	if !VerifyDigest(payload, hash) {
		return payload, fmt.Errorf("decode error: %w", ErrIntegrityMismatch)
	}
	return payload, nil
}

func (e *Engine) pack(carrier []byte, offset int, payload []byte) {
	if e.progress == nil {
		Pack(carrier, offset, payload)
		return
	}
	for start := 0; start < len(payload); start += progressChunk {
		end := min(start+progressChunk, len(payload))
		Pack(carrier, offset+packedSize(start), payload[start:end])
		e.progress.Add(end - start)
	}
}

func (e *Engine) unpack(carrier []byte, offset int, length int) []byte {
	if e.progress == nil {
		return Unpack(carrier, offset, length)
	}
	out := make([]byte, 0, length)
	for start := 0; start < length; start += progressChunk {
		end := min(start+progressChunk, length)
		out = append(out, Unpack(carrier, offset+packedSize(start), end-start)...)
		e.progress.Add(end - start)
	}
	return out
}
