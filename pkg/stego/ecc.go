package stego

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/reedsolomon"
)

// Reed-Solomon configuration for the optional error-correction envelope.
const (
	rsDataShards   = 4
	rsParityShards = 2

	shardChecksumSize = 4
)

// AddErrorCorrection wraps data in a Reed-Solomon envelope. Every shard is
// prefixed with its CRC-32 so that damaged shards can be located and rebuilt
// from parity.
//
// Envelope: (rsDataShards+rsParityShards) x [crc32 (4) | shard], where the
// data shards hold a 4 byte big-endian length followed by data and zero
// padding.
func AddErrorCorrection(data []byte) ([]byte, error) {
	enc, err := reedsolomon.New(rsDataShards, rsParityShards)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, intSize+len(data))
	binary.BigEndian.PutUint32(payload, uint32(len(data)))
	copy(payload[intSize:], data)

	shardSize := (len(payload) + rsDataShards - 1) / rsDataShards
	shards := make([][]byte, rsDataShards+rsParityShards)
	for i := range shards {
		shards[i] = make([]byte, shardSize)
		if i < rsDataShards {
			start := min(i*shardSize, len(payload))
			end := min(start+shardSize, len(payload))
			copy(shards[i], payload[start:end])
		}
	}

	if err := enc.Encode(shards); err != nil {
		return nil, err
	}

	output := make([]byte, 0, len(shards)*(shardChecksumSize+shardSize))
	for _, shard := range shards {
		output = binary.BigEndian.AppendUint32(output, crc32.ChecksumIEEE(shard))
		output = append(output, shard...)
	}
	return output, nil
}

// RemoveErrorCorrection unwraps an envelope built by AddErrorCorrection,
// rebuilding damaged shards when possible. It returns the original data and
// the number of shards that had to be rebuilt.
func RemoveErrorCorrection(envelope []byte) ([]byte, int, error) {
	total := rsDataShards + rsParityShards
	if len(envelope) == 0 || len(envelope)%total != 0 {
		return nil, 0, fmt.Errorf("%w: envelope size %d is not a multiple of %d", ErrUnrecoverable, len(envelope), total)
	}
	chunk := len(envelope) / total
	if chunk <= shardChecksumSize {
		return nil, 0, fmt.Errorf("%w: envelope too short", ErrUnrecoverable)
	}

	enc, err := reedsolomon.New(rsDataShards, rsParityShards)
	if err != nil {
		return nil, 0, err
	}

	shards := make([][]byte, total)
	damaged := 0
	for i := range shards {
		part := envelope[i*chunk : (i+1)*chunk]
		sum := binary.BigEndian.Uint32(part[:shardChecksumSize])
		shard := part[shardChecksumSize:]
		if crc32.ChecksumIEEE(shard) != sum {
			damaged++
			continue
		}
		shards[i] = append([]byte(nil), shard...)
	}

	if damaged > 0 {
		if err := enc.ReconstructData(shards); err != nil {
			return nil, damaged, fmt.Errorf("%w: %d damaged shards: %v", ErrUnrecoverable, damaged, err)
		}
	}

	var joined []byte
	for i := 0; i < rsDataShards; i++ {
		joined = append(joined, shards[i]...)
	}

	length := DecodeInt32(joined)
	if uint64(len(joined)) < intSize+uint64(length) {
		return nil, damaged, fmt.Errorf("%w: recovered length %d exceeds envelope", ErrUnrecoverable, length)
	}
	return joined[intSize : intSize+int(length)], damaged, nil
}

// DecodeErrorCorrected decodes a carrier whose payload was wrapped with
// AddErrorCorrection. A payload hash mismatch is not fatal as long as the
// damaged shards can be rebuilt; the number of rebuilt shards is returned.
func (e *Engine) DecodeErrorCorrected(carrier []byte) ([]byte, int, error) {
	envelope, err := e.DecodeUnverified(carrier)
	if err != nil && !errors.Is(err, ErrIntegrityMismatch) {
		return nil, 0, err
	}
	hashFailed := err != nil

	payload, repaired, err := RemoveErrorCorrection(envelope)
	if err != nil {
		if hashFailed {
			return nil, repaired, fmt.Errorf("%w: %w", ErrIntegrityMismatch, err)
		}
		return nil, repaired, fmt.Errorf("Reed-Solomon reconstruction failed: %w", err)
	}
	return payload, repaired, nil
}
