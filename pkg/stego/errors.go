package stego

import "errors"

var (
	// ErrInvalidContainer is returned when the carrier is not a bitmap or its
	// headers are too short to hold the metadata region.
	ErrInvalidContainer = errors.New("invalid file format: only bitmap files are supported")

	// ErrSignatureAlreadyPresent is returned by Encode when the carrier already
	// holds hidden data and force was not requested.
	ErrSignatureAlreadyPresent = errors.New("signature detected: set force to reuse this image, previous data will be lost")

	ErrInvalidSignature  = errors.New("invalid signature")
	ErrCapacityExceeded  = errors.New("image is not large enough to hide the payload")
	ErrOffsetMismatch    = errors.New("stored offset does not match computed offset")
	ErrIntegrityMismatch = errors.New("payload hash mismatch")

	// ErrUnrecoverable is returned when an error-correction envelope has lost
	// more shards than it has parity for.
	ErrUnrecoverable = errors.New("payload cannot be reconstructed")

	ErrOutputExists = errors.New("output file already exists: set overwrite to replace it")
)
