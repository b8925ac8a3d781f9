package storage

import (
	"fmt"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

// Блобы (состояние сейва, вытесненные чанки) кодируются детерминированным CBOR и сжимаются zstd.
var (
	codecOnce sync.Once
	encMode   cbor.EncMode
	zEncoder  *zstd.Encoder
	zDecoder  *zstd.Decoder
	codecErr  error
)

func initCodec() {
	codecOnce.Do(func() {
		var err error
		if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
			codecErr = fmt.Errorf("cbor enc mode: %w", err)
			return
		}
		if zEncoder, err = zstd.NewWriter(nil); err != nil {
			codecErr = fmt.Errorf("zstd encoder: %w", err)
			return
		}
		if zDecoder, err = zstd.NewReader(nil); err != nil {
			codecErr = fmt.Errorf("zstd decoder: %w", err)
		}
	})
}

// EncodeBlob сериализует значение в сжатый CBOR.
func EncodeBlob(v any) ([]byte, error) {
	initCodec()
	if codecErr != nil {
		return nil, codecErr
	}
	raw, err := encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode blob: %w", err)
	}
	return zEncoder.EncodeAll(raw, nil), nil
}

// DecodeBlob восстанавливает значение, записанное EncodeBlob.
func DecodeBlob(data []byte, v any) error {
	initCodec()
	if codecErr != nil {
		return codecErr
	}
	raw, err := zDecoder.DecodeAll(data, nil)
	if err != nil {
		return fmt.Errorf("decompress blob: %w", err)
	}
	if err := cbor.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode blob: %w", err)
	}
	return nil
}
