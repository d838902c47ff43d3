package compressor

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// CompressText wraps data in an lz4 frame.
func CompressText(data []byte) ([]byte, error) {
	var compressed bytes.Buffer
	writer := lz4.NewWriter(&compressed)
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("compression failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("compression failed: %v", err)
	}
	return compressed.Bytes(), nil
}

func DecompressText(data []byte) ([]byte, error) {
	reader := lz4.NewReader(bytes.NewReader(data))
	var decompressed bytes.Buffer

	if _, err := io.Copy(&decompressed, reader); err != nil {
		return nil, fmt.Errorf("decompression failed: %v", err)
	}

	return decompressed.Bytes(), nil
}
