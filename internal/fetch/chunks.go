package fetch

import (
	"context"
	"errors"
	"io"
)

// DefaultChunkSize is the read size used between progress callbacks
const DefaultChunkSize = 64 * 1024

// CopyChunks copies src to dst one chunk at a time, calling onProgress after each
// chunk is written. ctx is checked before every read; on cancellation ctx.Err()
// is returned unwrapped. Read and write failures are reported as ErrTransfer.
func CopyChunks(ctx context.Context, dst io.Writer, src io.Reader, total int64, chunkSize int, onProgress ProgressFunc) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	buf := make([]byte, chunkSize)

	var received int64
	for {
		if err := ctx.Err(); err != nil {
			return received, err
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			written, writeErr := dst.Write(buf[:n])
			received += int64(written)
			if writeErr != nil {
				return received, transferError("write chunk", writeErr)
			}
			if written != n {
				return received, transferError("write chunk", io.ErrShortWrite)
			}
			if onProgress != nil {
				onProgress(received, total)
			}
		}

		if errors.Is(readErr, io.EOF) {
			return received, nil
		}
		if readErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return received, ctxErr
			}
			return received, transferError("read chunk", readErr)
		}
	}
}
