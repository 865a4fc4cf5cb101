package hamming

import (
	"context"
	"runtime"

	"github.com/nathanhack/bersim/bitstream"
	"github.com/nathanhack/threadpool"
)

//BlocksPerChunk is the number of blocks handed to a worker at a time.
const BlocksPerChunk = 4096

//EncodeParallel is Encode with the blocks split into chunks and spread over threads
// workers (0 means the number of CPUs). The result is identical to Encode.
func (c *Codec) EncodeParallel(ctx context.Context, data bitstream.Bits, threads int) (bitstream.Bits, error) {
	if err := bitstream.Validate(data); err != nil {
		return nil, err
	}
	codeword := make(bitstream.Bits, EncodedLength(len(data)))

	err := forEachChunk(ctx, len(codeword)/CodewordLength, threads, func(from, to int) {
		c.encodeRange(data, codeword, from, to)
	})
	if err != nil {
		return nil, err
	}
	return codeword, nil
}

//DecodeParallel is Decode with the blocks split into chunks and spread over threads
// workers (0 means the number of CPUs). The result is identical to Decode.
func (c *Codec) DecodeParallel(ctx context.Context, received bitstream.Bits, threads int) (bitstream.Bits, error) {
	if err := bitstream.Validate(received); err != nil {
		return nil, err
	}
	message := make(bitstream.Bits, DecodedLength(len(received)))

	err := forEachChunk(ctx, len(message)/MessageLength, threads, func(from, to int) {
		c.decodeRange(received, message, nil, from, to)
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

//forEachChunk calls work for every [from,to) chunk of blocks. Chunks write to
// disjoint parts of the output so no locking is needed.
func forEachChunk(ctx context.Context, blocks, threads int, work func(from, to int)) error {
	chunks := (blocks + BlocksPerChunk - 1) / BlocksPerChunk
	if chunks <= 1 {
		work(0, blocks)
		return ctx.Err()
	}

	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	pool := threadpool.NewFixedSize(ctx, threads, chunks)
	for i := 0; i < chunks; i++ {
		from := i * BlocksPerChunk
		to := from + BlocksPerChunk
		if to > blocks {
			to = blocks
		}
		pool.Add(func() { work(from, to) })
	}
	pool.Wait()

	return ctx.Err()
}
