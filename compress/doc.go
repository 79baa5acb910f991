// Package compress provides the payload codecs a BDIO block may declare in its
// header.
//
// Every block header carries a format.CompressionType. Writers compress the
// encoded payload with the matching Codec and record both the stored and the
// raw size; readers look the codec up with GetCodec and decompress before
// decoding:
//
//	codec, err := compress.GetCodec(header.Flag.Compression)
//	if err != nil {
//	    return err
//	}
//	payload, err := codec.Decompress(stored)
//
// Supported algorithms:
//   - None: payload stored as-is
//   - Zlib: RFC 1950 stream, the same deflate family ROOT files use
//   - Zstd: Zstandard frames (pure Go by default, cgo gozstd with -tags gozstd)
//   - S2: Snappy compatible block format
//   - LZ4: LZ4 block format without frame header
//   - XZ: LZMA2 in an .xz stream, for archival
//
// All codecs are stateless values backed by pooled encoders and are safe for
// concurrent use.
package compress
