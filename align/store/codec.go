// Package store provides durable align.TableStore backends: a directory of
// compressed table files and a SQLite database. Both persist tables through
// Codec.
package store

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/blockalign/blockalign/align"
)

// tableRecord is the persisted form of a WeightTable.
type tableRecord struct {
	BlockLength int           `cbor:"1,keyasint"`
	Alphabet    string        `cbor:"2,keyasint"`
	Pairs       []pairRecord  `cbor:"3,keyasint"`
	Scoring     scoringRecord `cbor:"4,keyasint"`
}

// scoringRecord identifies the constants the weights were computed with.
// Records written before it existed decode to all zeros, which matches no
// valid Scoring.
type scoringRecord struct {
	_        struct{} `cbor:",toarray"`
	Match    int
	Mismatch int
	Gap      int
}

type pairRecord struct {
	_     struct{} `cbor:",toarray"`
	A     string
	B     string
	Score int
}

// Codec encodes weight tables as deterministic CBOR compressed with zstd.
// The same table always encodes to the same bytes.
type Codec struct {
	encMode cbor.EncMode
	decMode cbor.DecMode
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCodec returns a ready Codec. Call Close when done with it.
func NewCodec() (*Codec, error) {
	encMode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("create cbor encoder: %w", err)
	}
	decMode, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("create cbor decoder: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &Codec{
		encMode: encMode,
		decMode: decMode,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Encode serializes t.
func (c *Codec) Encode(t *align.WeightTable) ([]byte, error) {
	pairs := t.Pairs()
	s := t.Scoring()
	rec := tableRecord{
		BlockLength: t.BlockLength(),
		Alphabet:    string(t.Alphabet()),
		Pairs:       make([]pairRecord, len(pairs)),
		Scoring:     scoringRecord{Match: s.Match, Mismatch: s.Mismatch, Gap: s.Gap},
	}
	for i, p := range pairs {
		rec.Pairs[i] = pairRecord{A: p.A, B: p.B, Score: p.Score}
	}

	raw, err := c.encMode.Marshal(&rec)
	if err != nil {
		return nil, fmt.Errorf("encode weight table: %w", err)
	}
	return c.encoder.EncodeAll(raw, nil), nil
}

// Decode parses data produced by Encode.
func (c *Codec) Decode(data []byte) (*align.WeightTable, error) {
	raw, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress weight table: %w", err)
	}
	var rec tableRecord
	if err := c.decMode.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode weight table: %w", err)
	}

	t := align.NewWeightTable(rec.BlockLength, align.Scoring{
		Match:    rec.Scoring.Match,
		Mismatch: rec.Scoring.Mismatch,
		Gap:      rec.Scoring.Gap,
	})
	t.AddAlphabet([]rune(rec.Alphabet))
	for _, p := range rec.Pairs {
		t.Set(p.A, p.B, p.Score)
	}
	return t, nil
}

// Close releases the zstd encoder and decoder.
func (c *Codec) Close() error {
	c.decoder.Close()
	return c.encoder.Close()
}
