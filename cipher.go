// Package qpsc implements the keystream-generation core of the
// Quadratic-Permutation Stream Cipher: a 36-element-state arithmetic
// permutation over a prime field F_p, built from a cubic S-box layer, a
// fixed binary diffusion matrix, and an XOF-driven round schedule.
package qpsc

import (
	"github.com/aurorp1g/qpsc/field"
	"github.com/aurorp1g/qpsc/linear"
	qpsclog "github.com/aurorp1g/qpsc/log"
	"github.com/aurorp1g/qpsc/sbox"
	"github.com/aurorp1g/qpsc/schedule"
)

// Cipher is a QPSC instance: fixed parameters, a master key and nonce set
// by Init, and an internal block counter. A Cipher is logically owned by
// one caller at a time -- concurrent Init and GenerateKeystream calls on
// the same instance are undefined, but distinct instances (and distinct
// GenerateBlock calls on the same instance, since blocks are independent)
// may be used concurrently.
type Cipher struct {
	params Parameters
	sbox   *sbox.SBox
	linear *linear.Layer
	log    *qpsclog.Logger

	key          [schedule.Size]*field.Element
	nonce        []byte
	initialized  bool
	blockCounter uint64
}

// New validates params (beyond what NewParametersFromLiteral already
// checked) and constructs a Cipher with an empty key state. Init must be
// called before GenerateKeystream or GenerateBlock.
func New(params Parameters) (*Cipher, error) {
	sb, err := sbox.New(params.prime)
	if err != nil {
		return nil, wrapError(InvalidPrime, "constructing s-box", err)
	}
	return &Cipher{
		params: params,
		sbox:   sb,
		linear: linear.New(),
		log:    qpsclog.Default().Module("qpsc"),
	}, nil
}

// Init stores key and nonce and resets the internal block counter to 0.
// key must have exactly 36 elements.
func (c *Cipher) Init(key []*field.Element, nonce []byte) error {
	if len(key) != schedule.Size {
		return newError(InvalidShape, "master key must have exactly 36 elements")
	}
	var stored [schedule.Size]*field.Element
	for i, k := range key {
		stored[i] = field.Canonicalize(k, c.params.prime)
	}
	c.key = stored
	c.nonce = append([]byte(nil), nonce...)
	c.blockCounter = 0
	c.initialized = true
	c.log.Debug("cipher initialized", "level", c.params.level.String(), "truncation", c.params.truncationWidth, "nonce_len", len(nonce))
	return nil
}

// GenerateKeystream emits n consecutive blocks' worth of keystream,
// continuing from the internal block counter (which starts at 0 after Init
// and advances by n after this call returns). The result has exactly
// n * (36 - m) elements: the in-order concatenation of each block's
// truncated output.
func (c *Cipher) GenerateKeystream(n int) ([]*field.Element, error) {
	if !c.initialized {
		return nil, newError(NotInitialized, "generate_keystream called before init")
	}
	outWidth := c.params.OutputWidth()
	out := make([]*field.Element, 0, n*outWidth)

	for i := 0; i < n; i++ {
		j := c.blockCounter + uint64(i)
		block, err := c.generateBlockLocked(j)
		if err != nil {
			return nil, err
		}
		out = append(out, block[c.params.truncationWidth:]...)
	}
	c.blockCounter += uint64(n)

	c.log.Debug("keystream generated", "blocks", n, "elements", len(out))
	return out, nil
}

// Seek repositions the internal block counter explicitly, without
// generating output. Combined with GenerateBlock, this lets a caller resume
// a stream or fan work out across block indices without replaying earlier
// blocks.
func (c *Cipher) Seek(j uint64) error {
	if !c.initialized {
		return newError(NotInitialized, "seek called before init")
	}
	c.blockCounter = j
	return nil
}

// GenerateBlock computes the full (untruncated) 36-element state for block
// index j as a pure function of (K, N, j): it does not read or mutate the
// instance's block counter, so callers may invoke it out of order or
// concurrently across distinct j (per spec's block-independence guarantee).
func (c *Cipher) GenerateBlock(j uint64) ([schedule.Size]*field.Element, error) {
	var zero [schedule.Size]*field.Element
	if !c.initialized {
		return zero, newError(NotInitialized, "generate_block called before init")
	}
	return c.generateBlockLocked(j)
}

// generateBlockLocked runs the per-block algorithm (§4.F):
//
//  1. counter vector CV_j
//  2. whitening with (rc^(0,j), rk^(0,j))
//  3. R rounds of [S-box layer -> linear layer -> add round key]
//  4. final diffusion
//
// It assumes the caller has already verified c.initialized.
func (c *Cipher) generateBlockLocked(j uint64) ([schedule.Size]*field.Element, error) {
	p := c.params.prime
	var zero [schedule.Size]*field.Element
	blockLog := c.log.Block(j)

	state := counterVector(j, p)

	rc0 := schedule.RoundConstants(c.nonce, uint32(j), 0, p)
	rk0, err := schedule.RoundKeys(c.key[:], rc0[:], p)
	if err != nil {
		return zero, wrapError(InvalidShape, "whitening round key", err)
	}
	whitened, err := schedule.AddRoundKey(state[:], rk0[:], p)
	if err != nil {
		return zero, wrapError(InvalidShape, "whitening add-round-key", err)
	}
	state = whitened

	rounds := c.params.level.Rounds()
	for r := 1; r <= rounds; r++ {
		afterSbox := c.applySboxLayer(state)

		afterLinear, err := c.linear.Apply(afterSbox[:], p)
		if err != nil {
			return zero, wrapError(InvalidShape, "linear layer", err)
		}

		rc := schedule.RoundConstants(c.nonce, uint32(j), uint32(r), p)
		rk, err := schedule.RoundKeys(c.key[:], rc[:], p)
		if err != nil {
			return zero, wrapError(InvalidShape, "round key", err)
		}
		nextState, err := schedule.AddRoundKey(afterLinear, rk[:], p)
		if err != nil {
			return zero, wrapError(InvalidShape, "add-round-key", err)
		}
		state = nextState
		blockLog.Round(r).Debug("round complete")
	}

	final, err := c.linear.Apply(state[:], p)
	if err != nil {
		return zero, wrapError(InvalidShape, "final diffusion", err)
	}
	var out [schedule.Size]*field.Element
	copy(out[:], final)
	blockLog.Debug("block generated", "rounds", rounds)
	return out, nil
}

// applySboxLayer partitions the 36-element state into 12 consecutive
// triples and applies the S-box to each independently.
func (c *Cipher) applySboxLayer(state [schedule.Size]*field.Element) [schedule.Size]*field.Element {
	var out [schedule.Size]*field.Element
	for t := 0; t < schedule.Size/3; t++ {
		base := t * 3
		y0, y1, y2 := c.sbox.Apply(state[base], state[base+1], state[base+2])
		out[base], out[base+1], out[base+2] = y0, y1, y2
	}
	return out
}

// counterVector builds CV_j with CV_j[i] = ((i+1) + j) mod p.
func counterVector(j uint64, p *field.Element) [schedule.Size]*field.Element {
	var cv [schedule.Size]*field.Element
	for i := 0; i < schedule.Size; i++ {
		cv[i] = field.FromUint64(uint64(i+1)+j, p)
	}
	return cv
}
