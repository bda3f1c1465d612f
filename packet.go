package codec

import "github.com/cespare/xxhash/v2"

type packetEncoder struct{}

func (packetEncoder) Encode(s *StreamAdapter, v FieldValue, c *Codec) error {
	p, ok := v.(PacketFieldValue)
	if !ok {
		return newEncodingError("packet field %T does not implement PacketFieldValue", v)
	}
	group := p.Group()
	if group == nil {
		return newEncodingError("packet has no group to encode")
	}

	start := s.Tell()
	if err := s.PackUint(64, 0); err != nil { // packet_length placeholder
		return err
	}
	if err := s.PackUint(64, 0); err != nil { // length_check placeholder
		return err
	}

	name := p.DefinitionIdentifier()
	if len(name) > 0xFF {
		return newEncodingError("packet identifier %q exceeds 255 bytes", name)
	}
	if err := s.PackUint(8, uint64(len(name))); err != nil {
		return err
	}
	if err := s.Pack([]byte(name)); err != nil {
		return err
	}

	version := p.DefinitionVersion()
	if len(version) > 0xFF {
		return newEncodingError("packet version %q exceeds 255 bytes", version)
	}
	if err := s.PackUint(8, uint64(len(version))); err != nil {
		return err
	}
	if err := s.Pack([]byte(version)); err != nil {
		return err
	}

	bodyStart := s.Tell()
	if err := c.Encode(s, group); err != nil {
		return wrapEncodingError(err, "error encoding packet body")
	}
	end := s.Tell()

	length := uint64(end - start)
	if err := s.Seek(start); err != nil {
		return err
	}
	if err := s.PackUint(64, length); err != nil {
		return err
	}
	if err := s.PackUint(64, length^resyncInvert); err != nil {
		return err
	}
	if err := s.Seek(end); err != nil {
		return err
	}

	if c.DebugLogFrameDigest && c.LogFunc != nil {
		c.LogFunc("# DEBUG packet %s/%s frame_len=%d body_xxhash=%x\n", name, version, length, bodyDigest(s, bodyStart, end))
	}
	return nil
}

// bodyDigest re-seeks to read back [bodyStart, end) for a debug-only
// xxhash digest; it always restores the stream position to end. Digest
// failures are swallowed: this is a diagnostic aid, never load-bearing.
func bodyDigest(s *StreamAdapter, bodyStart, end int64) uint64 {
	if err := s.Seek(bodyStart); err != nil {
		return 0
	}
	b, err := s.Read(int(end - bodyStart))
	_ = s.Seek(end)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(b)
}

func (packetEncoder) newDecodeOp(v FieldValue) decodeOp {
	p, ok := v.(PacketFieldValue)
	if !ok {
		return failingDecodeOp{err: newEncodingError("packet field %T does not implement PacketFieldValue", v)}
	}
	return &packetDecodeOp{target: p}
}

const (
	packetPhaseResync = iota
	packetPhaseNameLen
	packetPhaseName
	packetPhaseVersionLen
	packetPhaseVersion
	packetPhaseResolve
	packetPhaseTail
)

const resyncInvert = ^uint64(0)

// packetDecodeOp implements §4.7's RESYNC_SEARCH/LOCKED state machine as an
// explicit phase sequence. A mismatched length/check pair advances the
// candidate frame start by one byte and retries, giving at-most-one-
// packet-lost recovery once a valid pair relocks the decoder.
type packetDecodeOp struct {
	target PacketFieldValue

	started        bool
	candidateStart int64
	needSeek       bool
	resyncStage    int
	tentativeLen   uint64

	frameStart  int64
	frameLength uint64

	phase      int
	nameLen    int
	name       string
	versionLen int
	versionStr string
	resolved   bool
}

func (op *packetDecodeOp) step(s *StreamAdapter, c *Codec) (child decodeOp, done bool, err error) {
	defer func() {
		if err != nil && err != ErrNeedMore {
			s.SetMaxSize(0)
		}
	}()
	if !op.started {
		op.candidateStart = s.Tell()
		op.started = true
	}

	switch op.phase {
	case packetPhaseResync:
		return nil, false, op.stepResync(s)

	case packetPhaseNameLen:
		raw, err := s.UnpackStep(fmtUint(8))
		if err != nil {
			return nil, false, err
		}
		op.nameLen = int(raw.(uint64))
		op.phase = packetPhaseName
		return nil, false, nil

	case packetPhaseName:
		raw, err := s.UnpackStep(fmtRaw(op.nameLen))
		if err != nil {
			return nil, false, err
		}
		op.name = string(raw.([]byte))
		op.phase = packetPhaseVersionLen
		return nil, false, nil

	case packetPhaseVersionLen:
		raw, err := s.UnpackStep(fmtUint(8))
		if err != nil {
			return nil, false, err
		}
		op.versionLen = int(raw.(uint64))
		op.phase = packetPhaseVersion
		return nil, false, nil

	case packetPhaseVersion:
		raw, err := s.UnpackStep(fmtRaw(op.versionLen))
		if err != nil {
			return nil, false, err
		}
		op.versionStr = string(raw.([]byte))
		op.phase = packetPhaseResolve
		return nil, false, nil

	case packetPhaseResolve:
		return op.stepResolve(s, c)

	default: // packetPhaseTail
		return nil, op.stepTail(s)
	}
}

func (op *packetDecodeOp) stepResync(s *StreamAdapter) error {
	if op.needSeek {
		if err := s.Seek(op.candidateStart); err != nil {
			return err
		}
		op.needSeek = false
		op.resyncStage = 0
	}

	if op.resyncStage == 0 {
		raw, err := s.UnpackStep(fmtUint64Len)
		if err != nil {
			return err
		}
		op.tentativeLen = raw.(uint64)
		op.resyncStage = 1
		return nil
	}

	raw, err := s.UnpackStep(fmtUint64Len)
	if err != nil {
		return err
	}
	tentativeCheck := raw.(uint64)
	if op.tentativeLen == tentativeCheck^resyncInvert {
		op.frameStart = op.candidateStart
		op.frameLength = op.tentativeLen
		s.SetMaxSize(int(op.frameLength))
		op.phase = packetPhaseNameLen
		return nil
	}

	op.candidateStart++
	op.needSeek = true
	op.resyncStage = 0
	return nil
}

func (op *packetDecodeOp) stepResolve(s *StreamAdapter, c *Codec) (decodeOp, bool, error) {
	op.target.SetDefinitionIdentity(op.name, op.versionStr)

	v, err := ParseVersion(op.versionStr)
	if err != nil {
		return nil, false, err
	}
	schema, ok := op.target.Definitions().GetDefinition(op.name, v)
	op.resolved = ok
	op.phase = packetPhaseTail
	if !ok {
		return nil, false, nil
	}

	group := schema.NewInstance()
	op.target.SetGroup(group)
	child, err := c.newDecodeOpFor(group)
	if err != nil {
		return nil, false, wrapEncodingError(err, "error decoding packet body")
	}
	return child, false, nil
}

// wrapChildError implements childFailer: the body's child op can fail on a
// later Poll call, well after stepResolve pushed it, at which point
// stepTail never runs. Reset SetMaxSize here too — stepTail's own reset is
// skipped on this path — so a failed decode never leaves the stream capped
// for whatever the caller does next.
func (op *packetDecodeOp) wrapChildError(s *StreamAdapter, err error) error {
	s.SetMaxSize(0)
	return wrapEncodingError(err, "error decoding packet body")
}

func (op *packetDecodeOp) stepTail(s *StreamAdapter) (bool, error) {
	s.SetMaxSize(0)
	bytesUsed := uint64(s.Tell() - op.frameStart)

	if bytesUsed < op.frameLength {
		remaining := int(op.frameLength - bytesUsed)
		if _, err := s.UnpackStep(fmtRaw(remaining)); err != nil {
			return false, err
		}
		return false, newEncodingError("packet deserialization error: expected %d bytes, used %d", op.frameLength, bytesUsed)
	}
	if !op.resolved {
		return false, newEncodingError("packet type unresolved: %s/%s", op.name, op.versionStr)
	}
	return true, nil
}

func init() {
	registerBuiltinComposite(PacketRoot{}, packetEncoder{})
}
