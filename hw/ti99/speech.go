package ti99

import "ti99/emu/log"

// Speech is the port side of the speech synthesizer: a 16-byte FIFO fed at
// >9400 and a status register read at >9000. Speech synthesis is not
// emulated; the FIFO is drained by Step.
type Speech struct {
	fifo  [16]uint8
	count int
	head  int
}

// Status register bits.
const (
	SpeechTalk        = 0x80 // talk status
	SpeechBufferLow   = 0x40 // fifo less than half full
	SpeechBufferEmpty = 0x20
)

func NewSpeech() *Speech {
	return &Speech{}
}

func (s *Speech) Reset() {
	s.count, s.head = 0, 0
}

func (s *Speech) Status() uint8 {
	var st uint8
	if s.count > 0 {
		st |= SpeechTalk
	}
	if s.count < len(s.fifo)/2 {
		st |= SpeechBufferLow
	}
	if s.count == 0 {
		st |= SpeechBufferEmpty
	}
	return st
}

func (s *Speech) Read8(_ uint16, _ bool) uint8 {
	return s.Status()
}

func (s *Speech) Write8(_ uint16, val uint8) {
	if s.count == len(s.fifo) {
		log.ModSpeech.WarnZ("fifo overrun").Hex8("val", val).End()
		return
	}
	s.fifo[(s.head+s.count)%len(s.fifo)] = val
	s.count++
}

// Step consumes one byte from the fifo, as the synthesizer would.
func (s *Speech) Step() (uint8, bool) {
	if s.count == 0 {
		return 0, false
	}
	val := s.fifo[s.head]
	s.head = (s.head + 1) % len(s.fifo)
	s.count--
	return val, true
}
