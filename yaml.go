package recio

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/schemarize/recio/internal/sourceio"
)

// ReadYAML streams a multi-document YAML source, one record per document.
// Empty documents are skipped, like blank JSONL lines. A document that is not
// a mapping, or that does not parse, is a fatal decode_error carrying the
// 1-based document index.
func ReadYAML(src Source) (Stream, error) {
	h, err := src.open()
	if err != nil {
		return nil, err
	}
	return &yamlStream{h: h, dec: yaml.NewDecoder(h.R)}, nil
}

type yamlStream struct {
	h   *sourceio.Handle
	dec *yaml.Decoder
	doc int
	err error
}

func (s *yamlStream) Next() (Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	for {
		s.doc++
		var m map[string]any
		derr := s.dec.Decode(&m)
		if derr == io.EOF {
			s.err = io.EOF
			_ = s.h.Close()
			return nil, io.EOF
		}
		if derr != nil {
			_ = s.h.Close()
			s.err = decodeIssue(CodeDecodeError, 0, -1,
				fmt.Sprintf("document %d: %v", s.doc, derr), derr)
			return nil, s.err
		}
		if m == nil {
			continue
		}
		return Record(m), nil
	}
}

func (s *yamlStream) Close() error { return s.h.Close() }
