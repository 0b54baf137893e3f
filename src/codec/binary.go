package codec

import (
	"io"
	"io/ioutil"

	"gopkg.in/vmihailenco/msgpack.v2"

	"github.com/will-rowe/origami/src/modelerr"
	"github.com/will-rowe/origami/src/part"
)

// EncodeBinary writes a msgpack snapshot of Save(p) to w
func EncodeBinary(w io.Writer, p *part.Part) error {
	b, err := MarshalBinary(p)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// MarshalBinary returns a msgpack snapshot of Save(p)
func MarshalBinary(p *part.Part) ([]byte, error) {
	return msgpack.Marshal(Save(p))
}

// DecodeBinary rebuilds a Part from a snapshot written by EncodeBinary
func DecodeBinary(r io.Reader, opts ...Option) (*part.Part, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return UnmarshalBinary(b, opts...)
}

// UnmarshalBinary rebuilds a Part from snapshot bytes
func UnmarshalBinary(b []byte, opts ...Option) (*part.Part, error) {
	doc := &Document{}
	if err := msgpack.Unmarshal(b, doc); err != nil {
		return nil, modelerr.New("decodeBinary", modelerr.ErrMalformedDocument, err.Error())
	}
	if doc.Format != FormatTag {
		return nil, modelerr.New("decodeBinary", modelerr.ErrUnsupportedFormat, "snapshot has no format tag")
	}
	return Build(Parsed{Kind: Current, Tag: doc.Format, Doc: doc}, opts...)
}

// Dump writes a snapshot of p to path
func Dump(path string, p *part.Part) error {
	b, err := MarshalBinary(p)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, b, 0644)
}

// Undump reads a snapshot written by Dump
func Undump(path string, opts ...Option) (*part.Part, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalBinary(b, opts...)
}
