// Package format implements load/save codecs for the on-disk art formats
// this engine round-trips: ANSI/ASCII text, raw BIN, XBin, IcyDraw's own
// JSON container, and a handful of legacy BBS formats (Tundra, Avatar,
// PCBoard, CBM Seq), plus FILE_ID.DIZ. Each codec is selected by file
// extension through Registry, mirroring how the teacher dispatches SSH
// session handlers by protocol name.
package format

import (
	"strings"

	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/errs"
)

// LoadOptions carries the hints a loader needs beyond the raw bytes: a
// default size for formats with no embedded dimensions.
type LoadOptions struct {
	DefaultSize buffer.Size
}

// SaveOptions carries per-format write choices.
type SaveOptions struct {
	WriteSauce bool
}

// Codec loads and saves one file format.
type Codec interface {
	Load(data []byte, opts LoadOptions) (*buffer.Buffer, error)
	Save(buf *buffer.Buffer, opts SaveOptions) ([]byte, error)
}

// Registry maps a lowercase extension (with leading dot) to its Codec.
type Registry struct {
	codecs map[string]Codec
}

// NewRegistry returns a Registry preloaded with every codec this package
// implements.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[string]Codec)}
	r.Register(".ans", ansiCodec{})
	r.Register(".asc", asciiCodec{})
	r.Register(".diz", asciiCodec{})
	r.Register(".bin", binCodec{})
	r.Register(".xb", xbinCodec{})
	r.Register(".icd", icyDrawCodec{})
	r.Register(".rip", ripCodec{})
	r.Register(".tnd", tundraCodec{})
	r.Register(".avt", avatarCodec{})
	r.Register(".pcb", pcboardCodec{})
	r.Register(".seq", cbmSeqCodec{})
	return r
}

// Register installs (or overrides) the codec for ext.
func (r *Registry) Register(ext string, c Codec) {
	r.codecs[strings.ToLower(ext)] = c
}

func (r *Registry) lookup(ext string) (Codec, error) {
	c, ok := r.codecs[strings.ToLower(ext)]
	if !ok {
		return nil, errs.ErrUnknownExtension
	}
	return c, nil
}

// Load dispatches to the codec registered for ext (e.g. ".ans").
func (r *Registry) Load(ext string, path string, data []byte, opts LoadOptions) (*buffer.Buffer, error) {
	c, err := r.lookup(ext)
	if err != nil {
		return nil, &errs.LoadingError{Path: path, Err: err}
	}
	buf, err := c.Load(data, opts)
	if err != nil {
		return nil, &errs.LoadingError{Path: path, Err: err}
	}
	return buf, nil
}

// Save dispatches to the codec registered for ext.
func (r *Registry) Save(ext string, path string, buf *buffer.Buffer, opts SaveOptions) ([]byte, error) {
	c, err := r.lookup(ext)
	if err != nil {
		return nil, &errs.SaveError{Path: path, Err: err}
	}
	data, err := c.Save(buf, opts)
	if err != nil {
		return nil, &errs.SaveError{Path: path, Err: err}
	}
	return data, nil
}
