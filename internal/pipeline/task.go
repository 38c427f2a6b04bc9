package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/heic2jpg/internal/codec"
	"github.com/backmassage/heic2jpg/internal/config"
	"github.com/backmassage/heic2jpg/internal/display"
	"github.com/backmassage/heic2jpg/internal/encoder"
	"github.com/backmassage/heic2jpg/internal/naming"
	"github.com/backmassage/heic2jpg/internal/probe"
)

// Outcome is the terminal record of one file's conversion attempt. Exactly
// one Outcome is produced per queued file; Message is the preformatted
// per-file report line.
type Outcome struct {
	Source    string
	Dest      string // Empty on failure.
	OK        bool
	MetBudget bool
	InBytes   int64 // Source file size.
	OutBytes  int64 // Written output size; 0 on failure.
	Message   string
}

// Converter runs single files end-to-end: read, probe, decode, size-targeted
// re-encode, allocate an output name, write. Safe for concurrent use; the
// shared namer serializes path allocation.
type Converter struct {
	cfg   *config.Config
	dec   codec.Decoder
	enc   *encoder.Encoder
	namer *naming.Namer
}

// NewConverter wires a converter from its collaborators.
func NewConverter(cfg *config.Config, dec codec.Decoder, enc *encoder.Encoder, namer *naming.Namer) *Converter {
	return &Converter{cfg: cfg, dec: dec, enc: enc, namer: namer}
}

// Convert processes one input file and always returns an Outcome; a panic in
// the codec path is recovered into a failure so one poisoned file cannot take
// down the pool.
func (c *Converter) Convert(path string) (oc Outcome) {
	defer func() {
		if r := recover(); r != nil {
			oc = c.fail(path, fmt.Errorf("panic: %v", r))
		}
	}()

	fi, err := os.Stat(path)
	if err != nil {
		return c.fail(path, errors.New("file not found"))
	}
	if !fi.Mode().IsRegular() {
		return c.fail(path, errors.New("not a regular file"))
	}
	if !hasExt(path, config.InputExt) {
		return c.fail(path, fmt.Errorf("not a %s file", config.InputExt))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return c.fail(path, err)
	}
	if err := probe.Check(data); err != nil {
		return c.fail(path, err)
	}

	img, err := c.dec.Decode(data)
	if err != nil {
		return c.fail(path, err)
	}

	var exif []byte
	if c.cfg.KeepEXIF {
		// Missing or unreadable EXIF is not a failure; the image converts
		// without metadata.
		exif, _ = c.dec.ExtractEXIF(data)
	}

	res, err := c.enc.EncodeToTarget(encoder.Request{
		Image:       img,
		Budget:      c.cfg.BudgetBytes(),
		EXIF:        exif,
		Subsampling: string(c.cfg.Subsampling),
		Progressive: c.cfg.Progressive,
		Optimize:    c.cfg.Optimize,
	})
	if err != nil {
		return c.fail(path, err)
	}

	outDir := filepath.Join(filepath.Dir(path), c.cfg.OutDirName)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return c.fail(path, err)
	}

	dest, err := c.write(outDir, stem(path), res.Data)
	if err != nil {
		return c.fail(path, err)
	}

	msg := fmt.Sprintf("Converted: %s -> %s (%s)",
		filepath.Base(path), relTo(filepath.Dir(path), dest), display.FormatMB(res.Size))
	if !res.MetBudget {
		msg += " (over budget)"
	}
	return Outcome{
		Source:    path,
		Dest:      dest,
		OK:        true,
		MetBudget: res.MetBudget,
		InBytes:   fi.Size(),
		OutBytes:  res.Size,
		Message:   msg,
	}
}

// write allocates a collision-free destination and creates it exclusively.
// Losing a creation race to a writer outside this process re-allocates; any
// other write error releases the claim and fails the task.
func (c *Converter) write(dir, base string, data []byte) (string, error) {
	for {
		dest := c.namer.Allocate(dir, base)
		err := writeExclusive(dest, data)
		if err == nil {
			return dest, nil
		}
		c.namer.Release(dest)
		if os.IsExist(err) {
			continue
		}
		return "", err
	}
}

// writeExclusive creates path with O_EXCL so an unnoticed existing file is an
// error, not an overwrite. A short write removes the partial file.
func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func (c *Converter) fail(path string, err error) Outcome {
	return Outcome{
		Source:  path,
		Message: fmt.Sprintf("Failed: %s | %v", filepath.Base(path), err),
	}
}

// stem is the base name without its extension.
func stem(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// relTo renders dest relative to the input's directory for the report line,
// falling back to the absolute path when no relative form exists.
func relTo(dir, dest string) string {
	if rel, err := filepath.Rel(dir, dest); err == nil {
		return rel
	}
	return dest
}
