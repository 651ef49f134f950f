package buffer

import (
	"fmt"
	"io"
	"os"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"vpager/internal/perr"
)

// Options carries the subset of resolved configuration the buffer package
// needs to decide storage strategy; everything else (theme, keymap, ...)
// stays in internal/config and never reaches this package.
type Options struct {
	MmapThreshold int64
	GitLoader     GitChangeLoader
}

// FromPath opens path, transparently decompressing a recognized
// compression suffix, indexes it into lines, and computes the binary
// flag and (when a GitChangeLoader is supplied) the per-line change map.
//
// Storage strategy: a compressed source is always read fully (none of
// the decoders expose a mappable view); an uncompressed source at or
// above opts.MmapThreshold is memory-mapped, otherwise read fully. BOM
// normalization only applies to the owned-memory path — a memory-mapped
// file is addressed directly and its bytes must remain byte-identical
// to the backing file, so a BOM-carrying large file simply keeps a
// leading BOM line artifact rather than being copied to strip it.
func FromPath(path string, opts Options) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrap(perr.KindIO, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, perr.Wrap(perr.KindIO, path, err)
	}

	decompressed, matched, err := decompressIfNeeded(path, f)
	if err != nil {
		return nil, perr.Wrap(perr.KindIO, path, err)
	}

	var (
		store storage
		data  []byte
	)
	if matched {
		data = normalizeEncoding(decompressed)
		store = &ownedStorage{data: data}
	} else {
		thresh := opts.MmapThreshold
		if thresh <= 0 {
			thresh = defaultMmapThreshold
		}
		if info.Size() >= thresh {
			store, err = mmapFile(f, info.Size())
			if err != nil {
				return nil, perr.Wrap(perr.KindIO, path, err)
			}
			data = store.Bytes()
		} else {
			buf, err := io.ReadAll(f)
			if err != nil {
				return nil, perr.Wrap(perr.KindIO, path, err)
			}
			data = normalizeEncoding(buf)
			store = &ownedStorage{data: data}
		}
	}

	originalPath, hadSuffix := stripCompressionSuffix(path)
	doc := &Document{
		logicalPath:          path,
		hadCompressionSuffix: hadSuffix,
		store:                store,
		offsets:              buildIndex(data),
		binary:               detectBinary(data),
		gitLoader:            opts.GitLoader,
	}
	if hadSuffix {
		doc.originalPath = originalPath
	}

	if opts.GitLoader != nil && !doc.binary {
		if changes, err := opts.GitLoader.Changes(path); err == nil {
			doc.changes = changes
		}
	}

	return doc, nil
}

// FromStdin slurps r (the pager's caller is expected to pass os.Stdin)
// fully into memory; stdin has no path to mmap and no git history to
// diff against, so both collaborators are skipped (spec §4.1 "loading
// from stdin").
func FromStdin(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, perr.Wrap(perr.KindIO, "<stdin>", err)
	}
	data = normalizeEncoding(data)
	doc := &Document{
		logicalPath: "<stdin>",
		fromStdin:   true,
		store:       &ownedStorage{data: data},
		offsets:     buildIndex(data),
		binary:      detectBinary(data),
	}
	return doc, nil
}

// FromDiff builds a synthetic document holding the unified diff between
// before and after, using the Myers algorithm and unified-diff formatter
// (spec §4.1 "Synthetic diff documents"). The result is never binary and
// carries no git change map of its own — its content already *is* a
// diff.
func FromDiff(label string, beforePath, afterPath string, before, after string) (*Document, error) {
	edits := myers.ComputeEdits(span.URIFromPath(beforePath), before, after)
	unified := gotextdiff.ToUnified(beforePath, afterPath, before, edits)
	text := fmt.Sprint(unified)

	data := []byte(text)
	doc := &Document{
		logicalPath: label,
		isDiff:      true,
		store:       &ownedStorage{data: data},
		offsets:     buildIndex(data),
		binary:      false,
	}
	return doc, nil
}

// Reload re-reads the document from its original path (a no-op, returning
// an error, for stdin- or diff-backed documents) and replaces the index
// and storage in place, for the follow-mode collaborator (spec §4.1
// "Reload") to call after a filesystem-watcher event.
func (d *Document) Reload(opts Options) error {
	if d.fromStdin {
		return perr.Wrap(perr.KindIO, d.logicalPath, fmt.Errorf("stdin documents cannot be reloaded"))
	}
	if d.isDiff {
		return perr.Wrap(perr.KindIO, d.logicalPath, fmt.Errorf("diff documents cannot be reloaded"))
	}

	if opts.GitLoader == nil {
		opts.GitLoader = d.gitLoader
	}
	fresh, err := FromPath(d.logicalPath, opts)
	if err != nil {
		return err
	}

	if err := d.Close(); err != nil {
		fresh.Close()
		return perr.Wrap(perr.KindIO, d.logicalPath, err)
	}

	d.store = fresh.store
	d.offsets = fresh.offsets
	d.binary = fresh.binary
	d.changes = fresh.changes
	return nil
}
