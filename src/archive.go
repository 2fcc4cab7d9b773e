package src

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

const manifestName = "project.json"

var (
	ErrEmptyArchive   = errors.New("archive contains no entries")
	ErrNoProjectFiles = errors.New("archive contains no importable files")
)

// ArchiveManifest is the metadata record written at the archive root on
// export. Review stays raw so legacy exports decode like legacy stores.
type ArchiveManifest struct {
	Prompt    string          `json:"prompt"`
	Plan      AppPlan         `json:"plan"`
	Review    json.RawMessage `json:"review"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ImportedArchive is the result of unpacking: raw files keyed by
// prefix-stripped path, plus the manifest when one was found.
type ImportedArchive struct {
	Files    map[string]string
	Manifest *ArchiveManifest
}

// WriteArchive exports the project as a zip: project.json at the root plus
// every file verbatim.
func WriteArchive(w io.Writer, p *Project) error {
	zw := zip.NewWriter(w)

	review, err := json.Marshal(sanitizeReview(p.Review))
	if err != nil {
		return fmt.Errorf("encode review: %w", err)
	}
	manifest, err := json.MarshalIndent(ArchiveManifest{
		Prompt:    p.Prompt,
		Plan:      p.Plan,
		Review:    review,
		CreatedAt: p.CreatedAt,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	entry, err := zw.Create(manifestName)
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if _, err := entry.Write(manifest); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	for _, name := range sortedStrings(fileKeys(p.Files)) {
		entry, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		if _, err := entry.Write([]byte(p.Files[name])); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return zw.Close()
}

// ReadArchive unpacks a zip for import. The shallowest project.json wins
// and its directory becomes the root: every file under it is imported with
// the prefix stripped. Without a manifest, every regular entry is imported
// raw and the caller infers the metadata. Directory entries and macOS
// resource forks are skipped either way.
func ReadArchive(r io.ReaderAt, size int64) (*ImportedArchive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if len(zr.File) == 0 {
		return nil, ErrEmptyArchive
	}

	manifestEntry := findManifest(zr.File)
	prefix := ""
	var manifest *ArchiveManifest
	if manifestEntry != nil {
		data, err := readZipEntry(manifestEntry)
		if err != nil {
			return nil, fmt.Errorf("read manifest: %w", err)
		}
		var m ArchiveManifest
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode manifest: %w", err)
		}
		manifest = &m
		if dir := path.Dir(cleanEntryName(manifestEntry.Name)); dir != "." {
			prefix = dir + "/"
		}
	}

	files := map[string]string{}
	for _, f := range zr.File {
		name := cleanEntryName(f.Name)
		if name == "" || skipEntry(f, name) {
			continue
		}
		if manifestEntry != nil {
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			name = strings.TrimPrefix(name, prefix)
			if name == manifestName {
				continue
			}
		}
		if name == "" {
			continue
		}
		data, err := readZipEntry(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		files[name] = string(data)
	}
	if len(files) == 0 {
		return nil, ErrNoProjectFiles
	}
	return &ImportedArchive{Files: files, Manifest: manifest}, nil
}

// findManifest picks the project.json with the fewest path separators.
// Exports from this app put it at depth zero; archives that were re-zipped
// inside a wrapping folder still resolve to the right one.
func findManifest(entries []*zip.File) *zip.File {
	var best *zip.File
	bestDepth := -1
	for _, f := range entries {
		name := cleanEntryName(f.Name)
		if name == "" || skipEntry(f, name) || path.Base(name) != manifestName {
			continue
		}
		depth := strings.Count(name, "/")
		if best == nil || depth < bestDepth {
			best = f
			bestDepth = depth
		}
	}
	return best
}

func skipEntry(f *zip.File, name string) bool {
	if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
		return true
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "__MACOSX" {
			return true
		}
	}
	return false
}

func cleanEntryName(raw string) string {
	name := path.Clean(strings.ReplaceAll(raw, "\\", "/"))
	name = strings.TrimPrefix(name, "/")
	if name == "." || strings.HasPrefix(name, "..") {
		return ""
	}
	return name
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
