// Package assets loads drink images, sounds and the UI font by key relative to assets root.
// Missing or broken asset is logged once and served as fallback (plain card, silence, builtin font).
package assets

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"sync"

	"github.com/juju/errors"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/linled/coffee-kiosk/internal/state"
	"github.com/linled/coffee-kiosk/log2"
)

const FontKey = "fonts/arlrdbd.ttf"

type Store struct {
	log  *log2.Log
	fs   state.FullReader
	root string

	mu     sync.Mutex
	images map[string]image.Image
	raw    map[string][]byte
	failed map[string]error
}

func New(log *log2.Log, fs state.FullReader, root string) *Store {
	return &Store{
		log:    log,
		fs:     fs,
		root:   root,
		images: make(map[string]image.Image),
		raw:    make(map[string][]byte),
		failed: make(map[string]error),
	}
}

func (self *Store) path(key string) string {
	return self.fs.Normalize(path.Join(self.root, key))
}

// Bytes returns raw asset content. Error is NotFound for missing file.
func (self *Store) Bytes(key string) ([]byte, error) {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.bytes(key)
}

func (self *Store) bytes(key string) ([]byte, error) {
	if b, ok := self.raw[key]; ok {
		return b, nil
	}
	if err, ok := self.failed[key]; ok {
		return nil, err
	}
	b, err := self.fs.ReadAll(self.path(key))
	if err == nil && b == nil {
		err = errors.NotFoundf("asset=%s", key)
	}
	if err != nil {
		return nil, self.fail(key, err)
	}
	self.raw[key] = b
	return b, nil
}

func (self *Store) fail(key string, err error) error {
	err = errors.Annotatef(err, "asset=%s", key)
	self.failed[key] = err
	self.log.Error(err)
	return err
}

// Image decodes jpeg or png. ok=false means caller should draw fallback.
func (self *Store) Image(key string) (image.Image, bool) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if im, ok := self.images[key]; ok {
		return im, true
	}
	b, err := self.bytes(key)
	if err != nil {
		return nil, false
	}
	im, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		delete(self.raw, key)
		_ = self.fail(key, errors.NotValidf("image decode err=%v", err))
		return nil, false
	}
	self.images[key] = im
	return im, true
}

// Sound returns wav file content, nil means silence.
func (self *Store) Sound(key string) []byte {
	b, err := self.Bytes(key)
	if err != nil {
		return nil
	}
	return b
}

// Font returns UI font file or builtin Go Regular.
func (self *Store) Font() []byte {
	b, err := self.Bytes(FontKey)
	if err != nil || len(b) == 0 {
		return goregular.TTF
	}
	return b
}

// Failed lists keys that could not be loaded.
func (self *Store) Failed() []string {
	self.mu.Lock()
	defer self.mu.Unlock()
	keys := make([]string, 0, len(self.failed))
	for k := range self.failed {
		keys = append(keys, k)
	}
	return keys
}
