package driver

import (
	"crypto/sha256"
	"encoding/binary"

	"rscanon/internal/canon"
	"rscanon/internal/version"
)

// Digest - 256-битный ключ кэша (совместим с source.File.Hash).
type Digest [32]byte

// cacheKey: H(content || schema || format || indent || version).
// Любое изменение формата вывода или сборки даёт новый ключ.
func cacheKey(content [32]byte, opts canon.Options) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:], uint32(canon.SchemaVersion))
	binary.LittleEndian.PutUint32(buf[4:], uint32(opts.Format))
	binary.LittleEndian.PutUint32(buf[8:], uint32(max(opts.Indent, 0)))
	_, _ = h.Write(buf[:])
	_, _ = h.Write([]byte(version.Version))
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
