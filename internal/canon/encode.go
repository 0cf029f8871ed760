package canon

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Format - формат вывода документа.
type Format uint8

const (
	FormatJSON Format = iota
	FormatMsgpack
)

// DefaultIndent - отступ JSON по умолчанию.
const DefaultIndent = 2

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	default:
		return fmt.Sprintf("Format(%d)", f)
	}
}

// ParseFormat разбирает значение флага --format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	}
	return FormatJSON, fmt.Errorf("unknown output format %q (want json or msgpack)", s)
}

// Extension возвращает расширение файла для пакетного вывода.
func (f Format) Extension() string {
	if f == FormatMsgpack {
		return ".msgpack"
	}
	return ".json"
}

type Options struct {
	Format Format
	// Indent - пробелов на уровень JSON; 0 означает компактный вывод.
	Indent int
}

// Marshal кодирует документ целиком в память.
func Marshal(doc Document, opts Options) ([]byte, error) {
	switch opts.Format {
	case FormatJSON:
		return marshalJSON(doc, opts.Indent)
	case FormatMsgpack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode msgpack: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format %s", opts.Format)
	}
}

func marshalJSON(doc Document, indent int) ([]byte, error) {
	return appendDocumentJSON(make([]byte, 0, 4096), doc, indent), nil
}

// Encode кодирует документ и пишет его в w одной записью;
// при ошибке кодирования в w ничего не попадает.
func Encode(w io.Writer, doc Document, opts Options) error {
	data, err := Marshal(doc, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
