// Package format classifies an uploaded statement into one of the supported
// input kinds from its declared content type and filename.
package format

import "strings"

// Kind is the detected input category driving adapter selection.
type Kind int

const (
	KindUnsupported Kind = iota
	KindDelimitedText
	KindSpreadsheet
	KindExternalDocument
)

func (k Kind) String() string {
	switch k {
	case KindDelimitedText:
		return "delimited-text"
	case KindSpreadsheet:
		return "spreadsheet"
	case KindExternalDocument:
		return "external-document"
	default:
		return "unsupported"
	}
}

var csvMIME = map[string]struct{}{
	"text/csv":                 {},
	"application/vnd.ms-excel": {},
	"text/plain":               {},
}

var excelMIME = map[string]struct{}{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
	"application/vnd.ms-excel":                                          {},
}

var pdfMIME = map[string]struct{}{
	"application/pdf": {},
}

// Detect classifies a payload from its declared mimetype and original
// filename. Mimetype membership is checked first for each kind, then the
// filename extension. The result is computed once; callers switch on it
// instead of re-sniffing per step.
func Detect(mimetype, filename string) Kind {
	mt := strings.ToLower(strings.TrimSpace(mimetype))
	// Content type headers may carry parameters, e.g. "text/csv; charset=utf-8".
	if idx := strings.IndexByte(mt, ';'); idx >= 0 {
		mt = strings.TrimSpace(mt[:idx])
	}
	name := strings.ToLower(filename)

	if _, ok := csvMIME[mt]; ok || strings.HasSuffix(name, ".csv") {
		return KindDelimitedText
	}
	if _, ok := excelMIME[mt]; ok || strings.HasSuffix(name, ".xlsx") {
		return KindSpreadsheet
	}
	if _, ok := pdfMIME[mt]; ok || strings.HasSuffix(name, ".pdf") {
		return KindExternalDocument
	}

	return KindUnsupported
}
