package ngff

import (
	"io"

	"github.com/ngff-go/ngff/internal/jsontext"
)

// DetectDuplicateKeysBytes is a thin wrapper that detects duplicate keys in
// JSON byte slices. The implementation delegates to internal/jsontext.
func DetectDuplicateKeysBytes(data []byte, strict Strictness, maxIssues int) (Issues, error) {
	si, err := jsontext.DetectDuplicateKeysBytes(data, toDupMode(strict.OnDuplicateKey), maxIssues)
	if err != nil {
		return nil, err
	}
	return fromSimpleIssues(si), nil
}

// DetectDuplicateKeysReader is a thin wrapper that detects duplicate keys
// from an io.Reader.
func DetectDuplicateKeysReader(r io.Reader, strict Strictness, maxIssues int) (Issues, error) {
	si, err := jsontext.DetectDuplicateKeysReader(r, toDupMode(strict.OnDuplicateKey), maxIssues)
	if err != nil {
		return nil, err
	}
	return fromSimpleIssues(si), nil
}

func toDupMode(s Severity) jsontext.DuplicateStrictness {
	switch s {
	case Error:
		return jsontext.DupError
	case Warn:
		return jsontext.DupWarn
	default:
		return jsontext.DupIgnore
	}
}

func fromSimpleIssues(si []jsontext.SimpleIssue) Issues {
	var iss Issues
	for _, s := range si {
		it := Issue{Code: s.Code, Path: s.Path, Message: s.Message}
		if s.Key != "" {
			it.Params = map[string]any{"key": s.Key}
		}
		iss = AppendIssues(iss, it)
	}
	return iss
}
