// Package fetcher reads and writes the JSON record files at the pipeline
// boundary. The core pipeline never touches the filesystem itself.
package fetcher

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/territory-cli/internal/model"
)

// LoadRawRecords reads business records from a JSON file. Both a bare
// top-level array and the legacy {"businesses": [...]} wrapper are
// accepted; anything else is a fatal input error.
func LoadRawRecords(path string) ([]model.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: open input")
	}
	defer f.Close()

	records, err := decodeRecords(f)
	if err != nil {
		return nil, err
	}

	zap.L().Info("fetcher: loaded records",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)
	return records, nil
}

func decodeRecords(r io.Reader) ([]model.RawRecord, error) {
	decoder := json.NewDecoder(r)

	tok, err := decoder.Token()
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: read opening token")
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, eris.Errorf("fetcher: expected '[' or '{', got %v", tok)
	}

	switch delim {
	case '[':
		return decodeArray(decoder)

	case '{':
		// Scan object keys for the "businesses" wrapper.
		for decoder.More() {
			keyTok, err := decoder.Token()
			if err != nil {
				return nil, eris.Wrap(err, "fetcher: read object key")
			}
			key, _ := keyTok.(string)
			if key != "businesses" {
				// Skip the value of any other key.
				var discard json.RawMessage
				if err := decoder.Decode(&discard); err != nil {
					return nil, eris.Wrap(err, "fetcher: skip value")
				}
				continue
			}

			tok, err := decoder.Token()
			if err != nil {
				return nil, eris.Wrap(err, "fetcher: read businesses value")
			}
			if delim, ok := tok.(json.Delim); !ok || delim != '[' {
				return nil, eris.New("fetcher: businesses value must be an array")
			}
			return decodeArray(decoder)
		}
		return nil, eris.New("fetcher: object input lacks a businesses array")

	default:
		return nil, eris.Errorf("fetcher: unexpected top-level delimiter %v", delim)
	}
}

// decodeArray streams array elements after the opening bracket has been
// consumed.
func decodeArray(decoder *json.Decoder) ([]model.RawRecord, error) {
	var records []model.RawRecord
	for decoder.More() {
		var rec model.RawRecord
		if err := decoder.Decode(&rec); err != nil {
			return nil, eris.Wrap(err, "fetcher: decode record")
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadStandardizedRecords reads the standardize command's output back in
// for aggregation.
func LoadStandardizedRecords(path string) ([]model.StandardizedRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: read standardized input")
	}

	var records []model.StandardizedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrap(err, "fetcher: parse standardized input")
	}

	zap.L().Info("fetcher: loaded standardized records",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)
	return records, nil
}

// WriteJSON writes v to path as indented JSON.
func WriteJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "fetcher: create output")
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return eris.Wrap(err, "fetcher: encode output")
	}
	return nil
}
