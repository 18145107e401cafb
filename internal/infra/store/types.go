package store

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"property-revenue-sync/internal/infra"
)

// Record is a row of the tabular store. Every field value is held as a string because the
// store coerces values on write; field names may carry stray trailing whitespace.
type Record struct {
	ID          string
	CreatedTime time.Time
	Fields      map[string]string
}

// Field returns the first non-missing value among aliases, trying each alias verbatim and
// then with trailing whitespace trimmed from the stored key.
func (r Record) Field(aliases ...string) (string, bool) {
	return Lookup(r.Fields, aliases...)
}

func Lookup(fields map[string]string, aliases ...string) (string, bool) {
	for _, alias := range aliases {
		if v, ok := fields[alias]; ok {
			return v, true
		}
	}
	for key, v := range fields {
		trimmed := strings.TrimSpace(key)
		for _, alias := range aliases {
			if trimmed == strings.TrimSpace(alias) {
				return v, true
			}
		}
	}
	return "", false
}

// TableRef names a store table. Strategies narrow the write fallbacks a table accepts;
// nil means the defaults.
type TableRef struct {
	ID               string
	Name             string
	CreateStrategies []WriteStrategy
	UpdateStrategies []WriteStrategy
}

func (t TableRef) label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

type ListOptions struct {
	PageSize   int
	MaxRecords int // 0 means no cap
}

type rawRecord struct {
	ID          string         `json:"id"`
	Fields      map[string]any `json:"fields"`
	CreatedTime string         `json:"createdTime"`
}

type recordsEnvelope struct {
	Records []rawRecord `json:"records"`
}

func (r rawRecord) toRecord() Record {
	fields := make(map[string]string, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = stringify(v)
	}
	created, _ := time.Parse(time.RFC3339Nano, r.CreatedTime)
	return Record{ID: r.ID, CreatedTime: created, Fields: fields}
}

func decodeRecordList(body []byte) ([]Record, error) {
	var env recordsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, infra.NewDecodeError("decode record page", err)
	}
	records := make([]Record, 0, len(env.Records))
	for _, raw := range env.Records {
		records = append(records, raw.toRecord())
	}
	return records, nil
}

// decodeWrittenRecord accepts both {records:[...]} and a bare {id,...} create response.
func decodeWrittenRecord(body []byte) (Record, error) {
	var env recordsEnvelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Records) > 0 && env.Records[0].ID != "" {
		return env.Records[0].toRecord(), nil
	}
	var single rawRecord
	if err := json.Unmarshal(body, &single); err != nil {
		return Record{}, infra.NewDecodeError("decode written record", err)
	}
	if single.ID == "" {
		return Record{}, infra.NewDecodeError("decode written record", errEmptyID)
	}
	return single.toRecord(), nil
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// sortNewestFirst orders by creation time descending so "latest wins" consumers can take the head.
func sortNewestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedTime.After(records[j].CreatedTime)
	})
}
