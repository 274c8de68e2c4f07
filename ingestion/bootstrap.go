package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/estateflow/leadlens/core"
)

// Bootstrap ingests every .json project file found in fsys. Each file is
// flattened into a readable text representation and ingested under the
// project tag named by its "project_name" field (falling back to the file
// name without extension).
//
// Bootstrap is idempotent at the project level: a project whose tag already
// has stored chunks is skipped entirely. This is a shallow "already
// populated" guard, not content-based deduplication. Returns the total
// number of chunks created.
func (in *Ingestor) Bootstrap(ctx context.Context, fsys fs.FS) (int, error) {
	paths, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return 0, fmt.Errorf("glob project files: %w", err)
	}
	sort.Strings(paths)

	total := 0
	for _, path := range paths {
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return total, fmt.Errorf("read project file %s: %w", path, err)
		}

		var data map[string]any
		if err := json.Unmarshal(raw, &data); err != nil {
			return total, fmt.Errorf("parse project file %s: %w", path, err)
		}

		projectTag := strings.TrimSuffix(path, ".json")
		if name, ok := data["project_name"].(string); ok && name != "" {
			projectTag = name
		}

		count, err := in.store.Count(ctx, projectTag)
		if err != nil {
			return total, err
		}
		if count > 0 {
			in.logger.Info("project already has chunks, skipping",
				"projectTag", projectTag, "chunks", count)
			continue
		}

		doc := core.Document{
			Content:  FlattenJSON(data),
			Metadata: map[string]any{"source_file": path},
		}
		created, err := in.Ingest(ctx, projectTag, []core.Document{doc})
		if err != nil {
			return total, err
		}
		total += created
	}
	return total, nil
}

// FlattenJSON converts a nested JSON object into a readable multi-line
// string, one "key path: value" line per leaf. Keys are emitted in sorted
// order for deterministic output.
//
// Produces output like:
//
//	location > city: Ciudad de Mexico
//	project_name: Torre Alvarez
//	unit_types > 0 > type: 1 recamara
func FlattenJSON(data map[string]any) string {
	var lines []string
	flattenInto(&lines, data, "")
	return strings.Join(lines, "\n")
}

func flattenInto(lines *[]string, data map[string]any, prefix string) {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + " > " + key
		}
		flattenValue(lines, data[key], fullKey)
	}
}

func flattenValue(lines *[]string, value any, key string) {
	switch v := value.(type) {
	case map[string]any:
		flattenInto(lines, v, key)
	case []any:
		for idx, item := range v {
			flattenValue(lines, item, key+" > "+strconv.Itoa(idx))
		}
	default:
		*lines = append(*lines, key+": "+formatScalar(v))
	}
}

func formatScalar(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", val)
	}
}
