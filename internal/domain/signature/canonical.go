package signature

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Serialize produces the canonical string form of a structured payload, the
// exact basis for signing and verification. The result is deterministic and
// independent of field order or wire encoding:
//   - object fields are serialized in lexicographic field-name order, each as
//     the field name followed by the serialized value
//   - array elements keep their original order
//   - scalars are rendered in their plain textual form
func Serialize(payload any) (string, error) {
	node, err := toNode(payload)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	serializeNode(&builder, node)
	return builder.String(), nil
}

// toNode normalizes any payload into the generic JSON node form used for
// canonical traversal. Numbers are kept as json.Number so their textual form
// survives the round trip.
func toNode(payload any) (any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("cannot serialize payload: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var node any
	if err := decoder.Decode(&node); err != nil {
		return nil, fmt.Errorf("cannot normalize payload: %w", err)
	}
	return node, nil
}

func serializeNode(builder *strings.Builder, node any) {
	switch value := node.(type) {
	case map[string]any:
		fieldNames := make([]string, 0, len(value))
		for name := range value {
			fieldNames = append(fieldNames, name)
		}
		sort.Strings(fieldNames)
		for _, name := range fieldNames {
			builder.WriteString(name)
			serializeNode(builder, value[name])
		}
	case []any:
		for _, element := range value {
			serializeNode(builder, element)
		}
	case json.Number:
		builder.WriteString(value.String())
	case string:
		builder.WriteString(value)
	case bool:
		builder.WriteString(strconv.FormatBool(value))
	case nil:
		builder.WriteString("null")
	}
}
