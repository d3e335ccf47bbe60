package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	raw, err := BuildQuery("milk", 20, 10)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	require.EqualValues(t, 20, body["from"])
	require.EqualValues(t, 10, body["size"])

	mm := body["query"].(map[string]any)["multi_match"].(map[string]any)
	require.Equal(t, "milk", mm["query"])
	require.Equal(t, "AUTO", mm["fuzziness"])
	require.Contains(t, mm["fields"], "name^2")
}
