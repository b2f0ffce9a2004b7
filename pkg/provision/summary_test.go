package provision

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummaryCounters(t *testing.T) {
	summary := NewSummary()
	summary.Add(Outcome{ResourceType: "resourceGroup", Name: "rg-demo-dev", Status: StatusCreated})
	summary.Add(Outcome{ResourceType: "resourceGroup", Name: "rg-demo-dev", Status: StatusSkipped})

	require.Equal(t, 1, summary.Created)
	require.Equal(t, 1, summary.Skipped)
	require.Equal(t, 0, summary.Failed)
}

func TestSummaryMerge(t *testing.T) {
	first := NewSummary()
	first.Add(Outcome{ResourceType: "repository", Name: "starter", Status: StatusCreated})

	second := NewSummary()
	second.Add(Outcome{ResourceType: "variableGroup", Name: "vg-dev", Status: StatusFailed, Message: "403"})

	first.Merge(second)
	require.Equal(t, 1, first.Created)
	require.Equal(t, 1, first.Failed)
	require.Len(t, first.Resources, 2)
}

func TestSummaryRenderText(t *testing.T) {
	summary := NewSummary()
	summary.Add(Outcome{ResourceType: "resourceGroup", Name: "rg-demo-dev", Status: StatusCreated})
	summary.Add(Outcome{ResourceType: "aiServices", Name: "ais-demo-dev", Status: StatusFailed, Message: "quota"})

	buf := &bytes.Buffer{}
	require.NoError(t, summary.RenderText(buf))

	text := buf.String()
	require.Contains(t, text, "rg-demo-dev")
	require.Contains(t, text, "quota")
	require.Contains(t, text, "Created: 1, Skipped: 0, Failed: 1")
}

func TestSummaryJsonShape(t *testing.T) {
	summary := NewSummary()
	summary.Add(Outcome{ResourceType: "resourceGroup", Name: "rg-demo-dev", Status: StatusCreated})

	data, err := json.Marshal(summary)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"resources": [
			{"resourceType": "resourceGroup", "name": "rg-demo-dev", "status": "Created"}
		],
		"created": 1, "skipped": 0, "failed": 0
	}`, string(data))
}
