package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskFactorsKeepsKeyOrder(t *testing.T) {
	var resp PredictionResponse
	body := `{
		"risk_prediction": "Riesgo Moderado",
		"risk_probability": 0.41,
		"confidence_interval": [0.3, 0.5],
		"risk_factors": {"Tabaquismo": "Fumador actual", "Edad": "Mayor de 60", "Diabetes": "Control alto"},
		"recommendations": ["a", "b"],
		"disclaimer": "x"
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	require.Len(t, resp.RiskFactors, 3)
	assert.Equal(t, "Tabaquismo", resp.RiskFactors[0].Name)
	assert.Equal(t, "Edad", resp.RiskFactors[1].Name)
	assert.Equal(t, "Diabetes", resp.RiskFactors[2].Name)
	assert.Equal(t, [2]float64{0.3, 0.5}, resp.ConfidenceInterval)
}

func TestRiskFactorsDuplicateKeyLastValueWins(t *testing.T) {
	var rf RiskFactors
	require.NoError(t, json.Unmarshal([]byte(`{"Edad": "a", "Tabaquismo": "b", "Edad": "c"}`), &rf))

	assert.Equal(t, RiskFactors{
		{Name: "Edad", Description: "c"},
		{Name: "Tabaquismo", Description: "b"},
	}, rf)
}

func TestRiskFactorsEmptyAndNull(t *testing.T) {
	var rf RiskFactors
	require.NoError(t, json.Unmarshal([]byte(`{}`), &rf))
	assert.Empty(t, rf)

	require.NoError(t, json.Unmarshal([]byte(`null`), &rf))
	assert.Nil(t, rf)
}

func TestRiskFactorsRejectsNonObject(t *testing.T) {
	var rf RiskFactors
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &rf))
	assert.Error(t, json.Unmarshal([]byte(`{"a": 1}`), &rf))
}

func TestRiskFactorsMarshalOrder(t *testing.T) {
	rf := RiskFactors{{Name: "Z", Description: "last"}, {Name: "A", Description: "first"}}
	out, err := json.Marshal(rf)
	require.NoError(t, err)
	assert.Equal(t, `{"Z":"last","A":"first"}`, string(out))
}

func TestHasOption(t *testing.T) {
	assert.True(t, HasOption(SmokingOptions, "Former"))
	assert.False(t, HasOption(SmokingOptions, "former"))
	assert.False(t, HasOption(YesNoOptions, ""))
}
